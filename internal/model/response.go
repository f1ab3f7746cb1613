package model

// Response is the envelope used for every non-list API reply.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// NewErrorResponse builds a failed response.
func NewErrorResponse(message string, details interface{}) Response {
	if s, ok := details.(string); ok && s == "" {
		details = nil
	}
	return Response{Success: false, Error: message, Details: details}
}

// NewSuccessResponse builds a successful response.
func NewSuccessResponse(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}
