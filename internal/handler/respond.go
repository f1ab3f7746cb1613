package handler

import (
	"errors"
	"log"
	"net/http"

	"clientbook/internal/apperr"
	"clientbook/internal/auth"
	"clientbook/internal/middleware"
	"clientbook/internal/model"

	"github.com/gin-gonic/gin"
)

const retryMessage = "Service temporarily unavailable, please try again"

// respondError maps a service error to its HTTP status and the standard
// error envelope. Store causes are logged, never returned.
func respondError(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, "Internal server error"
	var details interface{}

	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status, message = http.StatusNotFound, err.Error()
	case apperr.KindValidation:
		status, message = http.StatusBadRequest, "Invalid input"
		var verr *apperr.ValidationError
		if errors.As(err, &verr) {
			details = verr.Fields
		}
	case apperr.KindConflict:
		status, message = http.StatusConflict, err.Error()
	case apperr.KindForbidden:
		status, message = http.StatusForbidden, err.Error()
	case apperr.KindUnavailable:
		status, message = http.StatusServiceUnavailable, retryMessage
	case apperr.KindInconsistent:
		message = apperr.ErrMembershipInconsistent.Error()
	}

	if status >= http.StatusInternalServerError {
		cause := apperr.Cause(err)
		var inc *apperr.InconsistencyError
		if errors.As(err, &inc) {
			cause = inc.Cause()
		}
		log.Printf("[http] %s %s [%s]: %v (cause: %v)", c.Request.Method, c.FullPath(), middleware.GetRequestID(c), err, cause)
	}
	c.JSON(status, model.NewErrorResponse(message, details))
}

// badRequest replies to a body that could not be decoded.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid request body", err.Error()))
}

// caller returns the authenticated identity or aborts with 401.
func caller(c *gin.Context) (auth.Identity, bool) {
	id, ok := middleware.Identity(c)
	if !ok || id.UID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return auth.Identity{}, false
	}
	return id, true
}
