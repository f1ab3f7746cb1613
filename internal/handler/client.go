package handler

import (
	"net/http"

	"clientbook/internal/model"
	"clientbook/internal/service"

	"github.com/gin-gonic/gin"
)

// ClientHandler handles client, note and contact requests. Every route that
// names a client first checks that the caller can see it.
type ClientHandler struct {
	clients *service.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clients *service.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// visible resolves :id for the caller, replying 404 for hidden clients.
func (h *ClientHandler) visible(c *gin.Context) (*model.Client, bool) {
	id, ok := caller(c)
	if !ok {
		return nil, false
	}
	client, err := h.clients.GetVisible(c.Request.Context(), id.UID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return client, true
}

// List handles GET /clients
func (h *ClientHandler) List(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	clients, err := h.clients.List(c.Request.Context(), id.UID)
	if err != nil {
		respondError(c, err)
		return
	}
	if clients == nil {
		clients = []*model.Client{}
	}
	c.JSON(http.StatusOK, clients)
}

// Create handles POST /clients
func (h *ClientHandler) Create(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	var in model.ClientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	created, err := h.clients.Add(c.Request.Context(), id.UID, &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Client created", created))
}

// Get handles GET /clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	client, ok := h.visible(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, client)
}

// Update handles PUT /clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	client, ok := h.visible(c)
	if !ok {
		return
	}
	var in model.ClientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := h.clients.Update(c.Request.Context(), client.ID.Hex(), &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Client updated", updated))
}

// Delete handles DELETE /clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	client, ok := h.visible(c)
	if !ok {
		return
	}
	if err := h.clients.Delete(c.Request.Context(), client.ID.Hex()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Client deleted", nil))
}

// ListNotes handles GET /clients/:id/notes
func (h *ClientHandler) ListNotes(c *gin.Context) {
	client, ok := h.visible(c)
	if !ok {
		return
	}
	notes, err := h.clients.ListNotes(c.Request.Context(), client.ID.Hex())
	if err != nil {
		respondError(c, err)
		return
	}
	if notes == nil {
		notes = []*model.ClientNote{}
	}
	c.JSON(http.StatusOK, notes)
}

// AddNote handles POST /clients/:id/notes
func (h *ClientHandler) AddNote(c *gin.Context) {
	client, ok := h.visible(c)
	if !ok {
		return
	}
	id, _ := caller(c)
	var in model.NoteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	note, err := h.clients.AddNote(c.Request.Context(), client.ID.Hex(), &in, id.UID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Note added", note))
}

// DeleteNote handles DELETE /clients/:id/notes/:noteId
func (h *ClientHandler) DeleteNote(c *gin.Context) {
	client, ok := h.visible(c)
	if !ok {
		return
	}
	if err := h.clients.DeleteNote(c.Request.Context(), client.ID.Hex(), c.Param("noteId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Note deleted", nil))
}

// Contact handles POST /clients/:id/contact. 202 means the e-mail is queued,
// not delivered.
func (h *ClientHandler) Contact(c *gin.Context) {
	client, ok := h.visible(c)
	if !ok {
		return
	}
	var in model.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.clients.Contact(c.Request.Context(), client.ID.Hex(), &in); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, model.NewSuccessResponse("Email queued", nil))
}
