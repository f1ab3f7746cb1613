package handler

import (
	"net/http"

	"clientbook/internal/model"
	"clientbook/internal/service"

	"github.com/gin-gonic/gin"
)

// SettingsHandler serves the caller's own settings record.
type SettingsHandler struct {
	settings *service.SettingsService
}

func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Session handles POST /session, called after every sign-in. The settings
// record is seeded from the token on the first call only.
func (h *SettingsHandler) Session(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	created, err := h.settings.EnsureExists(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	st, err := h.settings.Get(c.Request.Context(), id.UID)
	if err != nil {
		respondError(c, err)
		return
	}
	if created {
		c.JSON(http.StatusCreated, model.NewSuccessResponse("Settings created", st))
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Settings loaded", st))
}

// Register handles POST /register
func (h *SettingsHandler) Register(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.settings.Register(c.Request.Context(), id, &req); err != nil {
		respondError(c, err)
		return
	}
	st, err := h.settings.Get(c.Request.Context(), id.UID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Registered", st))
}

// Get handles GET /settings. A user without a record gets the defaults.
func (h *SettingsHandler) Get(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	st, err := h.settings.Get(c.Request.Context(), id.UID)
	if err != nil {
		respondError(c, err)
		return
	}
	if st == nil {
		st = &model.UserSettings{UserID: id.UID}
	}
	c.JSON(http.StatusOK, model.SettingsView{
		UserSettings:      st,
		EffectiveTimezone: st.TimezoneName(),
		EffectiveHours:    st.Hours(),
	})
}

// Save handles PUT /settings. Only the fields present in the body change.
func (h *SettingsHandler) Save(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	var patch model.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.settings.Save(c.Request.Context(), id.UID, &patch); err != nil {
		respondError(c, err)
		return
	}
	st, err := h.settings.Get(c.Request.Context(), id.UID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Settings saved", st))
}
