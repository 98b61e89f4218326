package api

import (
	"errors"
	"net/http"

	reqdto "booking-engine/internal/handler/dto/request"
	resdto "booking-engine/internal/handler/dto/response"
	"booking-engine/internal/handler/httperr"
	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ScheduleHandler struct {
	cmds commands.ScheduleCommands
	q    queries.ScheduleQueries
}

func NewScheduleHandler(cmds commands.ScheduleCommands, q queries.ScheduleQueries) *ScheduleHandler {
	return &ScheduleHandler{cmds: cmds, q: q}
}

// @Summary List slot templates
// @Tags admin
// @Produce json
// @Success 200 {array} resdto.SlotTemplateResponse
// @Router /admin/slot-templates [get]
func (h *ScheduleHandler) ListTemplates(c *gin.Context) {
	views, err := h.q.ListTemplates(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": resdto.FromSlotTemplateList(views)})
}

// @Summary Create slot template
// @Tags admin
// @Accept json
// @Produce json
// @Param request body reqdto.UpsertSlotTemplateRequest true "Template"
// @Success 201 {object} resdto.SlotTemplateResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/slot-templates [post]
func (h *ScheduleHandler) CreateTemplate(c *gin.Context) {
	var req reqdto.UpsertSlotTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	entity, err := h.cmds.UpsertTemplate(c.Request.Context(), req.ToCommand(nil))
	if err != nil {
		h.abortTemplateError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromSlotTemplate(entity))
}

// @Summary Update slot template
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param request body reqdto.UpsertSlotTemplateRequest true "Template"
// @Success 200 {object} resdto.SlotTemplateResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/slot-templates/{id} [put]
func (h *ScheduleHandler) UpdateTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid template ID format", nil)
		return
	}

	var req reqdto.UpsertSlotTemplateRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	entity, err := h.cmds.UpsertTemplate(c.Request.Context(), req.ToCommand(&id))
	if err != nil {
		h.abortTemplateError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotTemplate(entity))
}

// @Summary Delete slot template
// @Description Removes the template, or disables it when future active bookings still reference its slot
// @Tags admin
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/slot-templates/{id} [delete]
func (h *ScheduleHandler) DeleteTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid template ID format", nil)
		return
	}

	result, err := h.cmds.DeleteTemplate(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, commands.ErrTemplateNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Template not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"disabled": result.Disabled})
}

// @Summary List blackout windows
// @Tags admin
// @Produce json
// @Success 200 {array} resdto.BlackoutWindowResponse
// @Router /admin/blackouts [get]
func (h *ScheduleHandler) ListBlackouts(c *gin.Context) {
	views, err := h.q.ListWindows(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blackouts": resdto.FromBlackoutList(views)})
}

// @Summary List blackout occurrences
// @Description Expand recurring windows into concrete occurrences within a range
// @Tags admin
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {array} resdto.BlackoutOccurrenceResponse
// @Failure 400 {object} map[string]string
// @Router /admin/blackouts/occurrences [get]
func (h *ScheduleHandler) ListBlackoutOccurrences(c *gin.Context) {
	from, err := parseDateParam(c, "from")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid from date", nil)
		return
	}
	to, err := parseDateParam(c, "to")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid to date", nil)
		return
	}

	views, err := h.q.ListOccurrences(c.Request.Context(), from, to)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"occurrences": resdto.FromBlackoutOccurrences(views)})
}

// @Summary Create blackout window
// @Tags admin
// @Accept json
// @Produce json
// @Param request body reqdto.UpsertBlackoutRequest true "Blackout window"
// @Success 201 {object} resdto.BlackoutWindowResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/blackouts [post]
func (h *ScheduleHandler) CreateBlackout(c *gin.Context) {
	var req reqdto.UpsertBlackoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	cmd, err := req.ToCommand(nil)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format", nil)
		return
	}

	entity, err := h.cmds.UpsertBlackout(c.Request.Context(), cmd)
	if err != nil {
		h.abortBlackoutError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBlackoutWindow(entity))
}

// @Summary Update blackout window
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Blackout ID"
// @Param request body reqdto.UpsertBlackoutRequest true "Blackout window"
// @Success 200 {object} resdto.BlackoutWindowResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/blackouts/{id} [put]
func (h *ScheduleHandler) UpdateBlackout(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid blackout ID format", nil)
		return
	}

	var req reqdto.UpsertBlackoutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	cmd, err := req.ToCommand(&id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format", nil)
		return
	}

	entity, err := h.cmds.UpsertBlackout(c.Request.Context(), cmd)
	if err != nil {
		h.abortBlackoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBlackoutWindow(entity))
}

// @Summary Delete blackout window
// @Tags admin
// @Param id path string true "Blackout ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/blackouts/{id} [delete]
func (h *ScheduleHandler) DeleteBlackout(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid blackout ID format", nil)
		return
	}

	if err := h.cmds.DeleteBlackout(c.Request.Context(), id); err != nil {
		if errors.Is(err, commands.ErrBlackoutNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Blackout not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ScheduleHandler) abortTemplateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrTemplateNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Template not found", nil)
	case errors.Is(err, commands.ErrTemplateConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "A template already exists for this slot", nil)
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func (h *ScheduleHandler) abortBlackoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBlackoutNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Blackout not found", nil)
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
