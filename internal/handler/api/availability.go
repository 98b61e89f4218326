package api

import (
	"errors"
	"net/http"
	"time"

	resdto "booking-engine/internal/handler/dto/response"
	"booking-engine/internal/handler/httperr"
	"booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Resolve availability
// @Description Project the weekly slot catalog onto a date range with live capacity counts
// @Tags availability
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {array} resdto.SlotInstanceResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /availability [get]
func (h *AvailabilityHandler) Resolve(c *gin.Context) {
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

	views, err := h.q.Resolve(c.Request.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidRange):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Range start must not be after end", nil)
		case errors.Is(err, queries.ErrRangeTooWide):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Range too wide", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": resdto.FromSlotInstances(views)})
}

func parseDateParam(c *gin.Context, name string) (time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return time.Time{}, errors.New(name + " is required")
	}
	return time.Parse("2006-01-02", v)
}
