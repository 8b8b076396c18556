package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorsetu/mentorsetu-api/internal/models"
	"github.com/mentorsetu/mentorsetu-api/internal/notify"
	"github.com/mentorsetu/mentorsetu-api/internal/services"
)

type DashboardHandler struct {
	service services.DashboardServiceInterface
}

func NewDashboardHandler(service services.DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	exclusive, err := queryBool(c, "exclusive")
	if err != nil {
		respondError(c, http.StatusBadRequest, "exclusive must be true or false", err)
		return
	}

	mode := models.DashboardModeOverlapping
	if exclusive {
		mode = models.DashboardModeExclusive
	}

	dashboard, err := h.service.Get(c.Request.Context(), mode)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load bookings", err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dashboard)
}

func (h *DashboardHandler) CancelBooking(c *gin.Context) {
	resp, err := h.service.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, notify.MessageCancelFailed)
		return
	}

	c.JSON(http.StatusOK, resp)
}
