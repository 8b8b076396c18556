package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mentorsetu/mentorsetu-api/internal/models"
	"github.com/mentorsetu/mentorsetu-api/internal/services"
	apperrors "github.com/mentorsetu/mentorsetu-api/pkg/errors"
)

const submissionsPath = "/api/v1/bookings/submissions/"

type BookingHandler struct {
	service services.BookingServiceInterface
}

func NewBookingHandler(service services.BookingServiceInterface) *BookingHandler {
	return &BookingHandler{service: service}
}

// CreateBooking starts the booking flow. The response is 202 with the
// submission unless ?wait=true, which blocks until the flow finishes.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var form models.BookingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	wait, err := queryBool(c, "wait")
	if err != nil {
		respondError(c, http.StatusBadRequest, "wait must be true or false", err)
		return
	}

	ctx := c.Request.Context()
	sub, err := h.service.Submit(ctx, form)
	if err != nil {
		var formErr *services.FormError
		switch {
		case errors.As(err, &formErr):
			respondErrorWithDetails(c, http.StatusBadRequest, formErr.Message,
				ParseValidationErrors(formErr.Err), err, gin.H{"submission": sub})
		case apperrors.Is(err, apperrors.ErrNotFound):
			attachError(c, err)
			c.JSON(http.StatusNotFound, gin.H{"error": "Mentor not found", "link": services.CatalogPath})
		default:
			respondError(c, http.StatusInternalServerError, "Failed to start booking", err)
		}
		return
	}

	if !wait {
		c.Header("Location", submissionsPath+sub.ID)
		c.JSON(http.StatusAccepted, sub)
		return
	}

	done, err := h.service.Wait(ctx, sub.ID)
	if err != nil {
		attachError(c, err)
		c.Header("Location", submissionsPath+sub.ID)
		c.JSON(http.StatusAccepted, done)
		return
	}

	c.JSON(statusForSubmission(done), done)
}

func (h *BookingHandler) GetSubmission(c *gin.Context) {
	sub, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch submission")
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *BookingHandler) CancelSubmission(c *gin.Context) {
	sub, err := h.service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			attachError(c, err)
			c.JSON(http.StatusConflict, gin.H{"error": "Submission already finished", "submission": sub})
			return
		}
		respondServiceError(c, err, "Failed to cancel submission")
		return
	}

	c.JSON(http.StatusOK, sub)
}

// GetReceipt renders the booking's PDF receipt
func (h *BookingHandler) GetReceipt(c *gin.Context) {
	data, filename, err := h.service.Receipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to render receipt")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func statusForSubmission(sub *models.Submission) int {
	switch sub.State {
	case models.StateClosed:
		return http.StatusCreated
	case models.StateFailed:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}

func queryBool(c *gin.Context, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
