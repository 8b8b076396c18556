package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorsetu/mentorsetu-api/internal/services"
	apperrors "github.com/mentorsetu/mentorsetu-api/pkg/errors"
)

type MentorHandler struct {
	service services.MentorServiceInterface
}

func NewMentorHandler(service services.MentorServiceInterface) *MentorHandler {
	return &MentorHandler{service: service}
}

// ListMentors serves the directory with optional q, category, rating and price filters
func (h *MentorHandler) ListMentors(c *gin.Context) {
	filter, err := services.ParseMentorFilter(c.Query("q"), c.Query("category"), c.Query("rating"), c.Query("price"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	resp, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch mentors", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *MentorHandler) ListCategories(c *gin.Context) {
	resp, err := h.service.Categories(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch categories", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *MentorHandler) GetMentorProfile(c *gin.Context) {
	resp, err := h.service.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			attachError(c, err)
			c.JSON(http.StatusNotFound, gin.H{"error": "Mentor not found", "link": services.CatalogPath})
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch mentor", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
