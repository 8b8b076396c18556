package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mentorsetu/mentorsetu-api/internal/repository"
)

const storePingTimeout = 2 * time.Second

type HealthHandler struct {
	mentorCacheReady func() bool
	store            repository.Pinger
}

func NewHealthHandler(mentorCacheReady func() bool) *HealthHandler {
	return &HealthHandler{
		mentorCacheReady: mentorCacheReady,
	}
}

// WithStore adds a booking store reachability check
func (h *HealthHandler) WithStore(store repository.Pinger) *HealthHandler {
	h.store = store
	return h
}

func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	// Catalog must be loaded before we serve traffic
	if !h.mentorCacheReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"reason": "mentor cache not initialized",
		})
		return
	}

	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storePingTimeout)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			attachError(c, err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"reason": "booking store unreachable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
