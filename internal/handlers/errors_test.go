package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorWithDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	cause := errors.New("bad form")
	respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed",
		[]ValidationError{{Field: "time", Message: "time must be a bookable slot"}},
		cause, gin.H{"submission": gin.H{"id": "s-1"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Validation failed", body["error"])
	assert.Len(t, body["details"], 1)
	assert.Equal(t, map[string]any{"id": "s-1"}, body["submission"])
	require.Len(t, c.Errors, 1)
	assert.ErrorIs(t, c.Errors[0].Err, cause)
}
