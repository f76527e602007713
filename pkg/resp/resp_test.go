package resp

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

func run(h gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	h(c)
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestEnvelopes(t *testing.T) {
	w, body := run(func(c *gin.Context) { OK(c, gin.H{"id": 1}) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])

	w, body = run(func(c *gin.Context) { NotFound(c, "order not found") })
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "order not found", body["error"])

	w, body = run(func(c *gin.Context) { ServerError(c, errors.New("boom")) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "boom", body["error"])
}

func TestResult(t *testing.T) {
	w, body := run(func(c *gin.Context) { Result(c, false, "Panier introuvable", gin.H{"total": "10"}) })
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Panier introuvable", body["message"])
	assert.Equal(t, "10", body["total"])
}
