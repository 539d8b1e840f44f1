package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-erp-api/internal/middleware"
	"github.com/noah-isme/school-erp-api/internal/models"
)

type responseEnvelope struct {
	Success bool                   `json:"success"`
	Data    json.RawMessage        `json:"data"`
	Message string                 `json:"message"`
	Meta    map[string]interface{} `json:"meta"`
}

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	return c, w
}

func withUser(c *gin.Context, id string, role models.UserRole) *models.User {
	user := &models.User{ID: id, Role: role}
	c.Set(middleware.ContextUserKey, user)
	return user
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var env responseEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}
