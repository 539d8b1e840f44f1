package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
)

type envelopeBody struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
	Message string                 `json:"message"`
	Error   map[string]interface{} `json:"error"`
	Meta    map[string]interface{} `json:"meta"`
}

func TestJSONWrapsDataWithSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	JSON(c, http.StatusOK, gin.H{"id": "stu001"}, map[string]interface{}{"cache_hit": true})

	var body envelopeBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "stu001", body.Data["id"])
	assert.Equal(t, true, body.Meta["cache_hit"])
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestErrorUsesTypedStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error(c, appErrors.ErrInvalidCredentials)

	var body envelopeBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "Invalid credentials. Please try again.", body.Message)
	assert.Equal(t, "INVALID_CREDENTIALS", body.Error["code"])
}

func TestErrorHidesUntypedCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestRedirectUsesSeeOther(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", nil)

	Redirect(c, "/student/dashboard")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/student/dashboard", rec.Header().Get("Location"))
}
