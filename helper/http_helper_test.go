package helper

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"listener-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatusCode(t *testing.T) {
	h := NewHTTPHelper(nil)

	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{models.ErrorBadRequest{Message: "bad"}, http.StatusBadRequest},
		{models.ErrorUnauthorized{Message: "who"}, http.StatusUnauthorized},
		{models.ErrorForbidden{Message: "no"}, http.StatusForbidden},
		{models.ErrorNotFound{Message: "gone"}, http.StatusNotFound},
		{models.ErrorValidation{Message: "invalid"}, http.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", models.ErrorNotFound{Message: "gone"}), http.StatusNotFound},
		{models.ErrorInternalServer{Message: "boom"}, http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, h.GetStatusCode(tt.err), "%v", tt.err)
	}
}

func newContext(method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestSendServiceError(t *testing.T) {
	h := NewHTTPHelper(nil)

	c, w := newContext(http.MethodGet, "")
	h.SendServiceError(c, models.ErrorNotFound{Message: "Song not found"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	out := decodeEnvelope(t, w)
	assert.Equal(t, float64(http.StatusNotFound), out["code"])
	assert.Equal(t, "notFound", out["code_type"])
	assert.Equal(t, "Song not found", out["code_message"])
	assert.Equal(t, map[string]interface{}{}, out["data"])

	c, w = newContext(http.MethodGet, "")
	h.SendServiceError(c, errors.New("database on fire"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	out = decodeEnvelope(t, w)
	assert.Equal(t, "Internal server error", out["code_message"])
}

func TestSendUnauthorizedSetsChallenge(t *testing.T) {
	h := NewHTTPHelper(nil)
	c, w := newContext(http.MethodGet, "")
	h.SendUnauthorizedError(c, "Not authenticated", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestSendBindingErrorReportsFields(t *testing.T) {
	h := NewHTTPHelper(nil)

	c, w := newContext(http.MethodPost, `{"email":"nope","username":"x"}`)
	var req models.RegisterRequest
	err := c.ShouldBindJSON(&req)
	require.Error(t, err)
	h.SendBindingError(c, err)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	out := decodeEnvelope(t, w)
	assert.Equal(t, "validationError", out["code_type"])

	fields, ok := out["code_message"].(map[string]interface{})
	require.True(t, ok, "code_message should be a field map")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "password")
}

func TestSendBindingErrorMalformedJSON(t *testing.T) {
	h := NewHTTPHelper(nil)

	c, w := newContext(http.MethodPost, `{`)
	var req models.RegisterRequest
	err := c.ShouldBindJSON(&req)
	require.Error(t, err)
	h.SendBindingError(c, err)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSendCreatedAndNoContent(t *testing.T) {
	h := NewHTTPHelper(nil)

	c, w := newContext(http.MethodPost, "")
	h.SendCreated(c, "", gin.H{"id": 1})
	assert.Equal(t, http.StatusCreated, w.Code)
	out := decodeEnvelope(t, w)
	assert.Equal(t, "success", out["code_message"])
	assert.Equal(t, "created", out["code_type"])

	c, w = newContext(http.MethodDelete, "")
	h.SendNoContent(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestGetSkipLimit(t *testing.T) {
	h := NewHTTPHelper(nil)

	tests := []struct {
		query     string
		skip      int
		limit     int
		wantError bool
	}{
		{"", 0, 25, false},
		{"skip=5&limit=10", 5, 10, false},
		{"skip=-1", 0, 0, true},
		{"limit=0", 0, 0, true},
		{"limit=1001", 0, 0, true},
		{"skip=abc", 0, 0, true},
	}
	for _, tt := range tests {
		c, _ := newContext(http.MethodGet, "")
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

		skip, limit, err := h.GetSkipLimit(c, 25)
		if tt.wantError {
			var validation models.ErrorValidation
			assert.ErrorAs(t, err, &validation, tt.query)
			continue
		}
		require.NoError(t, err, tt.query)
		assert.Equal(t, tt.skip, skip, tt.query)
		assert.Equal(t, tt.limit, limit, tt.query)
	}
}

func TestGetIDParam(t *testing.T) {
	h := NewHTTPHelper(nil)

	c, _ := newContext(http.MethodGet, "")
	c.Params = gin.Params{{Key: "song_id", Value: "42"}}
	id, err := h.GetIDParam(c, "song_id")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, bad := range []string{"0", "-3", "abc", ""} {
		c.Params = gin.Params{{Key: "song_id", Value: bad}}
		_, err := h.GetIDParam(c, "song_id")
		assert.Error(t, err, bad)
	}
}
