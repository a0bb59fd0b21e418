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

	appErrors "github.com/campusboard/portal-api/pkg/errors"
)

func errorResponse(t *testing.T, err error) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Error(c, err)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

func TestErrorCarriesSanitizedUserMessage(t *testing.T) {
	w, envelope := errorResponse(t, appErrors.ErrUnavailable)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrUnavailable.Code, envelope.Error.Code)
	assert.Equal(t, appErrors.UserMessage(appErrors.ErrUnavailable), envelope.Meta["user_message"])
}

func TestErrorSanitizesForeignErrors(t *testing.T) {
	w, envelope := errorResponse(t, errors.New("dial tcp: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	msg, ok := envelope.Meta["user_message"].(string)
	require.True(t, ok)
	assert.NotContains(t, msg, "connection refused")
}
