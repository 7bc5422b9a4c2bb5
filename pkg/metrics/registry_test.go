package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEnabled_BeforeInit(t *testing.T) {
	resetForTesting()

	assert.False(t, IsEnabled())
	assert.Nil(t, GetRegistry())
}

func TestInitRegistry(t *testing.T) {
	resetForTesting()
	defer resetForTesting()

	InitRegistry()

	assert.True(t, IsEnabled())
	require.NotNil(t, GetRegistry())

	// Idempotent
	reg := GetRegistry()
	InitRegistry()
	assert.Same(t, reg, GetRegistry())
}

func TestHandler_Disabled(t *testing.T) {
	resetForTesting()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Enabled(t *testing.T) {
	resetForTesting()
	defer resetForTesting()

	InitRegistry()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	// Runtime collectors registered by InitRegistry should be present
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
