package verify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPHook_Call_ParsesCommonFieldSpellings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "jane@example.com", r.URL.Query().Get("email"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"result":"deliverable","confidence":87,"is_deliverable":true}`))
	}))
	defer server.Close()

	hook := NewHTTPHook("test-verify", server.URL, "key-123")
	result, err := hook.Call(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "deliverable", result.Status)
	assert.Equal(t, 87, result.Score)
	assert.True(t, result.Deliverable)
	assert.Contains(t, result.Raw, "deliverable")
}

func TestHTTPHook_Call_MissingFieldsStayZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	hook := NewHTTPHook("test-enrich", server.URL, "key-123")
	result, err := hook.Call(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Empty(t, result.Status)
	assert.Zero(t, result.Score)
	assert.False(t, result.Deliverable)
}

func TestHTTPHook_Call_PropagatesNonRetryableTransportError(t *testing.T) {
	hook := NewHTTPHook("test-verify", "http://127.0.0.1:0", "key-123")
	_, err := hook.Call(context.Background(), "jane@example.com")
	assert.Error(t, err)
}
