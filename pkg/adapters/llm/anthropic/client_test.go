package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	retries := 0
	c, err := NewClient(&Options{APIKey: "test-key", BaseURL: srv.URL + "/", MaxRetries: &retries}, nil)
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(&Options{}, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestComplete(t *testing.T) {
	var body map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-5",
			"content": [{"type": "text", "text": "{\"hook\":\"HI\"}"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	})

	out, err := c.Complete(context.Background(), Completion{System: "sys", Prompt: "write", Temperature: 0.8})
	require.NoError(t, err)
	assert.Equal(t, `{"hook":"HI"}`, out)

	assert.Equal(t, DefaultModel, body["model"])
	assert.EqualValues(t, DefaultMaxTokens, body["max_tokens"])
	assert.EqualValues(t, 0.8, body["temperature"])
}

func TestComplete_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	})

	_, err := c.Complete(context.Background(), Completion{Prompt: "write"})
	assert.Error(t, err)
}
