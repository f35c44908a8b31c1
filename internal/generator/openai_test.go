package generator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriSQL/internal/backend"
)

func TestExtractSQL(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "fenced block",
			content: "Here you go:\n```sql\nSELECT * FROM users;\n```\nEnjoy",
			want:    "SELECT * FROM users;",
		},
		{
			name:    "plain select",
			content: "The query is SELECT id FROM orders WHERE total > 10;",
			want:    "SELECT id FROM orders WHERE total > 10",
		},
		{
			name:    "free text",
			content: "  I cannot answer that  ",
			want:    "I cannot answer that",
		},
		{
			name:    "empty",
			content: "   ",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSQL(tt.content))
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("how many users?", "CREATE TABLE users(id int)")
	assert.Contains(t, prompt, "[QUESTION]how many users?[/QUESTION]")
	assert.Contains(t, prompt, "CREATE TABLE users(id int)")

	prompt = BuildPrompt("how many users?", "")
	assert.NotContains(t, prompt, "Database Schema")
}

func newFakeChatServer(t *testing.T, status int, content string, got *map[string]any) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got != nil {
			_ = json.NewDecoder(r.Body).Decode(got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status >= 400 {
			_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded","type":"insufficient_quota"}}`))
			return
		}
		body, _ := json.Marshal(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "test-model",
			"choices": []map[string]any{
				{"index": 0, "message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"},
			},
		})
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/v1"
}

func TestOpenAIGeneratorReturnsSQLOnly(t *testing.T) {
	var got map[string]any
	baseURL := newFakeChatServer(t, http.StatusOK, "```sql\nSELECT * FROM users\n```", &got)

	gen, err := NewOpenAIGenerator(Config{APIKey: "sk-test", BaseURL: baseURL, Model: "test-model"})
	require.NoError(t, err)

	resp, err := gen.Generate(context.Background(), "show all users")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users", resp.SQL)
	assert.False(t, resp.HasResult())
	assert.Equal(t, "test-model", got["model"])
}

func TestOpenAIGeneratorErrors(t *testing.T) {
	baseURL := newFakeChatServer(t, http.StatusTooManyRequests, "", nil)
	gen, err := NewOpenAIGenerator(Config{APIKey: "sk-test", BaseURL: baseURL})
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), "show all users")
	var transportErr *backend.TransportError
	assert.True(t, errors.As(err, &transportErr))

	baseURL = newFakeChatServer(t, http.StatusOK, "  ", nil)
	gen, err = NewOpenAIGenerator(Config{APIKey: "sk-test", BaseURL: baseURL})
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), "show all users")
	var serviceErr *backend.ServiceError
	require.True(t, errors.As(err, &serviceErr))
	assert.Equal(t, "model returned empty SQL", serviceErr.Message)

	_, err = gen.Generate(context.Background(), "")
	assert.ErrorIs(t, err, backend.ErrEmptyQuestion)
}

func TestNewOpenAIGeneratorRequiresKey(t *testing.T) {
	_, err := NewOpenAIGenerator(Config{})
	assert.Error(t, err)
}
