package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// ReplyFunc produces the assistant content for a user prompt. A non-zero
// status is sent instead of a completion.
type ReplyFunc func(prompt string) (content string, status int)

// OpenAIServer is a fake chat completion endpoint.
type OpenAIServer struct {
	*httptest.Server

	mu      sync.Mutex
	prompts []string
}

// NewOpenAIServer starts a fake chat completion endpoint answering with reply.
func NewOpenAIServer(t testing.TB, reply ReplyFunc) *OpenAIServer {
	t.Helper()
	srv := &OpenAIServer{}
	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var prompt string
		for _, m := range req.Messages {
			if m.Role == "user" {
				prompt = m.Content
			}
		}
		srv.mu.Lock()
		srv.prompts = append(srv.prompts, prompt)
		srv.mu.Unlock()

		content, status := reply(prompt)
		w.Header().Set("Content-Type", "application/json")
		if status != 0 && status != http.StatusOK {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": content, "type": "test_error"}})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "cmpl-test",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-3.5-turbo",
			"choices": []any{map[string]any{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// Prompts returns every user prompt received so far.
func (s *OpenAIServer) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}
