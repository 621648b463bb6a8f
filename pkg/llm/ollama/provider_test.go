package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-advisor-be/pkg/llm"
)

func TestOllamaChat(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":" Consider STEM workshops.\n"},"done":true}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL+"/", "llama3")
	reply, err := p.Generate(context.Background(), "recommend", llm.WithTemperature(0.2), llm.WithMaxTokens(64))

	require.NoError(t, err)
	assert.Equal(t, "Consider STEM workshops.", reply)
	assert.Equal(t, "llama3", got.Model)
	assert.False(t, got.Stream)
	assert.Equal(t, 0.2, got.Options.Temperature)
	assert.Equal(t, 64, got.Options.NumPredict)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestOllamaSendsZeroTemperature(t *testing.T) {
	var raw struct {
		Options map[string]interface{} `json:"options"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"ok"},"done":true}`))
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "llama3").Generate(context.Background(), "hi", llm.WithTemperature(0))
	require.NoError(t, err)
	assert.Contains(t, raw.Options, "temperature")
	assert.NotContains(t, raw.Options, "num_predict")
}

func TestOllamaNormalizesRoles(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"ok"},"done":true}`))
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "llama3").Chat(context.Background(), []llm.Message{
		{Role: "system", Content: "be brief"},
		{Role: "model", Content: "earlier reply"},
		{Role: "Tool", Content: "odd"},
	})
	require.NoError(t, err)

	roles := make([]string, len(got.Messages))
	for i, m := range got.Messages {
		roles[i] = m.Role
	}
	assert.Equal(t, []string{"system", "assistant", "user"}, roles)
}

func TestOllamaErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
		isEmpty bool
	}{
		{name: "error body", status: http.StatusNotFound, body: `{"error":"model \"missing\" not found"}`, wantErr: `status 404: model "missing" not found`},
		{name: "plain body", status: http.StatusBadGateway, body: "upstream down", wantErr: "status 502: upstream down"},
		{name: "error with 200", status: http.StatusOK, body: `{"error":"out of memory"}`, wantErr: "out of memory"},
		{name: "empty reply", status: http.StatusOK, body: `{"message":{"role":"assistant","content":"  "},"done":true}`, isEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewOllamaProvider(srv.URL, "missing").Generate(context.Background(), "hi")
			require.Error(t, err)
			if tt.isEmpty {
				assert.ErrorIs(t, err, llm.ErrEmptyResponse)
				return
			}
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
