package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"course-advisor-be/pkg/llm"
)

const DefaultBaseURL = "http://localhost:11434"

// OllamaProvider calls a local or self-hosted Ollama server through /api/chat.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

var _ llm.LLMProvider = &OllamaProvider{}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []llm.Message `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  modelOptions  `json:"options"`
}

// Temperature is always sent so that 0 reaches the server instead of its default.
type modelOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatResponse struct {
	Message    llm.Message `json:"message"`
	Done       bool        `json:"done"`
	DoneReason string      `json:"done_reason,omitempty"`
	Error      string      `json:"error,omitempty"`
}

func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OllamaProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		// Local models can take a while to load on the first question
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *OllamaProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.Apply(llm.Options{Temperature: 0.7, Model: p.model}, options...)

	body, err := json.Marshal(chatRequest{
		Model:    opts.Model,
		Messages: normalizeRoles(history),
		Stream:   false,
		Options: modelOptions{
			Temperature: opts.Temperature,
			NumPredict:  opts.MaxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal ollama request: %w", err)
	}

	resp, err := p.post(ctx, "/api/chat", body)
	if err != nil {
		return "", err
	}

	reply := strings.TrimSpace(resp.Message.Content)
	if reply == "" {
		return "", llm.ErrEmptyResponse
	}
	return reply, nil
}

func (p *OllamaProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

// post sends body and decodes the reply. Ollama reports failures as {"error": "..."},
// which is preferred over the raw body in the returned error.
func (p *OllamaProvider) post(ctx context.Context, path string, body []byte) (*chatResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read ollama response: %w", err)
	}

	var out chatResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode != http.StatusOK {
		reason := strings.TrimSpace(string(raw))
		if decodeErr == nil && out.Error != "" {
			reason = out.Error
		}
		return nil, fmt.Errorf("ollama error: status %d: %s", resp.StatusCode, reason)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode ollama response: %w", decodeErr)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("ollama error: %s", out.Error)
	}
	return &out, nil
}

// normalizeRoles maps roles Ollama does not know, such as Gemini's "model", onto its set.
func normalizeRoles(history []llm.Message) []llm.Message {
	out := make([]llm.Message, len(history))
	for i, msg := range history {
		role := strings.ToLower(msg.Role)
		switch role {
		case llm.RoleUser, llm.RoleAssistant, llm.RoleSystem:
		case "model":
			role = llm.RoleAssistant
		default:
			role = llm.RoleUser
		}
		out[i] = llm.Message{Role: role, Content: msg.Content}
	}
	return out
}
