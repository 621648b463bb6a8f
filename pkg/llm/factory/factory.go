package factory

import (
	"fmt"
	"strings"

	"course-advisor-be/internal/config"
	"course-advisor-be/pkg/llm"
	"course-advisor-be/pkg/llm/gemini"
	"course-advisor-be/pkg/llm/huggingface"
	"course-advisor-be/pkg/llm/ollama"
)

const (
	ProviderGemini      = "gemini"
	ProviderOllama      = "ollama"
	ProviderHuggingFace = "huggingface"
)

func NewLLMProvider(cfg config.AIConfig) (llm.LLMProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.LLMProvider)) {
	case ProviderGemini, "":
		return gemini.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.LLMModel), nil
	case ProviderOllama:
		return ollama.NewOllamaProvider(cfg.OllamaBaseURL, cfg.LLMModel), nil
	case ProviderHuggingFace:
		return huggingface.NewHuggingFaceProvider(cfg.HuggingFaceAPIKey, cfg.HuggingFaceBaseURL, cfg.LLMModel), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}
