package integration

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"course-advisor-be/internal/entity"
	"course-advisor-be/pkg/llm"
	"course-advisor-be/pkg/llm/ollama"
	"course-advisor-be/pkg/recommendation/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a local Ollama daemon. Set OLLAMA_INTEGRATION=1 to enable.
func TestOllamaCourseRecommendation(t *testing.T) {
	if os.Getenv("OLLAMA_INTEGRATION") == "" {
		t.Skip("Skipping integration test: OLLAMA_INTEGRATION not set")
	}

	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "gemma:2b"
	}

	text := prompt.NewCourseAdvisorBuilder(&entity.TeacherProfile{
		Name:             "Integration Teacher",
		SubjectInterests: []string{"Mathematics"},
		GradeLevel:       "Middle School",
		Experience:       "2 years",
	}, "Suggest one course to improve my algebra teaching.").Build()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	reply, err := ollama.NewOllamaProvider(baseURL, model).Generate(ctx, text, llm.WithTemperature(0.2), llm.WithMaxTokens(200))
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(reply))
	t.Logf("reply: %s", reply)
}
