package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	DefaultSessionTitle = "New Chat"

	// Stored as the assistant turn when the recommendation backend fails.
	ChatRecommendationFallbackMessage = "Sorry, I encountered an error while processing your request. Please try again."
)
