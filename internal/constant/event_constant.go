package constant

const (
	ChatEventsTopic = "chat.events"

	EventChatSessionCreated          = "chat.session.created"
	EventChatSessionDeleted          = "chat.session.deleted"
	EventChatMessageAppended         = "chat.message.appended"
	EventChatRecommendationGenerated = "chat.recommendation.generated"
	EventChatRecommendationFailed    = "chat.recommendation.failed"
)
