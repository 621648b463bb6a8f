package bootstrap

import (
	"path/filepath"

	"course-advisor-be/internal/config"
	"course-advisor-be/internal/constant"
	"course-advisor-be/internal/controller"
	"course-advisor-be/internal/pkg/logger"
	"course-advisor-be/internal/pkg/serverutils"
	"course-advisor-be/internal/repository/memory"
	"course-advisor-be/internal/repository/unitofwork"
	"course-advisor-be/internal/service"
	"course-advisor-be/pkg/llm"

	pktNats "course-advisor-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController           controller.IChatController
	RecommendationController controller.IRecommendationController
	HealthController         controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	pubSub      *gochannel.GoChannel
	natsPub     *pktNats.Publisher
	auditLogger logger.ILogger
}

// NewContainer wires every dependency. The caller keeps ownership of db.
func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger, llmProvider llm.LLMProvider) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	auditLogger := logger.NewIsolatedLogger(filepath.Join(filepath.Dir(cfg.App.LogFilePath), "events.log"))

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)

	// NATS is optional; events stay in-process when it is not configured.
	var natsPub *pktNats.Publisher
	var forwarder service.EventForwarder
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS publisher", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			natsPub = pub
			forwarder = pub
		}
	}

	// 3. Services
	publisherService := service.NewPublisherService(constant.ChatEventsTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, constant.ChatEventsTopic, auditLogger, forwarder)

	chatService := service.NewChatService(uowFactory, publisherService, sysLogger)
	recommendationService := service.NewRecommendationService(
		chatService,
		llmProvider,
		publisherService,
		sysLogger,
		cfg.Ai.Timeout,
		memory.NewReplyCache(cfg.Ai.CacheTTL),
	)
	healthService := service.NewHealthService(db)

	// 4. Controllers
	auth := serverutils.NewJwtMiddleware(cfg.Auth.JWTSecret)

	return &Container{
		ChatController:           controller.NewChatController(chatService, auth),
		RecommendationController: controller.NewRecommendationController(recommendationService, auth),
		HealthController:         controller.NewHealthController(healthService),
		ConsumerService:          consumerService,
		Logger:                   sysLogger,
		pubSub:                   pubSub,
		natsPub:                  natsPub,
		auditLogger:              auditLogger,
	}
}

// Close stops the event bus and flushes the audit trail.
func (c *Container) Close() error {
	err := c.pubSub.Close()
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	_ = c.auditLogger.Sync()
	return err
}
