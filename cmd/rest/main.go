package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"course-advisor-be/internal/bootstrap"
	"course-advisor-be/internal/config"
	"course-advisor-be/internal/model"
	"course-advisor-be/internal/pkg/logger"
	"course-advisor-be/internal/server"
	"course-advisor-be/internal/tracer"
	"course-advisor-be/pkg/database"
	"course-advisor-be/pkg/llm/factory"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	// 2. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(cfg.Otel, sysLogger)

	// 3. Initialize Database
	gormDB, err := database.Open(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if err := model.Migrate(context.Background(), gormDB); err != nil {
		log.Panicf("Unable to initialize schema: %v", err)
	}

	// 4. LLM Provider
	llmProvider, err := factory.NewLLMProvider(cfg.Ai)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	sysLogger.Info("BOOT", "LLM provider ready", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	// 5. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg, sysLogger, llmProvider)

	// 6. Start Background Services
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	if err := container.ConsumerService.Consume(consumerCtx); err != nil {
		sysLogger.Error("BOOT", "Consumer service failed to start", map[string]interface{}{"error": err.Error()})
	}

	// 7. Run Server
	srv := server.New(cfg, container)
	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	// 8. Graceful Shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		sysLogger.Error("SERVER", "Server shutdown error", map[string]interface{}{"error": err.Error()})
	}
	stopConsumer()
	if err := container.Close(); err != nil {
		sysLogger.Warn("SERVER", "Event bus close error", map[string]interface{}{"error": err.Error()})
	}
	if err := database.Close(gormDB); err != nil {
		sysLogger.Warn("SERVER", "Database close error", map[string]interface{}{"error": err.Error()})
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		sysLogger.Warn("SERVER", "Tracer shutdown error", map[string]interface{}{"error": err.Error()})
	}
	sysLogger.Info("SERVER", "Server shutdown complete", nil)
}
