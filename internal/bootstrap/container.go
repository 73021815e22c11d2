package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"fluentko-be/internal/config"
	"fluentko-be/internal/constant"
	"fluentko-be/internal/controller"
	"fluentko-be/internal/handler"
	"fluentko-be/internal/pkg/logger"
	"fluentko-be/internal/repository/memory"
	"fluentko-be/internal/repository/unitofwork"
	"fluentko-be/internal/service"
	"fluentko-be/internal/websocket"
	"fluentko-be/pkg/bus"
	"fluentko-be/pkg/chat/access"
	chatEvents "fluentko-be/pkg/chat/events"
	"fluentko-be/pkg/chat/transcript"
	"fluentko-be/pkg/events"
	"fluentko-be/pkg/llm/factory"
	pktNats "fluentko-be/pkg/nats"
	speechOpenAI "fluentko-be/pkg/speech/openai"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController   controller.IChatController
	SpeechController controller.ISpeechController

	// WebSockets & Notification
	PracticeHandler     *handler.PracticeHandler
	WebSocketHub        *websocket.Hub
	NotificationService *service.PracticeNotificationService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")

	c := &Container{Logger: sysLogger}

	// 2. Event Bus: NATS across instances, in-process gochannel otherwise
	publisher, subscriber, closeEvents := newEventTransport(cfg, sysLogger)
	c.closers = append(c.closers, closeEvents)

	// 3. Redis fan-out for websockets (optional)
	rdb := newRedisClient(cfg.App.RedisURL, sysLogger)
	if rdb != nil {
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	c.WebSocketHub = websocket.NewHub(rdb, wsLogger)
	go c.WebSocketHub.Run()
	c.closers = append(c.closers, c.WebSocketHub.Stop)

	// 4. Gateways
	llmProvider, err := factory.NewLLMProvider(factory.ProviderConfig{
		Provider:      cfg.Ai.LLMProvider,
		Model:         cfg.Ai.LLMModel,
		OpenAIAPIKey:  cfg.Ai.OpenAIAPIKey,
		OpenAIBaseURL: cfg.Ai.OpenAIBaseURL,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("init llm provider: %w", err)
	}
	transcriber := speechOpenAI.NewTranscriber(cfg.Ai.OpenAIAPIKey, cfg.Ai.OpenAIBaseURL, cfg.Ai.TranscribeModel)

	// 5. Services
	verifier := access.NewVerifier()
	eventPublisher := chatEvents.NewBusPublisher(publisher, sysLogger)

	chatSessionService := service.NewChatSessionService(uowFactory, verifier, eventPublisher, sysLogger)
	chatTurnService := service.NewChatTurnService(
		uowFactory,
		verifier,
		transcript.NewAssembler(),
		llmProvider,
		eventPublisher,
		sysLogger,
		cfg.Ai.RequestTimeout,
	)
	speechService := service.NewSpeechService(transcriber, sysLogger, cfg.Ai.RequestTimeout)
	c.NotificationService = service.NewPracticeNotificationService(
		subscriber,
		c.WebSocketHub,
		memory.NewDeliveredEventCache(constant.DeliveredEventTTL),
		wsLogger,
	)
	if err := c.NotificationService.Start(); err != nil {
		c.Close()
		return nil, fmt.Errorf("start practice notification worker: %w", err)
	}

	// 6. Controllers & Handlers
	c.ChatController = controller.NewChatController(chatSessionService, chatTurnService)
	c.SpeechController = controller.NewSpeechController(speechService)
	c.PracticeHandler = handler.NewPracticeHandler(c.WebSocketHub, wsLogger)

	return c, nil
}

// Close releases brokers and background loops in reverse start order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}

func newEventTransport(cfg *config.Config, log logger.ILogger) (events.Publisher, events.Subscriber, func()) {
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err == nil {
		natsSub, subErr := pktNats.NewSubscriber(cfg.App.NatsURL)
		if subErr == nil {
			log.Info("BOOTSTRAP", "Using NATS event transport", map[string]interface{}{"url": cfg.App.NatsURL})
			return natsPub, natsSub, func() {
				natsSub.Close()
				natsPub.Close()
			}
		}
		natsPub.Close()
		err = subErr
	}

	log.Warn("BOOTSTRAP", "NATS unavailable, using in-process event bus", map[string]interface{}{"error": err.Error()})
	local := bus.NewLocalBus()
	return local, local, local.Close
}

func newRedisClient(url string, sysLogger logger.ILogger) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Invalid REDIS_URL, falling back to localhost: %v", err)
		opt = &redis.Options{Addr: "localhost:6379"}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		sysLogger.Warn("BOOTSTRAP", "Redis unavailable, websocket delivery stays local", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil
	}
	return rdb
}
