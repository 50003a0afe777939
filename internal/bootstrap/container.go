package bootstrap

import (
	"context"
	"log"

	"docvault-rag-be/internal/config"
	"docvault-rag-be/internal/constant"
	"docvault-rag-be/internal/controller"
	"docvault-rag-be/internal/pkg/logger"
	"docvault-rag-be/internal/pkg/mailer"
	"docvault-rag-be/internal/repository/memory"
	"docvault-rag-be/internal/repository/unitofwork"
	"docvault-rag-be/internal/service"
	"docvault-rag-be/internal/websocket"
	"docvault-rag-be/pkg/embedding"
	"docvault-rag-be/pkg/events"
	"docvault-rag-be/pkg/extract"
	"docvault-rag-be/pkg/llm/factory"

	pkgNats "docvault-rag-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	UserController     controller.IUserController
	DocumentController controller.IDocumentController
	SearchController   controller.ISearchController
	AuditController    controller.IAuditController

	// Background services (run from main.go)
	ConsumerService service.IConsumerService

	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	// 4. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}
	if rdb != nil {
		embeddingProvider = embedding.NewCachedProvider(embeddingProvider, rdb, cfg.Ai.EmbeddingCacheTTL)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	sessionRepo := memory.NewSessionRepository()

	// 5. WebSocket hub for the live audit stream
	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	// 6. Services
	auditService := service.NewAuditService(uowFactory, pubSub, sysLogger)
	authService := service.NewAuthService(uowFactory, auditService)
	userService := service.NewUserService(uowFactory, emailService, auditService)
	documentService := service.NewDocumentService(uowFactory, embeddingProvider, extract.NewPlainTextExtractor(), auditService)
	searchService := service.NewSearchService(uowFactory, embeddingProvider, auditService, service.SearchConfig{
		DefaultTopK:  cfg.Search.DefaultTopK,
		QueryTimeout: cfg.Search.QueryTimeout,
	})
	answerService := service.NewAnswerService(searchService, llmProvider, sessionRepo, auditService)

	consumerService := service.NewConsumerService(
		pubSub,
		constant.AuditTopic,
		uowFactory,
		wsHub,
		natsPub,
		sysLogger,
	)

	// Tail the external bus back into the application log so operators see
	// what left the process. Durable name keeps the tail resumable.
	if natsSub != nil {
		err := natsSub.Subscribe("audit.>", "audit-log-tail", func(ctx context.Context, event events.Event) error {
			sysLogger.Debug("AuditBus", "Audit event on external bus", event.Payload())
			return nil
		})
		if err != nil {
			log.Printf("[WARN] Failed to tail audit bus: %v", err)
		}
	}

	return &Container{
		AuthController:     controller.NewAuthController(authService),
		UserController:     controller.NewUserController(userService),
		DocumentController: controller.NewDocumentController(documentService),
		SearchController:   controller.NewSearchController(searchService, answerService),
		AuditController:    controller.NewAuditController(auditService, wsHub),
		ConsumerService:    consumerService,
		WebSocketHub:       wsHub,
	}
}
