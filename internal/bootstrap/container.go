package bootstrap

import (
	"context"
	"log"

	"knowledgebase-be/internal/config"
	"knowledgebase-be/internal/controller"
	"knowledgebase-be/internal/pkg/logger"
	"knowledgebase-be/internal/repository/contract"
	"knowledgebase-be/internal/repository/implementation"
	"knowledgebase-be/internal/repository/memory"
	"knowledgebase-be/internal/repository/redisrepo"
	"knowledgebase-be/internal/service"
	"knowledgebase-be/pkg/chunker"
	"knowledgebase-be/pkg/embedding"
	"knowledgebase-be/pkg/extractor"
	"knowledgebase-be/pkg/llm"
	"knowledgebase-be/pkg/llm/factory"
	"knowledgebase-be/pkg/rag/answer"
	"knowledgebase-be/pkg/rag/completeness"
	"knowledgebase-be/pkg/rag/contextbuilder"
	"knowledgebase-be/pkg/retry"
	"knowledgebase-be/pkg/tokenizer"
	"knowledgebase-be/pkg/vectorindex"

	pktNats "knowledgebase-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController     controller.IDocumentController
	SearchController       controller.ISearchController
	QAController           controller.IQAController
	CompletenessController controller.ICompletenessController
	HealthController       controller.IHealthController

	// Background Services (Exposed for main.go to run)
	IngestConsumerService service.IIngestConsumerService

	Logger logger.ILogger
}

// NewContainer wires repositories, collaborators and services. db may be nil
// when the memory or redis document store is selected.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Collaborators
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	} else {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
			cfg.Ai.EmbeddingDimension,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	}

	llmBaseURL := cfg.Ai.LLMBaseURL
	if llmBaseURL == "" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3.5 Infrastructure
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	// 4. Repositories
	var unitRepo contract.UnitRepository
	var documentRepo contract.DocumentRepository

	switch cfg.Database.Store {
	case "memory":
		unitRepo = memory.NewUnitRepository()
		documentRepo = memory.NewDocumentRepository()
		log.Printf("[INFO] Using Document Store: MEMORY")
	case "redis":
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
		}
		// Unit vectors stay in memory; redis holds the document records.
		unitRepo = memory.NewUnitRepository()
		documentRepo = redisrepo.NewDocumentRepository(rdb)
		log.Printf("[INFO] Using Document Store: REDIS")
	default:
		unitRepo = implementation.NewUnitRepository(db)
		documentRepo = implementation.NewDocumentRepository(db)
		log.Printf("[INFO] Using Document Store: POSTGRES")
	}

	index := vectorindex.New(embeddingProvider, unitRepo)

	// 5. RAG pipeline
	counter := tokenizer.NewCounter(cfg.Ai.LLMModel)
	builder := contextbuilder.New(counter)
	policy := retry.DefaultPolicy(llm.IsTransient)

	synthesizer := answer.NewSynthesizer(
		llmProvider,
		builder,
		policy,
		cfg.Ai.MaxTokens,
		cfg.Ai.Temperature,
		cfg.Ai.ContextTokenBudget,
	)
	assessor := completeness.NewAssessor(
		llmProvider,
		builder,
		policy,
		cfg.Ai.MaxTokens,
		cfg.Ai.ContextTokenBudget,
	)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Ingestion.TopicName, pubSub)
	ingestConsumerService := service.NewIngestConsumerService(
		pubSub,
		cfg.Ingestion.TopicName,
		documentRepo,
		extractor.New(),
		chunker.New(cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap),
		index,
		natsPub,
		sysLogger,
	)

	documentService := service.NewDocumentService(
		documentRepo,
		index,
		publisherService,
		natsPub,
		sysLogger,
		cfg.App.UploadDir,
	)
	searchService := service.NewSearchService(index, sysLogger, cfg.Search.TopKResults)
	qaService := service.NewQAService(index, synthesizer, sysLogger, cfg.Search.TopKResults)
	completenessService := service.NewCompletenessService(index, assessor, sysLogger)
	healthService := service.NewHealthService(index, cfg.App.Version)

	// 7. Controllers
	return &Container{
		DocumentController:     controller.NewDocumentController(documentService),
		SearchController:       controller.NewSearchController(searchService),
		QAController:           controller.NewQAController(qaService),
		CompletenessController: controller.NewCompletenessController(completenessService),
		HealthController:       controller.NewHealthController(healthService),

		IngestConsumerService: ingestConsumerService,

		Logger: sysLogger,
	}
}
