package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Chunking  ChunkingConfig
	Search    SearchConfig
	Ai        AIConfig
	Ingestion IngestionConfig
}

type AppConfig struct {
	Name               string
	Version            string
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	UploadDir          string
}

type DatabaseConfig struct {
	Connection string
	// Store selects the document record store: "postgres", "memory" or "redis".
	Store string
}

type ChunkingConfig struct {
	ChunkSize    int
	ChunkOverlap int
}

type SearchConfig struct {
	TopKResults int
}

type AIConfig struct {
	EmbeddingProvider  string // "gemini" or "ollama"
	// EmbeddingDimension applies to the ollama provider only; gemini's
	// text-embedding-004 is fixed at 768. The postgres store pins the
	// document_units embedding column at vector(768), so with that store
	// any other value fails at insert time.
	EmbeddingDimension int
	OllamaBaseURL      string
	OllamaModel        string
	GeminiAPIKey       string
	LLMProvider        string // "ollama" or "openai"
	LLMModel           string
	LLMBaseURL         string
	OpenAIAPIKey       string
	MaxTokens          int
	Temperature        float64
	ContextTokenBudget int
}

type IngestionConfig struct {
	TopicName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Name:               getEnv("APP_NAME", "Knowledge Base Service"),
			Version:            getEnv("APP_VERSION", "1.0.0"),
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			UploadDir:          getEnv("UPLOAD_DIR", "./uploads"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			Store:      getEnv("DOCUMENT_STORE", "postgres"),
		},
		Chunking: ChunkingConfig{
			ChunkSize:    getEnvAsInt("CHUNK_SIZE", 500),
			ChunkOverlap: getEnvAsInt("CHUNK_OVERLAP", 50),
		},
		Search: SearchConfig{
			TopKResults: getEnvAsInt("TOP_K_RESULTS", 5),
		},
		Ai: AIConfig{
			EmbeddingProvider:  getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingDimension: getEnvAsInt("EMBEDDING_DIMENSION", 768),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:        getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			GeminiAPIKey:       getEnv("GOOGLE_GEMINI_API_KEY", ""),
			LLMProvider:        getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:           getEnv("LLM_MODEL", "llama3"),
			LLMBaseURL:         getEnv("LLM_BASE_URL", ""),
			OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
			MaxTokens:          getEnvAsInt("MAX_TOKENS", 1000),
			Temperature:        getEnvAsFloat("TEMPERATURE", 0.7),
			ContextTokenBudget: getEnvAsInt("CONTEXT_TOKEN_BUDGET", 3000),
		},
		Ingestion: IngestionConfig{
			TopicName: getEnv("INGEST_DOCUMENT_TOPIC_NAME", "INGEST_DOCUMENT"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
