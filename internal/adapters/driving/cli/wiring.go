package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/libris-ai/libris/internal/adapters/driven/ai"
	"github.com/libris-ai/libris/internal/adapters/driven/ai/openai"
	sqlitestore "github.com/libris-ai/libris/internal/adapters/driven/bookstore/sqlite"
	"github.com/libris-ai/libris/internal/adapters/driven/config/file"
	"github.com/libris-ai/libris/internal/adapters/driven/image"
	"github.com/libris-ai/libris/internal/adapters/driven/moderation"
	"github.com/libris-ai/libris/internal/adapters/driven/speech"
	"github.com/libris-ai/libris/internal/adapters/driven/vector/memory"
	"github.com/libris-ai/libris/internal/adapters/driven/vector/qdrant"
	"github.com/libris-ai/libris/internal/core/domain"
	"github.com/libris-ai/libris/internal/core/ports/driven"
	"github.com/libris-ai/libris/internal/core/services"
	"github.com/libris-ai/libris/internal/logger"
)

// Configuration keys.
const (
	keyAIProvider       = "ai.provider"
	keyAPIKey           = "ai.api_key"
	keyBaseURL          = "ai.base_url"
	keyEmbeddingModel   = "ai.embedding_model"
	keyLLMModel         = "ai.llm_model"
	keyVectorBackend    = "vector.backend"
	keyVectorHost       = "vector.host"
	keyVectorPort       = "vector.port"
	keyVectorCollection = "vector.collection"
)

// Vector backend defaults.
const (
	backendQdrant = "qdrant"
	backendMemory = "memory"

	defaultQdrantHost = "localhost"
	defaultQdrantPort = 6334
	defaultCollection = "book_summaries"
)

// app bundles the wired services for one command invocation.
type app struct {
	config      driven.ConfigStore
	books       *sqlitestore.Store
	vector      driven.VectorStore
	embedder    driven.EmbeddingService
	llm         driven.LLMService
	speech      driven.SpeechService
	image       driven.ImageService
	recommender *services.RecommendService
	ingestor    *services.IngestService
}

// Close releases all held resources.
func (a *app) Close() {
	if a.embedder != nil {
		a.embedder.Close()
	}
	if a.llm != nil {
		a.llm.Close()
	}
	if a.vector != nil {
		a.vector.Close()
	}
	if a.books != nil {
		a.books.Close()
	}
}

// buildApp assembles the full service graph from config and environment.
// The core never reads the environment itself; the API key is resolved here.
func buildApp() (*app, error) {
	cfg, err := file.NewConfigStore(flagConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}

	books, err := sqlitestore.NewStore(flagDataDir)
	if err != nil {
		return nil, fmt.Errorf("opening book store: %w", err)
	}

	vector, err := buildVectorStore(cfg)
	if err != nil {
		books.Close()
		return nil, err
	}

	embedSettings, llmSettings := buildAISettings(cfg)

	embedder, err := ai.CreateAndValidateEmbeddingService(embedSettings)
	if err != nil {
		logger.Warn("Embedding service unavailable: %v", err)
	}
	llm, err := ai.CreateAndValidateLLMService(llmSettings)
	if err != nil {
		logger.Warn("LLM service unavailable: %v", err)
	}

	a := &app{
		config:   cfg,
		books:    books,
		vector:   vector,
		embedder: embedder,
		llm:      llm,
		speech:   buildSpeechChain(embedSettings.APIKey, cfg),
		image:    buildImageChain(embedSettings.APIKey, cfg),
	}
	a.recommender = services.NewRecommendService(vector, embedder, llm, moderation.NewFilter(), nil)
	a.ingestor = services.NewIngestService(books, vector, embedder)
	return a, nil
}

// sqliteStore opens just the book store, for commands that need no AI.
func sqliteStore() (*sqlitestore.Store, error) {
	books, err := sqlitestore.NewStore(flagDataDir)
	if err != nil {
		return nil, fmt.Errorf("opening book store: %w", err)
	}
	return books, nil
}

// buildVectorStore picks the backend. Qdrant is the default; the in-memory
// store serves offline sessions and is re-ingested per process.
func buildVectorStore(cfg driven.ConfigStore) (driven.VectorStore, error) {
	backend := cfg.GetString(keyVectorBackend)
	if backend == "" {
		backend = backendQdrant
	}

	switch backend {
	case backendMemory:
		return memory.NewStore(), nil

	case backendQdrant:
		host := cfg.GetString(keyVectorHost)
		if host == "" {
			host = defaultQdrantHost
		}
		port := cfg.GetInt(keyVectorPort)
		if port == 0 {
			port = defaultQdrantPort
		}
		collection := cfg.GetString(keyVectorCollection)
		if collection == "" {
			collection = defaultCollection
		}
		store, err := qdrant.NewStore(host, port, collection)
		if err != nil {
			return nil, fmt.Errorf("connecting to qdrant: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported vector backend: %s", backend)
	}
}

// buildAISettings resolves provider settings. OPENAI_API_KEY in the
// environment overrides the stored key.
func buildAISettings(cfg driven.ConfigStore) (domain.EmbeddingSettings, domain.LLMSettings) {
	provider := domain.AIProvider(cfg.GetString(keyAIProvider))
	if !provider.IsValid() {
		provider = domain.AIProviderOpenAI
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = cfg.GetString(keyAPIKey)
	}
	baseURL := cfg.GetString(keyBaseURL)

	embed := domain.EmbeddingSettings{
		Provider: provider,
		Model:    cfg.GetString(keyEmbeddingModel),
		BaseURL:  baseURL,
		APIKey:   apiKey,
	}
	llm := domain.LLMSettings{
		Provider: provider,
		Model:    cfg.GetString(keyLLMModel),
		BaseURL:  baseURL,
		APIKey:   apiKey,
	}
	return embed, llm
}

// buildSpeechChain wires the TTS providers. Without an API key the chain is
// empty and synthesis degrades to silence.
func buildSpeechChain(apiKey string, cfg driven.ConfigStore) driven.SpeechService {
	var providers []driven.SpeechService
	if apiKey != "" {
		svc, err := openai.NewSpeechService(openai.SpeechConfig{
			APIKey:  apiKey,
			BaseURL: cfg.GetString(keyBaseURL),
		})
		if err == nil {
			providers = append(providers, svc)
		}
	}
	return speech.NewChain(providers...)
}

// buildImageChain wires the illustration providers with the local
// placeholder as the last resort.
func buildImageChain(apiKey string, cfg driven.ConfigStore) driven.ImageService {
	var providers []driven.ImageService
	if apiKey != "" {
		svc, err := openai.NewImageService(openai.ImageConfig{
			APIKey:  apiKey,
			BaseURL: cfg.GetString(keyBaseURL),
		})
		if err == nil {
			providers = append(providers, svc)
		}
	}
	return image.NewChain(providers...)
}

// ensureIndexed makes sure the semantic index has content. The in-memory
// backend loses its contents between processes, so it is seeded and
// re-ingested on demand.
func ensureIndexed(ctx context.Context, a *app) error {
	count, err := a.vector.Count(ctx)
	if err != nil {
		return fmt.Errorf("checking index: %w", err)
	}
	if count > 0 {
		return nil
	}

	books, err := a.books.Count(ctx)
	if err != nil {
		return err
	}
	if books == 0 {
		if _, err := a.books.Seed(ctx); err != nil {
			return fmt.Errorf("seeding catalogue: %w", err)
		}
	}

	n, err := a.ingestor.Ingest(ctx)
	if err != nil {
		return err
	}
	logger.Info("Indexed %d books", n)
	return nil
}
