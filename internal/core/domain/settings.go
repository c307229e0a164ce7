package domain

// AIProvider identifies an AI service provider.
type AIProvider string

// Supported AI providers.
const (
	AIProviderOpenAI AIProvider = "openai"
	AIProviderOllama AIProvider = "ollama"
)

// IsValid checks if the provider is supported.
func (p AIProvider) IsValid() bool {
	return p == AIProviderOpenAI || p == AIProviderOllama
}

// EmbeddingSettings configures the embedding service.
type EmbeddingSettings struct {
	// Provider selects the backend ("openai" or "ollama").
	Provider AIProvider

	// Model is the embedding model name (provider default when empty).
	Model string

	// BaseURL overrides the provider endpoint.
	BaseURL string

	// APIKey authenticates hosted providers (unused for ollama).
	APIKey string
}

// IsConfigured reports whether the settings can produce a service.
// Ollama needs no key; OpenAI requires one.
func (s EmbeddingSettings) IsConfigured() bool {
	switch s.Provider {
	case AIProviderOllama:
		return true
	case AIProviderOpenAI:
		return s.APIKey != ""
	default:
		return false
	}
}

// LLMSettings configures the chat completion service.
type LLMSettings struct {
	// Provider selects the backend ("openai" or "ollama").
	Provider AIProvider

	// Model is the LLM model name (provider default when empty).
	Model string

	// BaseURL overrides the provider endpoint.
	BaseURL string

	// APIKey authenticates hosted providers (unused for ollama).
	APIKey string
}

// IsConfigured reports whether the settings can produce a service.
func (s LLMSettings) IsConfigured() bool {
	switch s.Provider {
	case AIProviderOllama:
		return true
	case AIProviderOpenAI:
		return s.APIKey != ""
	default:
		return false
	}
}
