package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors. Configuration errors
// (unreachable backend, missing credential) are fatal for the current
// operation and must never be reported as an empty result set.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyCatalogue indicates the record store has no books to ingest.
	ErrEmptyCatalogue = errors.New("no books in catalogue")

	// ErrVectorUnavailable indicates the vector store is not configured or
	// unreachable. Retrieval cannot distinguish "no results" without it.
	ErrVectorUnavailable = errors.New("vector store unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Semantic search modes are disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the chat service is not configured.
	// Answer composition is disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
