package driving

import "context"

// Ingestor loads the book catalogue into the semantic index.
type Ingestor interface {
	// Ingest embeds and upserts every catalogued book.
	// Returns the number of documents written.
	Ingest(ctx context.Context) (int, error)
}
