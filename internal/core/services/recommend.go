package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/libris-ai/libris/internal/core/domain"
	"github.com/libris-ai/libris/internal/core/ports/driven"
	"github.com/libris-ai/libris/internal/core/ports/driving"
	"github.com/libris-ai/libris/internal/logger"
	"github.com/libris-ai/libris/internal/textnorm"
)

// Ensure RecommendService implements the interface.
var _ driving.Recommender = (*RecommendService)(nil)

// themeHintTemplate rewrites a raw query into an explicit theme search,
// biasing the embedding towards thematic rather than literal matches.
const themeHintTemplate = "cărți cu tema %s; recomandări pe această temă"

// blockedNotice is the friendly advisory shown for filtered queries.
const blockedNotice = "Hai să păstrăm conversația prietenoasă 😊. Te rog reformulează fără limbaj ofensator."

// RecommendService runs the retrieval pipeline and the answer composer.
// The moderator and llm are optional; the vector store and embedding
// service are required for semantic modes.
type RecommendService struct {
	vector    driven.VectorStore
	embedder  driven.EmbeddingService
	llm       driven.LLMService
	moderator driven.Moderator
	matcher   *TitleMatcher
}

// NewRecommendService creates the pipeline service.
func NewRecommendService(
	vector driven.VectorStore,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	moderator driven.Moderator,
	matcher *TitleMatcher,
) *RecommendService {
	if matcher == nil {
		matcher = NewTitleMatcher(DefaultTitleMatcherConfig())
	}
	return &RecommendService{
		vector:    vector,
		embedder:  embedder,
		llm:       llm,
		moderator: moderator,
		matcher:   matcher,
	}
}

// Ask runs filter -> retrieve -> compose -> rerank for one query.
func (s *RecommendService) Ask(ctx context.Context, q domain.Query) (*domain.Answer, error) {
	logger.Section("Ask")
	text := strings.TrimSpace(q.Text)
	logger.Debug("Query: %q, mode: %s", text, q.Mode)

	if s.moderator != nil {
		if blocked, term := s.moderator.Check(text); blocked {
			logger.Info("Query blocked by content filter (term: %q)", term)
			return &domain.Answer{Query: text, Blocked: true, Notice: blockedNotice}, nil
		}
	}

	candidates, err := s.Retrieve(ctx, q)
	if err != nil {
		return nil, err
	}
	if q.Mode == domain.SearchModeTitleExact && len(candidates) > 1 {
		candidates = candidates[:1]
	}

	answer, reordered, err := s.Compose(ctx, text, candidates)
	if err != nil {
		return nil, err
	}

	return &domain.Answer{Query: text, Text: answer, Candidates: reordered}, nil
}

// Retrieve returns the ordered candidate list for a query.
// Zero hits is a valid outcome (empty list, nil error); an unreachable
// backend is a configuration error and propagates.
func (s *RecommendService) Retrieve(ctx context.Context, q domain.Query) ([]domain.Candidate, error) {
	if s.vector == nil {
		return nil, domain.ErrVectorUnavailable
	}

	text := strings.TrimSpace(q.Text)
	if text == "" {
		return []domain.Candidate{}, nil
	}

	mode := q.Mode
	if !mode.IsValid() {
		mode = domain.SearchModeFreeContext
	}
	logger.Debug("Retrieve: mode=%s, k=%d, showAll=%t, autoTitle=%t",
		mode, q.Limit(), q.ShowAll, q.AutoTitle)

	switch mode {
	case domain.SearchModeTitleExact:
		return s.retrieveTitleExact(ctx, text)
	case domain.SearchModeTitleContains:
		return s.retrieveTitleContains(ctx, text)
	default:
		return s.retrieveSemantic(ctx, text, mode, q)
	}
}

// retrieveSemantic embeds the (possibly rewritten) query and ranks the index
// by vector distance. When AutoTitle is set, a confident fuzzy title match
// short-circuits to that single book instead.
func (s *RecommendService) retrieveSemantic(
	ctx context.Context, text string, mode domain.SearchMode, q domain.Query,
) ([]domain.Candidate, error) {
	if q.AutoTitle {
		if hit, ok, err := s.autoTitleHit(ctx, text); err != nil {
			return nil, err
		} else if ok {
			logger.Info("Auto-title short-circuit: %q", hit.Title)
			return []domain.Candidate{hit}, nil
		}
	}

	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	queryText := text
	if mode == domain.SearchModeThemeHint {
		queryText = fmt.Sprintf(themeHintTemplate, text)
		logger.Debug("Theme hint query: %q", queryText)
	}

	k := q.Limit()
	if q.ShowAll {
		count, err := s.vector.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count collection: %w", err)
		}
		k = count
	}
	if k == 0 {
		logger.Debug("Empty collection, returning no candidates")
		return []domain.Candidate{}, nil
	}

	embedding, err := s.embedder.Embed(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(embedding))

	hits, err := s.vector.Query(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("vector query: %w", err)
	}
	logger.Debug("Vector query: %d hits", len(hits))

	candidates := make([]domain.Candidate, 0, len(hits))
	for _, hit := range hits {
		candidates = append(candidates, candidateFromStored(hit.Document, &hit.Distance))
	}
	return candidates, nil
}

// autoTitleHit scans all indexed titles and runs the fuzzy matcher.
func (s *RecommendService) autoTitleHit(ctx context.Context, text string) (domain.Candidate, bool, error) {
	docs, err := s.vector.Scroll(ctx)
	if err != nil {
		return domain.Candidate{}, false, fmt.Errorf("scan titles: %w", err)
	}
	titles := make([]string, len(docs))
	for i, d := range docs {
		titles[i] = textnorm.Normalize(d.Metadata[domain.MetaTitle])
	}
	idx, ok := s.matcher.BestIndex(textnorm.Normalize(text), titles)
	if !ok {
		return domain.Candidate{}, false, nil
	}
	return candidateFromStored(docs[idx], nil), true, nil
}

// retrieveTitleExact scans all records and keeps those whose normalised
// title equals the normalised query. No distance is computed.
func (s *RecommendService) retrieveTitleExact(ctx context.Context, title string) ([]domain.Candidate, error) {
	want := textnorm.Normalize(title)
	docs, err := s.vector.Scroll(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan titles: %w", err)
	}
	out := make([]domain.Candidate, 0, 1)
	for _, d := range docs {
		if textnorm.Normalize(d.Metadata[domain.MetaTitle]) == want {
			out = append(out, candidateFromStored(d, nil))
		}
	}
	logger.Debug("Title exact: %d matches for %q", len(out), want)
	return out, nil
}

// retrieveTitleContains keeps every record whose normalised title contains
// the normalised query as a substring.
func (s *RecommendService) retrieveTitleContains(ctx context.Context, sub string) ([]domain.Candidate, error) {
	want := textnorm.Normalize(sub)
	docs, err := s.vector.Scroll(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan titles: %w", err)
	}
	out := make([]domain.Candidate, 0)
	for _, d := range docs {
		if strings.Contains(textnorm.Normalize(d.Metadata[domain.MetaTitle]), want) {
			out = append(out, candidateFromStored(d, nil))
		}
	}
	logger.Debug("Title contains: %d matches for %q", len(out), want)
	return out, nil
}

// candidateFromStored converts an indexed document to a candidate.
// A nil distance means a structural match and scores 1.0.
func candidateFromStored(doc driven.StoredDocument, distance *float64) domain.Candidate {
	year, _ := strconv.Atoi(doc.Metadata[domain.MetaYear])
	score := 1.0
	if distance != nil {
		score = domain.ScoreFromDistance(*distance)
	}
	return domain.Candidate{
		ID:      doc.ID,
		Title:   doc.Metadata[domain.MetaTitle],
		Author:  doc.Metadata[domain.MetaAuthor],
		Year:    year,
		Themes:  doc.Metadata[domain.MetaThemes],
		Summary: summaryFromDocument(doc.Document),
		Score:   score,
	}
}

// summaryFromDocument extracts the synopsis part of the labelled blob.
func summaryFromDocument(doc string) string {
	_, after, found := strings.Cut(doc, "Rezumat:")
	if !found {
		return strings.TrimSpace(doc)
	}
	return strings.TrimSpace(after)
}
