package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/libris-ai/libris/internal/core/domain"
	"github.com/libris-ai/libris/internal/core/ports/driven"
	"github.com/libris-ai/libris/internal/logger"
	"github.com/libris-ai/libris/internal/textnorm"
)

// composerSystemPrompt instructs the model to recommend only from the
// supplied candidates and to name a chosen title verbatim, which is what
// makes the rerank extraction reliable.
const composerSystemPrompt = "Ești un asistent pentru recomandări de cărți. " +
	"Răspunde în română, clar și prietenos. " +
	"Fă recomandări NUMAI folosind candidații furnizați. " +
	"Dacă alegi o carte anume, menționeaz-o clar și EXACT cu titlul ei în text."

// composerTemperature keeps answers focused but not robotic.
const composerTemperature = 0.35

// Compose asks the LLM for a recommendation over the candidates and moves
// the recommended book (if any) to the front of the list. The reordering is
// deterministic and side-effect free; the input slice is not mutated.
func (s *RecommendService) Compose(
	ctx context.Context, query string, candidates []domain.Candidate,
) (string, []domain.Candidate, error) {
	if s.llm == nil {
		return "", nil, domain.ErrLLMUnavailable
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: composerSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Cererea: %s\n\nCandidați:\n%s", query, candidateContext(candidates))},
	}

	answer, err := s.llm.Chat(ctx, messages, driven.ChatOptions{Temperature: composerTemperature})
	if err != nil {
		return "", nil, fmt.Errorf("chat completion: %w", err)
	}

	idx := recommendedIndex(answer, candidates)
	if idx > 0 {
		logger.Info("Recommended title found at index %d, moving to front", idx)
	}
	return answer, reorderRecommended(candidates, idx), nil
}

// candidateContext builds the numbered context block sent to the LLM.
func candidateContext(candidates []domain.Candidate) string {
	if len(candidates) == 0 {
		return "Nicio potrivire."
	}
	lines := make([]string, len(candidates))
	for i, c := range candidates {
		lines[i] = fmt.Sprintf("[Cand#%d] Titlu:%s | Autor:%s | An:%d | Teme:%s\nRezumat:%s",
			i+1, c.Title, c.Author, c.Year, c.Themes, c.Summary)
	}
	return strings.Join(lines, "\n")
}

// recommendedIndex finds which candidate the answer actually recommends:
// the candidate whose normalised title appears in the normalised answer,
// longest title winning so a short title cannot spuriously match inside a
// longer one's occurrence. Returns -1 when no title is found.
func recommendedIndex(answer string, candidates []domain.Candidate) int {
	if answer == "" || len(candidates) == 0 {
		return -1
	}
	normAnswer := textnorm.Normalize(answer)
	bestIdx, bestLen := -1, 0
	for i, c := range candidates {
		t := textnorm.Normalize(c.Title)
		if t != "" && strings.Contains(normAnswer, t) && len(t) > bestLen {
			bestIdx, bestLen = i, len(t)
		}
	}
	return bestIdx
}

// reorderRecommended moves candidates[idx] to the front, preserving the
// relative order of everything else. idx <= 0 leaves the order unchanged.
func reorderRecommended(candidates []domain.Candidate, idx int) []domain.Candidate {
	if idx <= 0 || idx >= len(candidates) {
		return candidates
	}
	out := make([]domain.Candidate, 0, len(candidates))
	out = append(out, candidates[idx])
	out = append(out, candidates[:idx]...)
	out = append(out, candidates[idx+1:]...)
	return out
}
