package services

import "strings"

// Title matching: decide whether a free-text query is really asking about
// one specific known title, confidently enough to bypass semantic search.

// TitleMatcherConfig holds the tuning parameters of the matcher. The default
// weights are empirical; they are configurable rather than hard invariants.
type TitleMatcherConfig struct {
	// Threshold is the minimum composite score to accept a match.
	Threshold float64

	// SubstringBonus is added when the query occurs inside the title.
	SubstringBonus float64

	// PrefixBonus is added when the title starts with the query.
	PrefixBonus float64

	// GapPenaltyStep is the penalty per rune of length difference.
	GapPenaltyStep float64

	// GapPenaltyCap limits the total length-gap penalty.
	GapPenaltyCap float64
}

// DefaultTitleMatcherConfig returns the standard weights.
func DefaultTitleMatcherConfig() TitleMatcherConfig {
	return TitleMatcherConfig{
		Threshold:      0.60,
		SubstringBonus: 0.25,
		PrefixBonus:    0.15,
		GapPenaltyStep: 0.005,
		GapPenaltyCap:  0.25,
	}
}

// TitleMatcher scores a normalised query against normalised known titles.
type TitleMatcher struct {
	cfg TitleMatcherConfig
}

// NewTitleMatcher creates a matcher. Zero-valued config fields fall back to
// the defaults.
func NewTitleMatcher(cfg TitleMatcherConfig) *TitleMatcher {
	def := DefaultTitleMatcherConfig()
	if cfg.Threshold == 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.SubstringBonus == 0 {
		cfg.SubstringBonus = def.SubstringBonus
	}
	if cfg.PrefixBonus == 0 {
		cfg.PrefixBonus = def.PrefixBonus
	}
	if cfg.GapPenaltyStep == 0 {
		cfg.GapPenaltyStep = def.GapPenaltyStep
	}
	if cfg.GapPenaltyCap == 0 {
		cfg.GapPenaltyCap = def.GapPenaltyCap
	}
	return &TitleMatcher{cfg: cfg}
}

// BestIndex returns the index of the best-matching title, or false when no
// title clears the acceptance threshold. Both the query and the titles must
// already be normalised (textnorm.Normalize).
//
// An exact equality wins immediately. Otherwise each title gets a composite
// score: sequence similarity ratio, plus a substring and a prefix bonus,
// minus a capped length-gap penalty. Ties keep the first title encountered.
func (m *TitleMatcher) BestIndex(query string, titles []string) (int, bool) {
	if query == "" {
		return 0, false
	}
	for i, t := range titles {
		if t == query {
			return i, true
		}
	}

	qr := []rune(query)
	bestIdx, bestScore := -1, 0.0
	for i, t := range titles {
		tr := []rune(t)

		score := sequenceRatio(qr, tr)
		if strings.Contains(t, query) {
			score += m.cfg.SubstringBonus
		}
		if strings.HasPrefix(t, query) {
			score += m.cfg.PrefixBonus
		}
		gap := len(tr) - len(qr)
		if gap < 0 {
			gap = -gap
		}
		penalty := float64(gap) * m.cfg.GapPenaltyStep
		if penalty > m.cfg.GapPenaltyCap {
			penalty = m.cfg.GapPenaltyCap
		}
		score -= penalty

		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}

	if bestIdx < 0 || bestScore < m.cfg.Threshold {
		return 0, false
	}
	return bestIdx, true
}

// sequenceRatio is the classic Ratcliff/Obershelp similarity: twice the
// total length of all matching blocks over the combined length, in [0,1].
func sequenceRatio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchingRunes(a, b, 0, len(a), 0, len(b))) / float64(total)
}

// matchingRunes counts matched runes by recursively splitting around the
// longest common block, exactly as matching_blocks does.
func matchingRunes(a, b []rune, alo, ahi, blo, bhi int) int {
	i, j, size := longestMatch(a, b, alo, ahi, blo, bhi)
	if size == 0 {
		return 0
	}
	return size +
		matchingRunes(a, b, alo, i, blo, j) +
		matchingRunes(a, b, i+size, ahi, j+size, bhi)
}

// longestMatch finds the longest block a[i:i+size] == b[j:j+size] within the
// given windows, preferring the earliest block on ties.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for j := blo; j < bhi; j++ {
			if a[i] != b[j] {
				continue
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, bestsize
}
