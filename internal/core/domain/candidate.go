package domain

// Candidate is a transient, per-query search result. Candidates are produced
// fresh for every query and never persisted.
type Candidate struct {
	// ID is the indexed document slug.
	ID string

	// Title is the book title from the index metadata.
	Title string

	// Author is the author name.
	Author string

	// Year is the publication year.
	Year int

	// Themes is the comma-separated tag list.
	Themes string

	// Summary is the synopsis extracted from the indexed document.
	Summary string

	// Score is the relevance in [0,1]. 1.0 means an exact structural match;
	// lower values reflect semantic distance (score = max(0, 1-distance)).
	Score float64
}

// ScoreFromDistance converts a vector distance to a candidate score,
// clamped to [0,1].
func ScoreFromDistance(distance float64) float64 {
	score := 1.0 - distance
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Answer is the outcome of a full ask: the composed recommendation plus the
// (possibly reordered) candidates it was based on.
type Answer struct {
	// Query is the original user request.
	Query string

	// Text is the natural-language recommendation.
	Text string

	// Candidates are the retrieved matches, recommendation first.
	Candidates []Candidate

	// Blocked reports that the content filter rejected the query before any
	// retrieval or LLM call.
	Blocked bool

	// Notice is the user-facing advisory shown when Blocked is true.
	Notice string
}
