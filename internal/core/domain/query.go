package domain

const unknownDescription = "Unknown"

// SearchMode selects how the retrieval pipeline resolves a query.
type SearchMode string

// Available search modes.
const (
	// SearchModeFreeContext embeds the raw query and returns the nearest
	// indexed documents by vector distance.
	SearchModeFreeContext SearchMode = "free_context"

	// SearchModeThemeHint rewrites the query into an explicit theme-search
	// phrase before embedding, biasing towards thematic matches.
	SearchModeThemeHint SearchMode = "theme_hint"

	// SearchModeTitleExact returns records whose normalised title equals the
	// normalised query. No embedding is performed.
	SearchModeTitleExact SearchMode = "title_exact"

	// SearchModeTitleContains returns records whose normalised title contains
	// the normalised query as a substring.
	SearchModeTitleContains SearchMode = "title_contains"
)

// IsValid returns true if the search mode is recognised.
func (m SearchMode) IsValid() bool {
	switch m {
	case SearchModeFreeContext, SearchModeThemeHint, SearchModeTitleExact, SearchModeTitleContains:
		return true
	default:
		return false
	}
}

// IsSemantic returns true if this mode needs an embedding provider.
func (m SearchMode) IsSemantic() bool {
	return m == SearchModeFreeContext || m == SearchModeThemeHint
}

// String returns the string representation.
func (m SearchMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m SearchMode) Description() string {
	switch m {
	case SearchModeFreeContext:
		return "Context liber (semantic)"
	case SearchModeThemeHint:
		return "După temă (hint semantic)"
	case SearchModeTitleExact:
		return "Titlu (exact)"
	case SearchModeTitleContains:
		return "Titlu (conține)"
	default:
		return unknownDescription
	}
}

// ParseSearchMode maps a CLI/TUI mode name to a SearchMode.
// Accepts both the canonical values and the short flag spellings.
func ParseSearchMode(s string) (SearchMode, bool) {
	switch s {
	case "free", "context", string(SearchModeFreeContext):
		return SearchModeFreeContext, true
	case "theme", string(SearchModeThemeHint):
		return SearchModeThemeHint, true
	case "exact", "title", string(SearchModeTitleExact):
		return SearchModeTitleExact, true
	case "contains", string(SearchModeTitleContains):
		return SearchModeTitleContains, true
	default:
		return "", false
	}
}

// DefaultK is the number of candidates returned when none is requested.
const DefaultK = 5

// Query is the explicit per-request context passed into the pipeline.
// Presentation-layer state (theme, widget values) stays outside the core.
type Query struct {
	// Text is the raw user query.
	Text string

	// Mode selects the retrieval strategy.
	Mode SearchMode

	// K is the maximum number of semantic candidates (DefaultK if <= 0).
	K int

	// ShowAll returns every indexed document instead of the top K.
	ShowAll bool

	// AutoTitle enables the fuzzy title short-circuit before semantic search.
	AutoTitle bool
}

// Limit returns the effective candidate count for semantic retrieval.
func (q Query) Limit() int {
	if q.K <= 0 {
		return DefaultK
	}
	return q.K
}
