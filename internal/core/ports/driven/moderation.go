package driven

// Moderator screens user text before it reaches retrieval or the LLM.
type Moderator interface {
	// Check reports whether the text contains inappropriate language and,
	// if so, the offending term.
	Check(text string) (blocked bool, term string)
}
