package domain

// Suggestion types mirror the sheet entities with optional fields. A nil
// field means "leave the current value alone"; an empty ID means the
// suggestion introduces a new entity.

// AspectSuggestion proposes a new aspect or an update to an existing one.
type AspectSuggestion struct {
	ID          string  `json:"id,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// SkillSuggestion proposes a new skill or an update to an existing one.
type SkillSuggestion struct {
	ID   string  `json:"id,omitempty"`
	Name *string `json:"name,omitempty"`
	Rank *int    `json:"rank,omitempty"`
}

// StuntSuggestion proposes a new stunt or an update to an existing one.
type StuntSuggestion struct {
	ID          string  `json:"id,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// SuggestionDelta is a batch of suggestions produced by one generation
// attempt. Nil slices leave the corresponding sheet section untouched.
type SuggestionDelta struct {
	Aspects []AspectSuggestion `json:"aspects,omitempty"`
	Skills  []SkillSuggestion  `json:"skills,omitempty"`
	Stunts  []StuntSuggestion  `json:"stunts,omitempty"`
	Notes   string             `json:"notes,omitempty"`
}

// StringPtr returns a pointer to the given string. Convenience for
// building suggestion literals.
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to the given int.
func IntPtr(n int) *int { return &n }
