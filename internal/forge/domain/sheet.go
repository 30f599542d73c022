// Package domain defines the character sheet model and the merge rules
// that fold generated suggestions into an existing sheet.
package domain

import "strings"

// Reserved aspect names. Every sheet carries these two aspects; any
// other aspect is an additional one.
const (
	AspectHighConcept = "High Concept"
	AspectTrouble     = "Trouble"
)

// MaxAdditionalAspects caps the aspects a sheet holds beyond the high
// concept and trouble.
const MaxAdditionalAspects = 3

// Meta carries the premise a sheet is generated from.
type Meta struct {
	Idea       string `json:"idea"`
	Setting    string `json:"setting,omitempty"`
	LadderType string `json:"ladderType,omitempty"`
}

// Aspect is a narrative truth about the character.
type Aspect struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Locked      bool   `json:"locked,omitempty"`
	UserEdited  bool   `json:"userEdited,omitempty"`
}

// Skill is a rated capability on the ladder.
type Skill struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Rank       int    `json:"rank"`
	Locked     bool   `json:"locked,omitempty"`
	UserEdited bool   `json:"userEdited,omitempty"`
}

// Stunt is a special ability tied to a skill or aspect.
type Stunt struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Locked      bool   `json:"locked,omitempty"`
	UserEdited  bool   `json:"userEdited,omitempty"`
}

// Sheet is a complete character sheet.
type Sheet struct {
	ID      string   `json:"id,omitempty"`
	Meta    Meta     `json:"meta"`
	Aspects []Aspect `json:"aspects"`
	Skills  []Skill  `json:"skills"`
	Stunts  []Stunt  `json:"stunts"`
}

// Protected reports whether the aspect must survive regeneration
// untouched. Locked entities are always protected; user-edited entities
// are protected unless the caller allows overwriting user edits.
func (a Aspect) Protected(allowOverwrite bool) bool {
	return a.Locked || (a.UserEdited && !allowOverwrite)
}

// Protected reports whether the skill must survive regeneration untouched.
func (s Skill) Protected(allowOverwrite bool) bool {
	return s.Locked || (s.UserEdited && !allowOverwrite)
}

// Protected reports whether the stunt must survive regeneration untouched.
func (s Stunt) Protected(allowOverwrite bool) bool {
	return s.Locked || (s.UserEdited && !allowOverwrite)
}

// ProtectedSkillIDs returns the set of skill IDs regeneration must not move.
func (s Sheet) ProtectedSkillIDs(allowOverwrite bool) map[string]bool {
	out := make(map[string]bool)
	for _, skill := range s.Skills {
		if skill.Protected(allowOverwrite) {
			out[skill.ID] = true
		}
	}
	return out
}

// AspectByName returns the first aspect with the given name.
func (s Sheet) AspectByName(name string) (Aspect, bool) {
	for _, a := range s.Aspects {
		if a.Name == name {
			return a, true
		}
	}
	return Aspect{}, false
}

// AspectByID returns the aspect with the given ID.
func (s Sheet) AspectByID(id string) (Aspect, bool) {
	for _, a := range s.Aspects {
		if a.ID == id {
			return a, true
		}
	}
	return Aspect{}, false
}

// StuntByID returns the stunt with the given ID.
func (s Sheet) StuntByID(id string) (Stunt, bool) {
	for _, st := range s.Stunts {
		if st.ID == id {
			return st, true
		}
	}
	return Stunt{}, false
}

// SkillNameByID returns the name of the skill with the given ID.
func (s Sheet) SkillNameByID(id string) (string, bool) {
	for _, sk := range s.Skills {
		if sk.ID == id {
			return sk.Name, true
		}
	}
	return "", false
}

// AdditionalAspects returns the aspects that are neither the high
// concept nor the trouble.
func (s Sheet) AdditionalAspects() []Aspect {
	var out []Aspect
	for _, a := range s.Aspects {
		if a.Name != AspectHighConcept && a.Name != AspectTrouble {
			out = append(out, a)
		}
	}
	return out
}

// AspectSlotsLeft returns how many additional aspects the sheet still
// has room for.
func (s Sheet) AspectSlotsLeft() int {
	left := MaxAdditionalAspects - len(s.AdditionalAspects())
	if left < 0 {
		return 0
	}
	return left
}

// IsTroubleAspect reports whether the aspect with the given ID is the
// sheet's Trouble.
func (s Sheet) IsTroubleAspect(id string) bool {
	a, ok := s.AspectByID(id)
	if !ok {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(a.Name), AspectTrouble)
}
