package domain

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/louisbranch/fateforge/internal/systems/fatecore"
)

// MergeSuggestions folds a suggestion delta into the sheet. Suggestions
// whose ID matches an existing entity update only their non-nil fields;
// everything else is appended as a new entity with an ID from newID.
// Existing entities keep their relative order, new ones follow in
// suggestion order.
func MergeSuggestions(sheet Sheet, delta SuggestionDelta, newID func() (string, error)) (Sheet, error) {
	merged := Sheet{
		ID:      sheet.ID,
		Meta:    sheet.Meta,
		Aspects: make([]Aspect, len(sheet.Aspects)),
		Skills:  make([]Skill, len(sheet.Skills)),
		Stunts:  make([]Stunt, len(sheet.Stunts)),
	}
	copy(merged.Aspects, sheet.Aspects)
	copy(merged.Skills, sheet.Skills)
	copy(merged.Stunts, sheet.Stunts)

	aspectIdx := make(map[string]int, len(merged.Aspects))
	for i, a := range merged.Aspects {
		aspectIdx[a.ID] = i
	}
	for _, sug := range delta.Aspects {
		if i, ok := aspectIdx[sug.ID]; ok && sug.ID != "" {
			if sug.Name != nil {
				merged.Aspects[i].Name = *sug.Name
			}
			if sug.Description != nil {
				merged.Aspects[i].Description = *sug.Description
			}
			continue
		}
		id, err := newID()
		if err != nil {
			return Sheet{}, fmt.Errorf("new aspect id: %w", err)
		}
		merged.Aspects = append(merged.Aspects, Aspect{
			ID:          id,
			Name:        deref(sug.Name),
			Description: deref(sug.Description),
		})
		aspectIdx[id] = len(merged.Aspects) - 1
	}

	skillIdx := make(map[string]int, len(merged.Skills))
	for i, s := range merged.Skills {
		skillIdx[s.ID] = i
	}
	for _, sug := range delta.Skills {
		if i, ok := skillIdx[sug.ID]; ok && sug.ID != "" {
			if sug.Name != nil {
				merged.Skills[i].Name = *sug.Name
			}
			if sug.Rank != nil {
				merged.Skills[i].Rank = *sug.Rank
			}
			continue
		}
		id, err := newID()
		if err != nil {
			return Sheet{}, fmt.Errorf("new skill id: %w", err)
		}
		rank := 0
		if sug.Rank != nil {
			rank = *sug.Rank
		}
		merged.Skills = append(merged.Skills, Skill{
			ID:   id,
			Name: deref(sug.Name),
			Rank: rank,
		})
		skillIdx[id] = len(merged.Skills) - 1
	}

	stuntIdx := make(map[string]int, len(merged.Stunts))
	for i, s := range merged.Stunts {
		stuntIdx[s.ID] = i
	}
	for _, sug := range delta.Stunts {
		if i, ok := stuntIdx[sug.ID]; ok && sug.ID != "" {
			if sug.Name != nil {
				merged.Stunts[i].Name = *sug.Name
			}
			if sug.Description != nil {
				merged.Stunts[i].Description = *sug.Description
			}
			continue
		}
		id, err := newID()
		if err != nil {
			return Sheet{}, fmt.Errorf("new stunt id: %w", err)
		}
		merged.Stunts = append(merged.Stunts, Stunt{
			ID:          id,
			Name:        deref(sug.Name),
			Description: deref(sug.Description),
		})
		stuntIdx[id] = len(merged.Stunts) - 1
	}

	return merged, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Slugify lowercases a name and folds separators to hyphens for use in
// human-readable IDs.
func Slugify(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "_", "-")
	return s
}

// StableSkillID derives a deterministic skill ID from the skill name, so
// repeated skeleton generations for the same skill agree on IDs.
func StableSkillID(name string) string {
	sum := sha1.Sum([]byte(strings.ToLower(name)))
	return "skill-" + hex.EncodeToString(sum[:])[:8]
}

// EnsureSkillIDs assigns IDs to ranked skills that lack one. A skill
// whose name matches an existing sheet skill reuses that skill's ID when
// it is not already taken; otherwise a slug-based ID is generated, with
// a numeric suffix on collision.
func EnsureSkillIDs(items []fatecore.RankedSkill, existing []Skill) []fatecore.RankedSkill {
	nameToExisting := make(map[string]string, len(existing))
	for _, s := range existing {
		if s.ID != "" {
			nameToExisting[strings.ToLower(strings.TrimSpace(s.Name))] = s.ID
		}
	}

	usedIDs := make(map[string]bool, len(items))
	for _, it := range items {
		if it.ID != "" {
			usedIDs[it.ID] = true
		}
	}

	out := make([]fatecore.RankedSkill, 0, len(items))
	for _, it := range items {
		id := it.ID
		if id == "" {
			name := strings.TrimSpace(it.Name)
			if existingID, ok := nameToExisting[strings.ToLower(name)]; ok && !usedIDs[existingID] {
				id = existingID
			} else {
				base := "skill-" + Slugify(name)
				id = base
				for n := 2; usedIDs[id]; n++ {
					id = fmt.Sprintf("%s-%d", base, n)
				}
			}
		}
		usedIDs[id] = true
		it.ID = id
		out = append(out, it)
	}
	return out
}
