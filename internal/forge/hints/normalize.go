// Package hints normalizes raw GM hint candidates into the exact shape
// each target category requires.
package hints

import (
	"fmt"
	"strings"

	"github.com/louisbranch/fateforge/internal/forge/domain"
	"github.com/louisbranch/fateforge/internal/forge/model"
)

// Hint types.
const (
	TypeInvoke          = "invoke"
	TypeCompel          = "compel"
	TypeCreateAdvantage = "create_advantage"
	TypePlayerInvoke    = "player_invoke"
	TypeTrigger         = "trigger"
	TypeEdgeCase        = "edge_case"
	TypeSynergy         = "synergy"
)

// Hint is a normalized GM or player usage hint.
type Hint struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Narrative string `json:"narrative"`
	Mechanics string `json:"mechanics"`
}

// Response is the normalized hint list plus passthrough notes.
type Response struct {
	Hints []Hint `json:"hints"`
	Notes string `json:"notes,omitempty"`
}

var validTypes = map[string]bool{
	TypeInvoke:          true,
	TypeCompel:          true,
	TypeCreateAdvantage: true,
	TypePlayerInvoke:    true,
	TypeTrigger:         true,
	TypeEdgeCase:        true,
	TypeSynergy:         true,
}

var typeAliases = map[string]string{
	"ca":     TypeCreateAdvantage,
	"player": TypePlayerInvoke,
	"gm":     TypeCompel,
}

// Normalize converts raw hint candidates into the exact count and type
// composition the target category requires, synthesizing placeholder
// hints for anything the candidates do not cover. It never fails on
// malformed candidates; at worst the whole output is synthesized.
func Normalize(sheet domain.Sheet, targetType, targetID string, pred model.HintsPrediction, newID func() (string, error)) (Response, error) {
	isTrouble := targetType == "aspect" && sheet.IsTroubleAspect(targetID)

	uniq := dedupe(extract(pred.Hints, targetType))

	var final []Hint
	switch {
	case targetType == "stunt":
		for _, want := range []string{TypeTrigger, TypeEdgeCase, TypeSynergy} {
			if cand, ok := firstOfType(uniq, want); ok {
				final = append(final, cand)
				continue
			}
			final = append(final, Hint{
				Type:      want,
				Title:     titleForType(want),
				Narrative: "Usage example.",
				Mechanics: "Add a concrete Fate mechanic line.",
			})
		}
	case isTrouble:
		for _, want := range []string{TypeCompel, TypeCreateAdvantage} {
			if cand, ok := firstOfType(uniq, want); ok {
				final = append(final, cand)
				continue
			}
			final = append(final, Hint{
				Type:      want,
				Title:     titleForType(want),
				Narrative: "GM uses the Trouble against the PC.",
				Mechanics: "Compel: GM offers a fate point for a complication.",
			})
		}
		if cand, ok := firstOfTypes(uniq, TypePlayerInvoke, TypeInvoke); ok {
			cand.Type = TypePlayerInvoke
			final = append(final, cand)
		} else {
			final = append(final, Hint{
				Type:      TypePlayerInvoke,
				Title:     "Player Invoke",
				Narrative: "Player leverages their Trouble positively in a clutch moment.",
				Mechanics: "Spend a fate point to gain +2 or reroll.",
			})
		}
	default:
		var pool []Hint
		for _, h := range uniq {
			if h.Type == TypeInvoke || h.Type == TypeCompel || h.Type == TypeCreateAdvantage {
				pool = append(pool, h)
			}
		}
		switch {
		case len(pool) >= 2:
			final = pool[:2]
		case len(pool) == 1:
			final = append(pool, Hint{
				Type:      TypeCreateAdvantage,
				Title:     "Create Advantage",
				Narrative: "Set up a favorable situation that this aspect naturally supports.",
				Mechanics: "Create an advantage to place a free invoke.",
			})
		default:
			final = []Hint{
				{
					Type:      TypeInvoke,
					Title:     "Invoke",
					Narrative: "Leverage the aspect to gain advantage.",
					Mechanics: "Spend a fate point for +2 or reroll.",
				},
				{
					Type:      TypeCreateAdvantage,
					Title:     "Create Advantage",
					Narrative: "Establish a situational benefit tied to the aspect.",
					Mechanics: "Create an advantage and gain a free invoke if you succeed with style.",
				},
			}
		}
	}

	for i := range final {
		if final[i].ID == "" {
			id, err := newID()
			if err != nil {
				return Response{}, fmt.Errorf("new hint id: %w", err)
			}
			final[i].ID = id
		}
	}

	return Response{Hints: final, Notes: pred.Notes}, nil
}

// extract converts raw candidates into hints, dropping any without
// narrative or mechanics and folding off-list types onto the target's
// default.
func extract(raw []any, targetType string) []Hint {
	var out []Hint
	for _, candidate := range raw {
		narrative := model.StringField(candidate, "narrative")
		mechanics := model.StringField(candidate, "mechanics")
		if narrative == "" || mechanics == "" {
			continue
		}

		title := model.StringField(candidate, "title")
		if title == "" {
			title = "Hint"
		}

		hintType := strings.ToLower(model.StringField(candidate, "type"))
		if !validTypes[hintType] {
			if alias, ok := typeAliases[hintType]; ok {
				hintType = alias
			}
			if !validTypes[hintType] {
				if targetType == "aspect" {
					hintType = TypeInvoke
				} else {
					hintType = TypeTrigger
				}
			}
		}

		out = append(out, Hint{
			Type:      hintType,
			Title:     title,
			Narrative: narrative,
			Mechanics: mechanics,
		})
	}
	return out
}

// dedupe drops hints repeating an earlier (type, narrative) pair.
func dedupe(hints []Hint) []Hint {
	seen := make(map[string]bool, len(hints))
	var out []Hint
	for _, h := range hints {
		key := h.Type + "|" + strings.ToLower(strings.TrimSpace(h.Narrative))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h)
	}
	return out
}

func firstOfType(hints []Hint, hintType string) (Hint, bool) {
	for _, h := range hints {
		if h.Type == hintType {
			return h, true
		}
	}
	return Hint{}, false
}

func firstOfTypes(hints []Hint, types ...string) (Hint, bool) {
	for _, h := range hints {
		for _, t := range types {
			if h.Type == t {
				return h, true
			}
		}
	}
	return Hint{}, false
}

func titleForType(hintType string) string {
	words := strings.Split(hintType, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
