package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/fateforge/internal/forge/domain"
	"github.com/louisbranch/fateforge/internal/forge/gate"
	"github.com/louisbranch/fateforge/internal/forge/model"
	"github.com/louisbranch/fateforge/internal/platform/errors"
	"github.com/louisbranch/fateforge/internal/systems/fatecore"
)

// RemainingInput asks for one section of an existing sheet to be
// generated or regenerated.
type RemainingInput struct {
	Sheet          domain.Sheet
	Mode           gate.Mode
	AllowOverwrite bool
	Count          int
	TargetSkillID  string
	ActionType     string
	Note           string
	SkillBank      []string
}

// GenerateRemaining fills in the sheet section the mode selects and
// returns the updated sheet. Locked and user-edited entities survive
// regeneration untouched.
func (s *Service) GenerateRemaining(ctx context.Context, in RemainingInput) (domain.Sheet, error) {
	ctx, span := s.tracer.Start(ctx, "forge.GenerateRemaining")
	defer span.End()

	mode := in.Mode
	if mode == "" {
		mode = gate.ModeStunts
	}
	switch mode {
	case gate.ModeAspects, gate.ModeStunts, gate.ModeSingleStunt, gate.ModeSkills, gate.ModeHighConcept, gate.ModeTrouble:
	default:
		return domain.Sheet{}, errors.WithMetadata(errors.CodeForgeUnsupportedMode, "unsupported generation mode",
			map[string]string{"Mode": string(mode)})
	}

	ladder, err := fatecore.ParseLadder(in.Sheet.Meta.LadderType)
	if err != nil {
		return domain.Sheet{}, err
	}

	bank := in.SkillBank
	if len(bank) == 0 {
		bank = s.skillBank
	}
	slotsLeft := in.Sheet.AspectSlotsLeft()
	targetSkillName, _ := in.Sheet.SkillNameByID(in.TargetSkillID)

	// Skills regeneration only shows the collaborator the anchors it
	// must build around.
	genSheet := in.Sheet
	if mode == gate.ModeSkills {
		var anchors []domain.Skill
		for _, sk := range in.Sheet.Skills {
			if sk.Protected(in.AllowOverwrite) {
				anchors = append(anchors, sk)
			}
		}
		genSheet.Skills = anchors
	}

	var feedback string
	var lastProblems []gate.Problem
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		started := s.now()
		pred, err := s.collaborator.Remaining(ctx, model.RemainingRequest{
			Sheet:           genSheet,
			Mode:            mode,
			AllowOverwrite:  in.AllowOverwrite,
			Count:           in.Count,
			TargetSkillName: targetSkillName,
			ActionType:      in.ActionType,
			Note:            in.Note,
			SkillBank:       bank,
			AspectSlotsLeft: slotsLeft,
			Feedback:        feedback,
		})
		if err != nil {
			return domain.Sheet{}, errors.Wrap(errors.CodeForgeCollaboratorFailed, "remaining prediction", err)
		}

		if mode == gate.ModeSkills {
			out, err := s.rebuildSkills(in, pred, ladder, bank)
			s.record(ctx, "remaining", mode, attempt, nil, started)
			return out, err
		}

		var delta domain.SuggestionDelta
		var problems []gate.Problem
		switch mode {
		case gate.ModeAspects:
			delta, problems = aspectsDelta(in.Sheet, in.Count, slotsLeft, pred)
		case gate.ModeStunts, gate.ModeSingleStunt:
			delta, problems = stuntsDelta(in, mode, targetSkillName, pred)
		case gate.ModeHighConcept, gate.ModeTrouble:
			delta, problems = targetedAspectDelta(in.Sheet, mode, pred)
		}
		s.record(ctx, "remaining", mode, attempt, problems, started)
		if gate.Passed(problems) {
			return domain.MergeSuggestions(in.Sheet, delta, s.newID)
		}
		lastProblems = problems
		feedback = feedbackFrom(problems)
	}

	return domain.Sheet{}, newValidationError(s.maxAttempts, lastProblems)
}

// aspectsDelta clamps proposed aspects to the requested count and the
// free slots, synthesizing generic aspects when the model returns none.
func aspectsDelta(sheet domain.Sheet, count, slotsLeft int, pred model.RemainingPrediction) (domain.SuggestionDelta, []gate.Problem) {
	requested := count
	if requested < 1 {
		requested = 1
	}
	if slotsLeft > 0 && requested > slotsLeft {
		requested = slotsLeft
	}

	items := pred.Aspects
	if len(items) > requested {
		items = items[:requested]
	}
	if len(items) == 0 && slotsLeft > 0 {
		desc := fmt.Sprintf("An aspect reflecting: %s", ideaOrDefault(sheet.Meta))
		for i := 0; i < requested; i++ {
			items = append(items, domain.AspectSuggestion{
				Name:        domain.StringPtr("Aspect"),
				Description: domain.StringPtr(desc),
			})
		}
	}

	var problems []gate.Problem
	for i, a := range items {
		checked := gate.CheckRemaining(gate.ModeAspects, gate.RemainingCandidate{
			AspectName:        deref(a.Name),
			AspectDescription: deref(a.Description),
		})
		problems = append(problems, atIndex("aspects", i, checked)...)
	}

	return domain.SuggestionDelta{Aspects: items, Notes: pred.Notes}, problems
}

var actionPhrases = map[string]string{
	"overcome":         "overcome obstacles",
	"create_advantage": "create an advantage",
	"attack":           "attack decisively",
	"defend":           "defend effectively",
}

// stuntsDelta filters hollow and duplicate stunt proposals, then
// truncates or pads to the requested count.
func stuntsDelta(in RemainingInput, mode gate.Mode, targetSkillName string, pred model.RemainingPrediction) (domain.SuggestionDelta, []gate.Problem) {
	requested := in.Count
	if requested < 1 {
		requested = 1
	}
	if mode == gate.ModeSingleStunt {
		requested = 1
	}

	var items []domain.StuntSuggestion
	for _, sug := range pred.Stunts {
		if strings.TrimSpace(deref(sug.Name)) == "" && strings.TrimSpace(deref(sug.Description)) == "" {
			continue
		}
		items = append(items, sug)
	}

	// Deduplicate by normalized description against the sheet and
	// within the batch.
	seen := make(map[string]bool)
	for _, st := range in.Sheet.Stunts {
		if key := normalizeText(st.Description); key != "" {
			seen[key] = true
		}
	}
	var dedup []domain.StuntSuggestion
	for _, sug := range items {
		key := normalizeText(deref(sug.Description))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		dedup = append(dedup, sug)
	}
	items = dedup
	if len(items) > requested {
		items = items[:requested]
	}

	skillName := targetSkillName
	if skillName == "" {
		if len(in.Sheet.Skills) > 0 {
			skillName = in.Sheet.Skills[0].Name
		} else {
			skillName = "Fight"
		}
	}
	if len(items) == 0 {
		phrase := actionPhrases[in.ActionType]
		if phrase == "" {
			phrase = actionPhrases["overcome"]
		}
		for i := 0; i < requested; i++ {
			items = append(items, genericStunt(skillName, phrase))
		}
	}
	for len(items) < requested {
		items = append(items, genericStunt(skillName, actionPhrases["overcome"]))
	}

	var problems []gate.Problem
	for i, sug := range items {
		checked := gate.CheckRemaining(mode, gate.RemainingCandidate{
			StuntName:        deref(sug.Name),
			StuntDescription: deref(sug.Description),
		})
		problems = append(problems, atIndex("stunts", i, checked)...)
	}

	return domain.SuggestionDelta{Stunts: items, Notes: pred.Notes}, problems
}

func genericStunt(skillName, phrase string) domain.StuntSuggestion {
	return domain.StuntSuggestion{
		Name:        domain.StringPtr("Stunt"),
		Description: domain.StringPtr(fmt.Sprintf("Gain +2 to %s when you %s.", skillName, phrase)),
	}
}

// targetedAspectDelta reduces the prediction to a single update of the
// high concept or trouble, preserving the existing aspect's id.
func targetedAspectDelta(sheet domain.Sheet, mode gate.Mode, pred model.RemainingPrediction) (domain.SuggestionDelta, []gate.Problem) {
	targetName := domain.AspectHighConcept
	if mode == gate.ModeTrouble {
		targetName = domain.AspectTrouble
	}

	var proposed string
	for _, a := range pred.Aspects {
		if text := strings.TrimSpace(deref(a.Description)); text != "" {
			proposed = text
			break
		}
	}
	if proposed == "" {
		idea := ideaOrDefault(sheet.Meta)
		if mode == gate.ModeHighConcept {
			proposed = fmt.Sprintf("%s with a defining role or theme.", idea)
		} else {
			proposed = fmt.Sprintf("A recurring problem for %s.", idea)
		}
	}

	sug := domain.AspectSuggestion{
		Name:        domain.StringPtr(targetName),
		Description: domain.StringPtr(proposed),
	}
	if target, ok := sheet.AspectByName(targetName); ok {
		sug.ID = target.ID
	}

	checked := gate.CheckRemaining(mode, gate.RemainingCandidate{
		AspectName:        targetName,
		AspectDescription: proposed,
	})
	problems := atIndex("aspects", 0, checked)

	return domain.SuggestionDelta{Aspects: []domain.AspectSuggestion{sug}, Notes: pred.Notes}, problems
}

// rebuildSkills replaces the sheet's skill list with a balanced pyramid
// built from protected anchors plus the model's proposals.
func (s *Service) rebuildSkills(in RemainingInput, pred model.RemainingPrediction, ladder fatecore.Ladder, bank []string) (domain.Sheet, error) {
	protectedIDs := in.Sheet.ProtectedSkillIDs(in.AllowOverwrite)

	items := pred.Skills
	if len(items) == 0 && len(in.Sheet.Skills) > 0 {
		for _, sk := range in.Sheet.Skills {
			items = append(items, domain.SkillSuggestion{
				ID:   sk.ID,
				Name: domain.StringPtr(sk.Name),
				Rank: domain.IntPtr(sk.Rank),
			})
		}
	}

	// Anchors come first in sheet order; proposals follow, dropped when
	// they target a protected id or duplicate a name already kept.
	seenNames := make(map[string]bool)
	var merged []domain.SkillSuggestion
	for _, sk := range in.Sheet.Skills {
		if !protectedIDs[sk.ID] {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(sk.Name))
		if key == "" || seenNames[key] {
			continue
		}
		seenNames[key] = true
		merged = append(merged, domain.SkillSuggestion{
			ID:   sk.ID,
			Name: domain.StringPtr(sk.Name),
			Rank: domain.IntPtr(sk.Rank),
		})
	}
	for _, sug := range items {
		if sug.ID != "" && protectedIDs[sug.ID] {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(deref(sug.Name)))
		if key != "" && seenNames[key] {
			continue
		}
		if canonical, ok := fatecore.CanonicalSkillName(deref(sug.Name), bank); ok {
			sug.Name = domain.StringPtr(canonical)
			key = strings.ToLower(canonical)
			if seenNames[key] {
				continue
			}
		}
		seenNames[key] = true
		merged = append(merged, sug)
	}

	ranked := make([]fatecore.RankedSkill, 0, len(merged))
	for _, m := range merged {
		ranked = append(ranked, fatecore.RankedSkill{
			ID:   m.ID,
			Name: deref(m.Name),
			Rank: derefInt(m.Rank, 1),
		})
	}
	balanced := fatecore.PadPyramid(ranked, protectedIDs, ladder, bank, fatecore.DefaultPyramidCap)
	ensured := domain.EnsureSkillIDs(balanced, in.Sheet.Skills)

	byID := make(map[string]domain.Skill, len(in.Sheet.Skills))
	for _, sk := range in.Sheet.Skills {
		byID[sk.ID] = sk
	}
	skills := make([]domain.Skill, 0, len(ensured))
	for _, r := range ensured {
		sk := domain.Skill{ID: r.ID, Name: r.Name, Rank: r.Rank}
		if prev, ok := byID[r.ID]; ok {
			sk.Locked = prev.Locked
			sk.UserEdited = prev.UserEdited
		}
		skills = append(skills, sk)
	}

	out := in.Sheet
	out.Skills = skills
	return out, nil
}

func normalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(text))), " ")
}

func ideaOrDefault(meta domain.Meta) string {
	idea := strings.TrimSpace(meta.Idea)
	if idea == "" {
		return "Character"
	}
	return idea
}
