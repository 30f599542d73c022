package domain

import (
	"fmt"
	"strings"
	"testing"

	"github.com/louisbranch/fateforge/internal/systems/fatecore"
)

func sequentialIDs(prefix string) func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("%s-%d", prefix, n), nil
	}
}

func TestMergeSuggestionsUpdatesExistingByID(t *testing.T) {
	sheet := Sheet{
		Meta: Meta{Idea: "Wandering swordsman", LadderType: "1-4"},
		Aspects: []Aspect{
			{ID: "aspect-1", Name: AspectHighConcept, Description: "Haunted Ronin"},
			{ID: "aspect-2", Name: AspectTrouble, Description: "Past Sins"},
		},
		Skills: []Skill{
			{ID: "skill-1", Name: "Fight", Rank: 3},
		},
	}
	delta := SuggestionDelta{
		Aspects: []AspectSuggestion{
			{ID: "aspect-1", Description: StringPtr("Haunted Ronin on a Redemption Path")},
		},
		Skills: []SkillSuggestion{
			{ID: "skill-1", Rank: IntPtr(4)},
		},
	}

	got, err := MergeSuggestions(sheet, delta, sequentialIDs("new"))
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	if got.Aspects[0].Description != "Haunted Ronin on a Redemption Path" {
		t.Fatalf("aspect description = %q", got.Aspects[0].Description)
	}
	if got.Aspects[0].Name != AspectHighConcept {
		t.Fatalf("nil name field overwrote aspect name: %q", got.Aspects[0].Name)
	}
	if got.Skills[0].Rank != 4 {
		t.Fatalf("skill rank = %d, want 4", got.Skills[0].Rank)
	}
	if got.Skills[0].Name != "Fight" {
		t.Fatalf("nil rank update changed skill name: %q", got.Skills[0].Name)
	}
}

func TestMergeSuggestionsAppendsNewEntities(t *testing.T) {
	sheet := Sheet{
		Aspects: []Aspect{{ID: "aspect-1", Name: AspectHighConcept}},
	}
	delta := SuggestionDelta{
		Aspects: []AspectSuggestion{
			{Name: StringPtr("Loyal to a Fault"), Description: StringPtr("Friends come first.")},
		},
		Stunts: []StuntSuggestion{
			{Name: StringPtr("Iaijutsu Strike"), Description: StringPtr("+2 to Fight when acting first in a duel.")},
		},
	}

	got, err := MergeSuggestions(sheet, delta, sequentialIDs("new"))
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	if len(got.Aspects) != 2 {
		t.Fatalf("expected 2 aspects, got %d", len(got.Aspects))
	}
	if got.Aspects[1].ID != "new-1" {
		t.Fatalf("new aspect id = %q", got.Aspects[1].ID)
	}
	if len(got.Stunts) != 1 || got.Stunts[0].Name != "Iaijutsu Strike" {
		t.Fatalf("unexpected stunts: %v", got.Stunts)
	}
}

func TestMergeSuggestionsUnknownIDCreatesNewEntity(t *testing.T) {
	sheet := Sheet{
		Stunts: []Stunt{{ID: "stunt-1", Name: "Old Stunt"}},
	}
	delta := SuggestionDelta{
		Stunts: []StuntSuggestion{
			{ID: "stunt-ghost", Name: StringPtr("New Stunt"), Description: StringPtr("Does a thing.")},
		},
	}

	got, err := MergeSuggestions(sheet, delta, sequentialIDs("new"))
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	if len(got.Stunts) != 2 {
		t.Fatalf("expected 2 stunts, got %d", len(got.Stunts))
	}
	if got.Stunts[1].ID != "new-1" {
		t.Fatalf("unknown proposed id should be replaced with a fresh one, got %q", got.Stunts[1].ID)
	}
	if got.Stunts[0].Name != "Old Stunt" {
		t.Fatalf("existing stunt modified: %v", got.Stunts[0])
	}
}

func TestMergeSuggestionsMissingNameFallsBackToEmpty(t *testing.T) {
	delta := SuggestionDelta{
		Aspects: []AspectSuggestion{{Description: StringPtr("Nameless.")}},
	}

	got, err := MergeSuggestions(Sheet{}, delta, sequentialIDs("new"))
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if got.Aspects[0].Name != "" {
		t.Fatalf("expected empty name fallback, got %q", got.Aspects[0].Name)
	}
}

func TestMergeSuggestionsKeepsInputSheetIntact(t *testing.T) {
	sheet := Sheet{
		Skills: []Skill{{ID: "skill-1", Name: "Fight", Rank: 3}},
	}
	delta := SuggestionDelta{
		Skills: []SkillSuggestion{{ID: "skill-1", Rank: IntPtr(1)}},
	}

	if _, err := MergeSuggestions(sheet, delta, sequentialIDs("new")); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if sheet.Skills[0].Rank != 3 {
		t.Fatalf("merge mutated input sheet: rank %d", sheet.Skills[0].Rank)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fight", "fight"},
		{"Burglary / Larceny", "burglary---larceny"},
		{"Iron_Will", "iron-will"},
		{"  Padded  ", "padded"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStableSkillID(t *testing.T) {
	first := StableSkillID("Fight")
	again := StableSkillID("fight")
	if first != again {
		t.Fatalf("ids differ for case variants: %q vs %q", first, again)
	}
	if !strings.HasPrefix(first, "skill-") || len(first) != len("skill-")+8 {
		t.Fatalf("unexpected id shape: %q", first)
	}
	if StableSkillID("Notice") == first {
		t.Fatal("different names should hash to different ids")
	}
}

func TestEnsureSkillIDsReusesExistingByName(t *testing.T) {
	existing := []Skill{
		{ID: "skill-old", Name: "Fight", Rank: 2},
	}
	items := []fatecore.RankedSkill{
		{Name: "Fight", Rank: 4},
		{Name: "Notice", Rank: 3},
	}

	got := EnsureSkillIDs(items, existing)
	if got[0].ID != "skill-old" {
		t.Fatalf("expected reuse of existing id, got %q", got[0].ID)
	}
	if got[1].ID != "skill-notice" {
		t.Fatalf("expected slug id for new skill, got %q", got[1].ID)
	}
}

func TestEnsureSkillIDsDisambiguatesCollisions(t *testing.T) {
	items := []fatecore.RankedSkill{
		{ID: "skill-fight", Name: "Fight", Rank: 4},
		{Name: "Fight", Rank: 2},
		{Name: "Fight", Rank: 1},
	}

	got := EnsureSkillIDs(items, nil)
	if got[1].ID != "skill-fight-2" {
		t.Fatalf("first collision id = %q, want skill-fight-2", got[1].ID)
	}
	if got[2].ID != "skill-fight-3" {
		t.Fatalf("second collision id = %q, want skill-fight-3", got[2].ID)
	}
}

func TestEnsureSkillIDsDoesNotReuseTakenID(t *testing.T) {
	existing := []Skill{{ID: "skill-taken", Name: "Fight"}}
	items := []fatecore.RankedSkill{
		{ID: "skill-taken", Name: "Lore", Rank: 3},
		{Name: "Fight", Rank: 4},
	}

	got := EnsureSkillIDs(items, existing)
	if got[1].ID == "skill-taken" {
		t.Fatal("reused an id already present in the batch")
	}
	if got[1].ID != "skill-fight" {
		t.Fatalf("fallback id = %q, want skill-fight", got[1].ID)
	}
}

func TestSheetProtection(t *testing.T) {
	tests := []struct {
		name           string
		skill          Skill
		allowOverwrite bool
		want           bool
	}{
		{name: "locked", skill: Skill{Locked: true}, want: true},
		{name: "locked ignores overwrite", skill: Skill{Locked: true}, allowOverwrite: true, want: true},
		{name: "user edited", skill: Skill{UserEdited: true}, want: true},
		{name: "user edited with overwrite", skill: Skill{UserEdited: true}, allowOverwrite: true, want: false},
		{name: "untouched", skill: Skill{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.skill.Protected(tt.allowOverwrite); got != tt.want {
				t.Fatalf("Protected(%v) = %v, want %v", tt.allowOverwrite, got, tt.want)
			}
		})
	}
}

func TestSheetAspectSlotsLeft(t *testing.T) {
	sheet := Sheet{Aspects: []Aspect{
		{ID: "a1", Name: AspectHighConcept},
		{ID: "a2", Name: AspectTrouble},
		{ID: "a3", Name: "Loyal to a Fault"},
	}}
	if got := sheet.AspectSlotsLeft(); got != 2 {
		t.Fatalf("AspectSlotsLeft() = %d, want 2", got)
	}

	full := Sheet{Aspects: []Aspect{
		{Name: AspectHighConcept}, {Name: AspectTrouble},
		{Name: "One"}, {Name: "Two"}, {Name: "Three"}, {Name: "Four"},
	}}
	if got := full.AspectSlotsLeft(); got != 0 {
		t.Fatalf("AspectSlotsLeft() on overfull sheet = %d, want 0", got)
	}
}

func TestSheetIsTroubleAspect(t *testing.T) {
	sheet := Sheet{Aspects: []Aspect{
		{ID: "a1", Name: AspectHighConcept},
		{ID: "a2", Name: " trouble "},
	}}
	if sheet.IsTroubleAspect("a1") {
		t.Fatal("high concept misidentified as trouble")
	}
	if !sheet.IsTroubleAspect("a2") {
		t.Fatal("trouble aspect not identified")
	}
	if sheet.IsTroubleAspect("missing") {
		t.Fatal("missing aspect misidentified as trouble")
	}
}
