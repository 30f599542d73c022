package fatecore

import (
	"testing"

	"github.com/louisbranch/fateforge/internal/platform/errors"
)

func TestParseLadder(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    Ladder
		wantErr bool
	}{
		{name: "empty defaults to 1-4", value: "", want: Ladder14},
		{name: "whitespace defaults to 1-4", value: "  ", want: Ladder14},
		{name: "explicit 1-4", value: "1-4", want: Ladder14},
		{name: "explicit 1-5", value: "1-5", want: Ladder15},
		{name: "padded value", value: " 1-5 ", want: Ladder15},
		{name: "unknown ladder", value: "1-7", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLadder(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseLadder(%q) expected error", tt.value)
				}
				if !errors.IsCode(err, errors.CodeFatecoreInvalidLadder) {
					t.Fatalf("ParseLadder(%q) error code = %q", tt.value, errors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLadder(%q) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Fatalf("ParseLadder(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestLadderRanks(t *testing.T) {
	if got := Ladder14.Ranks(); !equalInts(got, []int{4, 3, 2, 1}) {
		t.Fatalf("Ladder14.Ranks() = %v", got)
	}
	if got := Ladder15.Ranks(); !equalInts(got, []int{5, 4, 3, 2, 1}) {
		t.Fatalf("Ladder15.Ranks() = %v", got)
	}
}

func TestLadderClamp(t *testing.T) {
	tests := []struct {
		ladder Ladder
		rank   int
		want   int
	}{
		{Ladder14, 4, 4},
		{Ladder14, 1, 1},
		{Ladder14, 7, 4},
		{Ladder14, 0, 1},
		{Ladder14, -2, 1},
		{Ladder15, 5, 5},
		{Ladder15, 9, 5},
		{Ladder15, 0, 1},
	}

	for _, tt := range tests {
		if got := tt.ladder.Clamp(tt.rank); got != tt.want {
			t.Errorf("%s.Clamp(%d) = %d, want %d", tt.ladder, tt.rank, got, tt.want)
		}
	}
}

func TestLadderMinimumQuota(t *testing.T) {
	got := Ladder14.MinimumQuota()
	want := map[int]int{4: 1, 3: 2, 2: 3}
	if len(got) != len(want) {
		t.Fatalf("Ladder14.MinimumQuota() = %v, want %v", got, want)
	}
	for r, n := range want {
		if got[r] != n {
			t.Fatalf("Ladder14.MinimumQuota()[%d] = %d, want %d", r, got[r], n)
		}
	}

	if got := Ladder15.MinimumQuota(); got[5] != 0 || got[4] != 1 || got[3] != 2 || got[2] != 3 {
		t.Fatalf("Ladder15.MinimumQuota() = %v", got)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCanonicalSkillName(t *testing.T) {
	bank := DefaultSkills()

	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{name: "exact match", input: "Fight", want: "Fight", found: true},
		{name: "case-insensitive match", input: "fIGHT", want: "Fight", found: true},
		{name: "padded match", input: "  Lore ", want: "Lore", found: true},
		{name: "synonym willpower", input: "Willpower", want: "Will", found: true},
		{name: "synonym marksmanship", input: "marksmanship", want: "Shoot", found: true},
		{name: "off-list name", input: "Basket Weaving", found: false},
		{name: "empty name", input: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := CanonicalSkillName(tt.input, bank)
			if found != tt.found {
				t.Fatalf("CanonicalSkillName(%q) found = %v, want %v", tt.input, found, tt.found)
			}
			if got != tt.want {
				t.Fatalf("CanonicalSkillName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
