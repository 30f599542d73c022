package fatecore

import "strings"

// DefaultSkills returns the standard Fate Core skill list.
func DefaultSkills() []string {
	return []string{
		"Athletics",
		"Burglary",
		"Contacts",
		"Crafts",
		"Deceive",
		"Drive",
		"Empathy",
		"Fight",
		"Investigate",
		"Lore",
		"Notice",
		"Physique",
		"Provoke",
		"Rapport",
		"Resources",
		"Shoot",
		"Stealth",
		"Will",
	}
}

// skillSynonyms maps common off-list skill names to their Fate Core
// equivalents.
var skillSynonyms = map[string]string{
	"willpower":    "Will",
	"cunning":      "Deceive",
	"knowledge":    "Lore",
	"awareness":    "Notice",
	"charisma":     "Rapport",
	"strength":     "Physique",
	"agility":      "Athletics",
	"marksmanship": "Shoot",
}

// CanonicalSkillName resolves a free-form skill name against the bank,
// matching case-insensitively and folding known synonyms onto bank
// entries. It returns the bank's spelling and whether a match was found.
func CanonicalSkillName(name string, bank []string) (string, bool) {
	bankByKey := make(map[string]string, len(bank))
	for _, entry := range bank {
		bankByKey[strings.ToLower(strings.TrimSpace(entry))] = entry
	}

	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := bankByKey[key]; ok {
		return canonical, true
	}
	if synonym, ok := skillSynonyms[key]; ok {
		if canonical, ok := bankByKey[strings.ToLower(synonym)]; ok {
			return canonical, true
		}
	}
	return "", false
}
