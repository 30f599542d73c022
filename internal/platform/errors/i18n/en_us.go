package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown                 = "UNKNOWN"
	CodeValidationFailed        = "VALIDATION_FAILED"
	CodeForgeUnsupportedMode    = "FORGE_UNSUPPORTED_MODE"
	CodeForgeInvalidTarget      = "FORGE_INVALID_TARGET"
	CodeForgeEmptyIdea          = "FORGE_EMPTY_IDEA"
	CodeForgeCollaboratorFailed = "FORGE_COLLABORATOR_FAILED"
	CodeFatecoreInvalidLadder   = "FATECORE_INVALID_LADDER"
	CodeNotFound                = "NOT_FOUND"
)

var enUSMessages = map[Code]string{
	CodeUnknown:                 "An unexpected error occurred",
	CodeValidationFailed:        "Validation failed after {{.Attempts}} attempts",
	CodeForgeUnsupportedMode:    "Unsupported generation mode: {{.Mode}}",
	CodeForgeInvalidTarget:      "Hint target must be an aspect or a stunt",
	CodeForgeEmptyIdea:          "Character idea cannot be empty",
	CodeForgeCollaboratorFailed: "The generation backend did not return a usable result",
	CodeFatecoreInvalidLadder:   "Unknown skill ladder: {{.Ladder}}",
	CodeNotFound:                "The requested record was not found",
}
