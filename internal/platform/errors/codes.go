package errors

// Code is a machine-readable error code stable across releases.
type Code string

// Error codes for the Fateforge platform.
const (
	// CodeUnknown is the fallback for unclassified errors.
	CodeUnknown Code = "UNKNOWN"

	// CodeValidationFailed covers candidate payloads rejected by a gate
	// after all generation attempts were spent.
	CodeValidationFailed Code = "VALIDATION_FAILED"

	// CodeForgeUnsupportedMode covers generation requests naming a mode
	// outside the supported set.
	CodeForgeUnsupportedMode Code = "FORGE_UNSUPPORTED_MODE"

	// CodeForgeInvalidTarget covers hint requests for targets that are
	// neither aspects nor stunts.
	CodeForgeInvalidTarget Code = "FORGE_INVALID_TARGET"

	// CodeForgeEmptyIdea covers generation requests without a character idea.
	CodeForgeEmptyIdea Code = "FORGE_EMPTY_IDEA"

	// CodeForgeCollaboratorFailed covers upstream model calls that errored
	// or returned an unusable payload.
	CodeForgeCollaboratorFailed Code = "FORGE_COLLABORATOR_FAILED"

	// CodeFatecoreInvalidLadder covers unrecognized ladder identifiers.
	CodeFatecoreInvalidLadder Code = "FATECORE_INVALID_LADDER"

	// CodeNotFound covers storage lookups for missing records.
	CodeNotFound Code = "NOT_FOUND"
)
