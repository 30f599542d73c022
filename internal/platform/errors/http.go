package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/louisbranch/fateforge/internal/platform/errors/i18n"
)

// DefaultLocale is the default locale for error messages.
const DefaultLocale = "en-US"

// UserMessage formats the user-facing message for an error.
// It uses the i18n catalog for the given locale, defaulting to en-US
// when the locale is empty or unknown.
func UserMessage(err error, locale string) string {
	if err == nil {
		return ""
	}

	if locale == "" {
		locale = DefaultLocale
	}

	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		catalog := i18n.GetCatalog(locale)
		return catalog.Format(string(domainErr.Code), domainErr.Metadata)
	}

	return "an unexpected error occurred"
}

// HTTPStatus maps an error code to the status the HTTP API responds with.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidationFailed:
		return http.StatusUnprocessableEntity
	case CodeForgeUnsupportedMode, CodeForgeInvalidTarget, CodeForgeEmptyIdea, CodeFatecoreInvalidLadder:
		return http.StatusBadRequest
	case CodeForgeCollaboratorFailed:
		return http.StatusBadGateway
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GetCode extracts the error code from an error chain, returning
// CodeUnknown when no domain error is present.
func GetCode(err error) Code {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeUnknown
}

// GetMetadata extracts the metadata map from an error chain, returning
// nil when no domain error is present.
func GetMetadata(err error) map[string]string {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr.Metadata
	}
	return nil
}

// IsCode reports whether the error chain contains a domain error with
// the given code.
func IsCode(err error, code Code) bool {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
