package errors

import "strings"

// Kind groups errors into the buckets the UI layer reacts to differently.
type Kind string

const (
	KindUnavailable   Kind = "unavailable"
	KindAuthorization Kind = "authorization"
	KindValidation    Kind = "validation"
	KindGeneric       Kind = "generic"
)

// Substrings recognised in errors coming from transports that cannot attach
// a structured code. Structured codes always win; these are a fallback.
var (
	unavailableHints = []string{
		"is stopped",
		"service temporarily unavailable",
		"connection refused",
		"connection reset",
		"no such host",
		"i/o timeout",
	}
	authorizationHints = []string{
		"unauthorized",
		"access denied",
		"permission",
	}
)

// KindOf classifies an error. A typed *Error is classified by its code; any
// other error falls back to message substring matching.
func KindOf(err error) Kind {
	if err == nil {
		return KindGeneric
	}

	if e := FromError(err); e != nil && e.Code != ErrInternal.Code {
		switch e.Code {
		case ErrUnavailable.Code:
			return KindUnavailable
		case ErrUnauthorized.Code, ErrForbidden.Code, ErrInvalidCredentials.Code:
			return KindAuthorization
		case ErrValidation.Code:
			return KindValidation
		}
	}

	message := strings.ToLower(err.Error())
	for _, hint := range unavailableHints {
		if strings.Contains(message, hint) {
			return KindUnavailable
		}
	}
	for _, hint := range authorizationHints {
		if strings.Contains(message, hint) {
			return KindAuthorization
		}
	}
	return KindGeneric
}

// UserMessage maps an error to a sanitized message safe to surface to users.
func UserMessage(err error) string {
	switch KindOf(err) {
	case KindUnavailable:
		return "The service is temporarily unavailable. Please try again in a few moments."
	case KindAuthorization:
		return "Could not load data. Please log in again and retry."
	case KindValidation:
		return "Some fields are missing or invalid. Please review and retry."
	default:
		return "Could not load data. Please try again."
	}
}
