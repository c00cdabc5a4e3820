package combat

import "errors"

// Kind classifies an Error for callers that only care about the category.
type Kind string

const (
	KindInvalidArgument       Kind = "INVALID_ARGUMENT"
	KindDuplicateRegistration Kind = "DUPLICATE_REGISTRATION"
	KindPreconditionViolated  Kind = "PRECONDITION_VIOLATED"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"

	// Registration errors
	CodeEmptyName     Code = "EMPTY_NAME"
	CodeEmptyTeam     Code = "EMPTY_TEAM"
	CodeDuplicateName Code = "DUPLICATE_NAME"
	CodeArenaStarted  Code = "ARENA_STARTED"

	// Model errors
	CodeInvalidModifier Code = "INVALID_MODIFIER"
	CodeInvalidSkill    Code = "INVALID_SKILL"
	CodeInvalidAction   Code = "INVALID_ACTION"

	// Scheduler errors
	CodeNoParticipants Code = "NO_PARTICIPANTS"
)

// Kind maps a code to its category.
func (c Code) Kind() Kind {
	switch c {
	case CodeDuplicateName:
		return KindDuplicateRegistration
	case CodeNoParticipants, CodeArenaStarted:
		return KindPreconditionViolated
	default:
		return KindInvalidArgument
	}
}

type Error struct {
	Code    Code
	Message string
}

func newError(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Message
}

// Is matches the kind sentinels below, and any *Error with the same code.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case kindSentinel:
		return e.Code.Kind() == Kind(t)
	case *Error:
		return t.Code == e.Code
	}
	return false
}

type kindSentinel Kind

func (k kindSentinel) Error() string { return string(k) }

var (
	ErrInvalidArgument       error = kindSentinel(KindInvalidArgument)
	ErrDuplicateRegistration error = kindSentinel(KindDuplicateRegistration)
	ErrPreconditionViolated  error = kindSentinel(KindPreconditionViolated)
)

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a combat error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}
