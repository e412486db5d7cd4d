// Package errs is the error taxonomy shared by every domain package.
// Each error carries a Kind (mapped to a transport status) and a stable Code.
package errs

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindForbidden
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	}
	return "unknown"
}

type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches on Kind, and on Code when the target carries one, so
// errors.Is(err, errs.ErrNotFound) holds for every not-found sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

// Kind-only sentinels for errors.Is checks.
var (
	ErrNotFound  = &Error{Kind: KindNotFound, Message: "not found"}
	ErrForbidden = &Error{Kind: KindForbidden, Message: "forbidden"}
	ErrConflict  = &Error{Kind: KindConflict, Message: "conflict"}
)

func Validation(code, msg string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: msg}
}
func NotFound(code, msg string) *Error  { return &Error{Kind: KindNotFound, Code: code, Message: msg} }
func Forbidden(code, msg string) *Error { return &Error{Kind: KindForbidden, Code: code, Message: msg} }
func Conflict(code, msg string) *Error  { return &Error{Kind: KindConflict, Code: code, Message: msg} }
