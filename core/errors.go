package core

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError reports malformed input. Transport maps it to a 400.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err *ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// NotFoundError reports a referenced id that does not resolve.
// Transport maps it to a 404.
type NotFoundError struct {
	msg string
}

func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{msg: msg}
}

func (err *NotFoundError) Error() string {
	return err.msg
}

// ConflictError reports a uniqueness or assignment violation, naming the
// offending field. Transport maps it to a 409.
type ConflictError struct {
	Field string
	msg   string
}

func NewConflictError(field, msg string) *ConflictError {
	return &ConflictError{Field: field, msg: msg}
}

func (err *ConflictError) Error() string {
	return err.msg
}

// AuthorizationError reports a caller whose graph membership does not
// permit the action. The resources exist; the caller may not act on them
// together. Transport maps it to a 403, never a 404.
type AuthorizationError struct {
	msg string
}

func NewAuthorizationError(msg string) *AuthorizationError {
	return &AuthorizationError{msg: msg}
}

func (err *AuthorizationError) Error() string {
	return err.msg
}
