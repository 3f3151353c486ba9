package httperr

import "errors"

// ===============================
// Erros de domínio
// ===============================

// Kind classifica o erro de negócio; é ele quem decide o status HTTP.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindNotAuthorized Kind = "not_authorized"
	KindStateConflict Kind = "state_conflict"
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrValidation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func ErrNotAuthorized(code string) error {
	return BusinessError{Kind: KindNotAuthorized, Code: code}
}

func ErrStateConflict(code string) error {
	return BusinessError{Kind: KindStateConflict, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return "", false
}
