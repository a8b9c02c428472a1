package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Kind int

const (
	KindBadRequest Kind = iota
	KindNotFound
	KindConflict
	KindForbidden
	KindValidation
)

// BusinessError is an expected failure that maps onto a fixed HTTP status.
type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func ErrBadRequest(code, message string) error {
	return BusinessError{Kind: KindBadRequest, Code: code, Message: message}
}

func ErrNotFound(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

// ErrConflict is reported as 400, same as any other bad request.
func ErrConflict(code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func ErrForbidden(code, message string) error {
	return BusinessError{Kind: KindForbidden, Code: code, Message: message}
}

func ErrValidation(code, message string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: message}
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
	return 0, false
}

// IsUniqueViolation reports whether err came from a unique index rejecting
// an insert or update.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
