package service

import (
	"errors"
	"fmt"
)

// Виды ошибок ядра диспетчеризации; проверяются через errors.Is
var (
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrNotFound           = errors.New("not found")
	ErrNoOfficerAvailable = errors.New("no officer available")
)

// Error - ошибка ядра с видом и пояснением
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func validationError(format string, args ...any) error {
	return newError(ErrValidation, format, args...)
}

func conflictError(format string, args ...any) error {
	return newError(ErrConflict, format, args...)
}

func notFoundError(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}
