package service

import (
	"errors"
	"fmt"
)

// Таксономия ошибок сервисного слоя. HTTP-уровень сопоставляет их со
// статусами через errors.Is: InvalidInput -> 400, Conflict -> 409,
// NotFound -> 404, все остальное -> 500.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
)

// Error несет человекочитаемое сообщение для тела ответа и через
// Unwrap относит себя к одному из сентинелов таксономии.
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }
func (e *Error) Unwrap() error { return e.kind }

func invalidInput(format string, args ...interface{}) error {
	return &Error{kind: ErrInvalidInput, message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...interface{}) error {
	return &Error{kind: ErrConflict, message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...interface{}) error {
	return &Error{kind: ErrNotFound, message: fmt.Sprintf(format, args...)}
}
