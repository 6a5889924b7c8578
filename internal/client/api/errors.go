package api

import (
	"errors"
	"fmt"

	"github.com/iudanet/zennotes/pkg/api"
)

var (
	// ErrNotFound - сервер вернул 404
	ErrNotFound = errors.New("note not found on server")

	// ErrBadRequest - сервер отклонил запрос (4xx кроме 404 и 409)
	ErrBadRequest = errors.New("bad request")

	// ErrServer - 5xx, сетевая ошибка или некорректный ответ сервера
	ErrServer = errors.New("server error")
)

// ConflictError is returned on HTTP 409 and carries the current server record
type ConflictError struct {
	Current *api.Note
}

func (e *ConflictError) Error() string {
	if e.Current == nil {
		return "version conflict"
	}
	return fmt.Sprintf("version conflict: server has version %d", e.Current.Version)
}

// AsConflict extracts the conflict payload from err
func AsConflict(err error) (*ConflictError, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}

// IsConflict reports whether err is a version conflict
func IsConflict(err error) bool {
	_, ok := AsConflict(err)
	return ok
}

// IsNotFound reports whether err is a not-found response
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// statusError описывает неуспешный ответ сервера
type statusError struct {
	kind    error
	message string
	status  int
}

func (e *statusError) Error() string {
	if e.message == "" {
		return fmt.Sprintf("%s (status %d)", e.kind, e.status)
	}
	return fmt.Sprintf("%s (status %d): %s", e.kind, e.status, e.message)
}

func (e *statusError) Unwrap() error {
	return e.kind
}
