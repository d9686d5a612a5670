package service

import (
	"errors"
	"strings"

	"Catalog/internal/repo"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")

	ErrInvalidCredentials error = &kindError{msg: "invalid username or password", kind: ErrUnauthenticated}
	ErrUsernameTaken      error = &kindError{msg: "username already exists", kind: ErrConflict}
	ErrEmailTaken         error = &kindError{msg: "email already exists", kind: ErrConflict}

	// ErrCannotDeleteSelf - администратор пытается удалить собственную учётку.
	ErrCannotDeleteSelf = errors.New("cannot delete yourself")
	// ErrEmptyPatch - в запросе на обновление нет ни одного поля.
	ErrEmptyPatch = errors.New("no data provided")
)

// kindError - ошибка с человекочитаемым текстом, относящаяся к одной из базовых категорий.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// ValidationError содержит все найденные ошибки входных данных.
type ValidationError struct {
	Messages []string
}

func NewValidationError(msgs ...string) *ValidationError {
	return &ValidationError{Messages: msgs}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// notFound переводит промах репозитория в ErrNotFound с указанием сущности.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return wrapNotFound(what)
	}
	return err
}

func wrapNotFound(what string) error {
	return &kindError{msg: what + " not found", kind: ErrNotFound}
}

func wrapConflict(what string) error {
	return &kindError{msg: what + " already exists", kind: ErrConflict}
}

// conflict переводит нарушение уникальности в ErrConflict.
func conflict(err error, what string) error {
	if errors.Is(err, repo.ErrDuplicate) {
		return wrapConflict(what)
	}
	return err
}

// missing сообщает, что поиск ничего не нашёл (nil без ошибки тоже считается промахом).
func missing[T any](v *T, err error) (bool, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return v == nil, nil
}
