package services

import "errors"

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindConflict
	KindDependency
)

// ServiceError carries a stable, displayable message plus a kind the HTTP
// layer maps to a status code. Details are only shown outside production.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Details string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func Validation(msg string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Message: msg}
}

func NotFound(msg string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: msg}
}

func Dependency(msg string, cause error) *ServiceError {
	e := &ServiceError{Kind: KindDependency, Message: msg}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// KindOf classifies any error; unknown errors count as dependency failures.
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindDependency
}
