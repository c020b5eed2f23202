package server

import (
	"errors"
	"fmt"
)

// Error carries a sentinel code that the rest layer maps to an http status, plus the
// message shown to the client. the original error stays reachable through Unwrap.
type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func (e *Error) Code() error {
	return e.code
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

// CodeOf sentinel code of err, ErrInternalServerError when err was not wrapped with WrapErrorf.
func CodeOf(err error) error {
	var ierr *Error
	if errors.As(err, &ierr) && ierr.code != nil {
		return ierr.code
	}
	return ErrInternalServerError
}

var (
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound floor or building the caller asked about does not exist
	ErrNotFound = errors.New("requested item not found")
	// ErrBadParamInput malformed routing request, rejected before any graph work
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrUnavailable backing data not loaded yet
	ErrUnavailable = errors.New("service unavailable")
)
