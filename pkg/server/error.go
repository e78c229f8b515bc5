package server

import (
	"errors"
	"fmt"
)

// Error dibawa dari layer service ke layer rest. code salah satu sentinel di bawah dan dipetakan ke http status,
// orig error asal (boleh nil) ikut di pesan supaya penyebabnya kelihatan di response & log.
type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig == nil {
		return e.msg
	}
	return e.msg + ": " + e.orig.Error()
}

func (e *Error) Unwrap() error {
	return e.orig
}

func (e *Error) Code() error {
	return e.code
}

// Is errors.Is(err, ErrNotFound) juga true kalau code-nya ErrNotFound.
func (e *Error) Is(target error) bool {
	return e.code != nil && target == e.code
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
		code: code,
	}
}

// CodeOf code dari *Error pertama di chain err, ErrInternalServerError kalau gak ada.
func CodeOf(err error) error {
	var serr *Error
	if errors.As(err, &serr) && serr.code != nil {
		return serr.code
	}
	return ErrInternalServerError
}

var (
	ErrInternalServerError = errors.New("internal server error")
	ErrNotFound            = errors.New("requested route or stop not found")
	ErrConflict            = errors.New("resource already exists")
	ErrBadParamInput       = errors.New("invalid request parameter")
)
