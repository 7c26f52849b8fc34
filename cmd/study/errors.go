package main

import (
	"errors"

	"study/internal/api"
)

// userError is printed verbatim, so it may start with a capital letter.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }

func (e *userError) Unwrap() error { return e.err }

var errDeleteNotConfirmed = &userError{msg: "Type " + deleteConfirmation + " to confirm"}

func loginFailed(err error) error {
	msg := err.Error()
	if errors.Is(err, api.ErrTokenMissing) {
		msg = "Token missing"
	}
	return &userError{msg: "Login failed: " + msg, err: err}
}
