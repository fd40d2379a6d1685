package common

import "github.com/cockroachdb/errors"

// ExitErr is the error indicates user needs to exit application.
var ExitErr = exitErr{}

// exitErr internal err type for comparing.
type exitErr struct{}

// Error implements error.
func (e exitErr) Error() string {
	return "exited"
}

// ErrNoMatch is returned when a parse result does not satisfy the --where filter.
var ErrNoMatch = errors.New("parse result does not match filter")
