// Package testutil provides testing utilities for chored.
//
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for simulating collaborator failures in tests.
var (
	// ErrMockGitFailed simulates a failing git command.
	ErrMockGitFailed = errors.New("git command failed")

	// ErrMockGHFailed simulates a failing gh command.
	ErrMockGHFailed = errors.New("gh command failed")

	// ErrMockNetwork simulates a network error.
	ErrMockNetwork = errors.New("network error")

	// ErrMockCommand simulates a failing external command.
	ErrMockCommand = errors.New("command failed")
)
