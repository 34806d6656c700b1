package git

import (
	"errors"
	"fmt"
	"strings"

	chorederrors "github.com/chored-dev/chored/internal/errors"
)

// ErrorType represents the classification of a git/gh error message.
type ErrorType int

const (
	// ErrorTypeUnknown indicates the error could not be classified.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeAuth indicates an authentication error.
	ErrorTypeAuth
	// ErrorTypeNetwork indicates a network connectivity error.
	ErrorTypeNetwork
	// ErrorTypeNotFound indicates a resource not found error.
	ErrorTypeNotFound
)

// String returns a human-readable name for the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeUnknown:
		return "unknown"
	case ErrorTypeAuth:
		return "authentication"
	case ErrorTypeNetwork:
		return "network"
	case ErrorTypeNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// PatternMatcher checks if a string contains any of a list of lowercase patterns.
type PatternMatcher struct {
	patterns []string
}

// NewPatternMatcher creates a new PatternMatcher with the given patterns.
func NewPatternMatcher(patterns ...string) *PatternMatcher {
	return &PatternMatcher{patterns: patterns}
}

// MatchesLower checks if an already-lowercased string matches any pattern.
func (m *PatternMatcher) MatchesLower(lower string) bool {
	for _, pattern := range m.patterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

//nolint:gochecknoglobals // Package-level immutable pattern matchers
var (
	authPatterns = NewPatternMatcher(
		"authentication failed",
		"could not read username",
		"permission denied",
		"invalid username or password",
		"authentication required",
		"bad credentials",
		"not logged into",
		"must be authenticated",
		"gh auth login",
		"invalid token",
		"http 401",
		"http 403",
	)

	networkPatterns = NewPatternMatcher(
		"could not resolve host",
		"connection refused",
		"network is unreachable",
		"connection timed out",
		"unable to access",
		"no route to host",
	)

	notFoundPatterns = NewPatternMatcher(
		"not found",
		"no such",
		"does not exist",
	)
)

// ClassifyError determines the error type from an error string.
// Authentication wins over network, which wins over not-found.
func ClassifyError(errStr string) ErrorType {
	lower := strings.ToLower(errStr)
	switch {
	case authPatterns.MatchesLower(lower):
		return ErrorTypeAuth
	case networkPatterns.MatchesLower(lower):
		return ErrorTypeNetwork
	case notFoundPatterns.MatchesLower(lower):
		return ErrorTypeNotFound
	default:
		return ErrorTypeUnknown
	}
}

// withErrorClass annotates a failed git or gh command with its error class.
// Authentication failures are marked with ErrGHAuthFailed; network and
// not-found failures name their class in the message.
func withErrorClass(err error) error {
	switch class := ClassifyError(err.Error()); class {
	case ErrorTypeAuth:
		if errors.Is(err, chorederrors.ErrGHAuthFailed) {
			return err
		}
		return fmt.Errorf("%w: %w", chorederrors.ErrGHAuthFailed, err)
	case ErrorTypeNetwork, ErrorTypeNotFound:
		return fmt.Errorf("%s error: %w", class, err)
	default:
		return err
	}
}
