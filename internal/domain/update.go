package domain

import (
	"fmt"

	chorederrors "github.com/chored-dev/chored/internal/errors"
)

// UpdateMode selects what the self-update loop does with drift.
type UpdateMode string

// Update modes.
const (
	UpdateModeNoop   UpdateMode = "noop"
	UpdateModeCommit UpdateMode = "commit"
	UpdateModePR     UpdateMode = "pr"
)

// ParseUpdateMode parses a user-supplied mode.
func ParseUpdateMode(s string) (UpdateMode, error) {
	m := UpdateMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q (want noop, commit or pr)", chorederrors.ErrInvalidMode, s)
	}
	return m, nil
}

// Valid reports whether m is a known mode.
func (m UpdateMode) Valid() bool {
	switch m {
	case UpdateModeNoop, UpdateModeCommit, UpdateModePR:
		return true
	}
	return false
}

// Outcome is the result of a successful self-update run.
type Outcome string

// Self-update outcomes.
const (
	OutcomeNoop       Outcome = "noop"
	OutcomeSuppressed Outcome = "suppressed"
	OutcomeCommitted  Outcome = "committed"
	OutcomePROpened   Outcome = "pr-opened"
)
