package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chorederrors "github.com/chored-dev/chored/internal/errors"
)

type plainError struct {
	msg string
}

func (e plainError) Error() string {
	return e.msg
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	all := []error{
		chorederrors.ErrConfigInvalid,
		chorederrors.ErrUnresolvedVersion,
		chorederrors.ErrEmptyValue,
		chorederrors.ErrTaskNotFound,
		chorederrors.ErrModuleNotFound,
		chorederrors.ErrTaskFailed,
		chorederrors.ErrCommandFailed,
		chorederrors.ErrGitOperation,
		chorederrors.ErrGitHubOperation,
		chorederrors.ErrContainerOperation,
		chorederrors.ErrRenderFailed,
		chorederrors.ErrWorktreeDirty,
		chorederrors.ErrPreconditionFailed,
		chorederrors.ErrUpdateFailed,
		chorederrors.ErrCheckoutFailed,
		chorederrors.ErrCommitFailed,
		chorederrors.ErrPushFailed,
		chorederrors.ErrPRFailed,
	}

	for i, a := range all {
		require.Error(t, a)
		assert.NotEmpty(t, a.Error())
		for j, b := range all {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, a, b, "%v should not match %v", a, b)
		}
	}
}

func TestWrap(t *testing.T) {
	t.Run("preserves chain through several levels", func(t *testing.T) {
		err := chorederrors.Wrap(chorederrors.ErrGitOperation, "first")
		err = chorederrors.Wrap(err, "second")

		require.ErrorIs(t, err, chorederrors.ErrGitOperation)
		assert.Equal(t, "second: first: git operation failed", err.Error())
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, chorederrors.Wrap(nil, "ignored"))
		assert.NoError(t, chorederrors.Wrapf(nil, "ignored %d", 1))
	})

	t.Run("formatted message", func(t *testing.T) {
		err := chorederrors.Wrapf(chorederrors.ErrTaskFailed, "task %s attempt %d", "ci", 1)

		require.ErrorIs(t, err, chorederrors.ErrTaskFailed)
		assert.Equal(t, "task ci attempt 1: task failed", err.Error())
	})
}

func TestActionable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		contains  string
		hasAction bool
	}{
		{"precondition", chorederrors.ErrPreconditionFailed, "uncommitted", true},
		{"update", chorederrors.ErrUpdateFailed, "regenerating", true},
		{"checkout", chorederrors.ErrCheckoutFailed, "check out", true},
		{"commit", chorederrors.ErrCommitFailed, "commit", true},
		{"push", chorederrors.ErrPushFailed, "push", true},
		{"pr", chorederrors.ErrPRFailed, "pull request", true},
		{"task not found", chorederrors.ErrTaskNotFound, "Unknown task", true},
		{"module not found", chorederrors.ErrModuleNotFound, "module", true},
		{"unresolved version", chorederrors.ErrUnresolvedVersion, "Scala", true},
		{"container", chorederrors.ErrContainerOperation, "container", true},
		{"command", chorederrors.ErrCommandFailed, "external command", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg, action := chorederrors.Actionable(fmt.Errorf("context: %w", tc.err))

			assert.Contains(t, msg, tc.contains)
			if tc.hasAction {
				assert.NotEmpty(t, action)
			} else {
				assert.Empty(t, action)
			}
		})
	}
}

func TestActionable_StageWinsOverCause(t *testing.T) {
	// A push failure wraps the git error; the stage message is what users see.
	err := fmt.Errorf("%w: %w", chorederrors.ErrPushFailed, chorederrors.ErrGitOperation)

	assert.Equal(t, chorederrors.UserMessage(chorederrors.ErrPushFailed), chorederrors.UserMessage(err))
}

func TestUserMessage_Unknown(t *testing.T) {
	assert.Empty(t, chorederrors.UserMessage(nil))
	assert.Equal(t, "boom", chorederrors.UserMessage(plainError{msg: "boom"}))

	msg, action := chorederrors.Actionable(nil)
	assert.Empty(t, msg)
	assert.Empty(t, action)
}

func TestExitCode2Error(t *testing.T) {
	exitErr := chorederrors.NewExitCode2Error(chorederrors.ErrInvalidArgument)

	assert.Equal(t, chorederrors.ErrInvalidArgument.Error(), exitErr.Error())
	require.ErrorIs(t, exitErr, chorederrors.ErrInvalidArgument)
	assert.True(t, chorederrors.IsExitCode2Error(chorederrors.Wrap(exitErr, "outer")))
	assert.False(t, chorederrors.IsExitCode2Error(chorederrors.ErrInvalidArgument))
	assert.False(t, chorederrors.IsExitCode2Error(nil))
}
