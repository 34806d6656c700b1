// Package errors provides centralized error handling for chored.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalid indicates malformed or incomplete project options.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrUnresolvedVersion indicates a requested major version has neither an
	// explicit pin nor a built-in default.
	ErrUnresolvedVersion = errors.New("no version for requested major")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidArgument indicates that an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTaskNotFound indicates the requested task does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrModuleNotFound indicates the module part of a qualified task name does not exist.
	ErrModuleNotFound = errors.New("module not found")

	// ErrTaskDuplicate indicates two entries were registered under the same name.
	ErrTaskDuplicate = errors.New("task already registered")

	// ErrInvalidTaskOption indicates a task option could not be applied to the task.
	ErrInvalidTaskOption = errors.New("invalid task option")

	// ErrTaskFailed indicates that a resolved task returned an error while running.
	ErrTaskFailed = errors.New("task failed")

	// ErrCommandNotConfigured indicates that a mock command was not configured in tests.
	ErrCommandNotConfigured = errors.New("command not configured")

	// ErrCommandFailed indicates that an external command exited non-zero or could not start.
	ErrCommandFailed = errors.New("command failed")

	// ErrRenderFailed indicates generated files could not be serialized or written.
	ErrRenderFailed = errors.New("render failed")

	// ErrPathTraversal indicates a generated path escapes the project root.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrGitOperation indicates that a git command failed during execution.
	ErrGitOperation = errors.New("git operation failed")

	// ErrGitHubOperation indicates that a GitHub operation (PR lookup, creation, edit) failed.
	ErrGitHubOperation = errors.New("github operation failed")

	// ErrContainerOperation indicates that the container runtime reported a failure.
	ErrContainerOperation = errors.New("container operation failed")

	// ErrStageNotFound indicates a build spec has no stage with the requested name.
	ErrStageNotFound = errors.New("stage not found")

	// ErrDuplicateStage indicates a build spec defines two stages with the same name.
	ErrDuplicateStage = errors.New("duplicate stage name")

	// ErrNotGitRepo indicates the path is not a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrWorktreeDirty indicates the working tree has uncommitted changes.
	ErrWorktreeDirty = errors.New("working tree has uncommitted changes")

	// ErrPreconditionFailed indicates the self-update precondition (clean tree) was violated.
	ErrPreconditionFailed = errors.New("self-update precondition failed")

	// ErrSelfUpdateLocked indicates another self-update holds the repository lock.
	ErrSelfUpdateLocked = errors.New("self-update already running")

	// ErrInvalidMode indicates an unknown self-update mode.
	ErrInvalidMode = errors.New("invalid self-update mode")

	// ErrUpdateFailed indicates the update procedure of a self-update failed.
	ErrUpdateFailed = errors.New("update failed")

	// ErrCheckoutFailed indicates the self-update branch could not be checked out.
	ErrCheckoutFailed = errors.New("checkout failed")

	// ErrCommitFailed indicates the self-update commit stage failed.
	ErrCommitFailed = errors.New("commit failed")

	// ErrPushFailed indicates the self-update push stage failed.
	ErrPushFailed = errors.New("push failed")

	// ErrPRFailed indicates the self-update pull request stage failed.
	ErrPRFailed = errors.New("pull request failed")

	// ErrGHAuthFailed indicates that GitHub authentication failed.
	ErrGHAuthFailed = errors.New("GitHub authentication failed")

	// ErrLockTimeout indicates a file lock could not be acquired.
	ErrLockTimeout = errors.New("lock acquisition failed")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
