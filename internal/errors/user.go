package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// Order matters: the first entry matching via errors.Is wins, so the
// self-update stage errors come before the collaborator errors they wrap.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Self-update stages
	// ===================
	{
		err: ErrPreconditionFailed,
		info: ErrorInfo{
			Message: "Self-update refused to start: the working tree has uncommitted changes.",
			Action:  "Commit or stash local changes, then rerun the self-update.",
		},
	},
	{
		err: ErrSelfUpdateLocked,
		info: ErrorInfo{
			Message: "Another self-update is already running in this repository.",
			Action:  "Wait for it to finish before starting a new one.",
		},
	},
	{
		err: ErrUpdateFailed,
		info: ErrorInfo{
			Message: "Self-update failed while regenerating project files.",
			Action:  "Run 'chored run render' locally to reproduce the failure.",
		},
	},
	{
		err: ErrCheckoutFailed,
		info: ErrorInfo{
			Message: "Self-update could not check out the update branch.",
			Action:  "Check that the base branch exists locally and the update branch is not checked out in another worktree.",
		},
	},
	{
		err: ErrCommitFailed,
		info: ErrorInfo{
			Message: "Self-update could not commit the regenerated files.",
			Action:  "Check git user.name/user.email and repository permissions.",
		},
	},
	{
		err: ErrPushFailed,
		info: ErrorInfo{
			Message: "Self-update could not push the update branch.",
			Action:  "Verify the remote is reachable and the token has write access.",
		},
	},
	{
		err: ErrPRFailed,
		info: ErrorInfo{
			Message: "Self-update could not open or update the pull request.",
			Action:  "Verify GH_TOKEN (or githubToken) has pull request permissions.",
		},
	},

	// ===================
	// Resolution
	// ===================
	{
		err: ErrModuleNotFound,
		info: ErrorInfo{
			Message: "Unknown task module.",
			Action:  "Run 'chored tasks' to list available tasks.",
		},
	},
	{
		err: ErrTaskNotFound,
		info: ErrorInfo{
			Message: "Unknown task.",
			Action:  "Run 'chored tasks' to list available tasks.",
		},
	},
	{
		err: ErrInvalidTaskOption,
		info: ErrorInfo{
			Message: "A task option was not recognized or had the wrong type.",
			Action:  "Options are passed as key=value; run 'chored tasks' for task names.",
		},
	},

	// ===================
	// Configuration
	// ===================
	{
		err: ErrUnresolvedVersion,
		info: ErrorInfo{
			Message: "A requested Scala major version has no known version.",
			Action:  "Pin it under project.scala.versions in .chored.yaml.",
		},
	},
	{
		err: ErrConfigInvalid,
		info: ErrorInfo{
			Message: "The project configuration is invalid.",
			Action:  "Check .chored.yaml and CHORED_* environment variables.",
		},
	},

	// ===================
	// Collaborators
	// ===================
	{
		err: ErrWorktreeDirty,
		info: ErrorInfo{
			Message: "The working tree has uncommitted changes.",
			Action:  "Commit the changes (generated files included) and retry.",
		},
	},
	{
		err: ErrGHAuthFailed,
		info: ErrorInfo{
			Message: "GitHub authentication failed.",
			Action:  "Run 'gh auth login' or set GH_TOKEN.",
		},
	},
	{
		err: ErrGitHubOperation,
		info: ErrorInfo{
			Message: "A GitHub operation failed.",
			Action:  "Check the gh CLI output above.",
		},
	},
	{
		err: ErrGitOperation,
		info: ErrorInfo{
			Message: "A git operation failed.",
			Action:  "Check the git output above.",
		},
	},
	{
		err: ErrContainerOperation,
		info: ErrorInfo{
			Message: "The container runtime reported a failure.",
			Action:  "Make sure docker is installed and the daemon is running.",
		},
	},
	{
		err: ErrRenderFailed,
		info: ErrorInfo{
			Message: "Generated files could not be written.",
			Action:  "Check file permissions in the project directory.",
		},
	},
	{
		err: ErrCommandFailed,
		info: ErrorInfo{
			Message: "An external command failed.",
			Action:  "",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// It first tries a direct map lookup for unwrapped sentinel errors,
// then falls back to errors.Is() traversal for wrapped errors.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
//
// For errors that have no clear action, the action string will be empty.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
