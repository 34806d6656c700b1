// Package process runs external commands (sbt, docker, twine, ...) as opaque
// steps that either succeed or fail.
//
// Output is streamed to the configured writers while the tail of stderr is
// kept for the error message. A non-zero exit is reported as a *CommandError
// that matches errors.ErrCommandFailed.
package process

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chored-dev/chored/internal/ctxutil"
	"github.com/chored-dev/chored/internal/errors"
)

// maxStderrTail bounds how much stderr is kept for error messages.
const maxStderrTail = 4096

// Command describes one external process.
type Command struct {
	// Args is the program followed by its arguments. Required.
	Args []string
	// Env entries (KEY=VALUE) are appended to the current environment.
	Env []string
	// Stdin, when non-empty, is written to the process's standard input.
	Stdin string
	// Dir is the working directory; empty means the current directory.
	Dir string
}

// String renders the command for logs.
func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// Runner executes commands.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// CommandError reports a command that could not start or exited non-zero.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: exit code %d", strings.Join(e.Args, " "), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg + ": " + errors.ErrCommandFailed.Error()
}

// Unwrap exposes both the sentinel and the underlying exec error.
func (e *CommandError) Unwrap() []error {
	if e.Err == nil {
		return []error{errors.ErrCommandFailed}
	}
	return []error{errors.ErrCommandFailed, e.Err}
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// ExecOption configures an ExecRunner.
type ExecOption func(*ExecRunner)

// WithOutput sets where the child's stdout and stderr are streamed.
func WithOutput(stdout, stderr io.Writer) ExecOption {
	return func(r *ExecRunner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// NewExecRunner returns a runner streaming to os.Stdout / os.Stderr unless
// overridden.
func NewExecRunner(opts ...ExecOption) *ExecRunner {
	r := &ExecRunner{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes cmd and waits for it to exit.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	if len(cmd.Args) == 0 {
		return fmt.Errorf("%w: empty command", errors.ErrCommandFailed)
	}

	log := zerolog.Ctx(ctx)
	log.Debug().Str("cmd", cmd.String()).Str("dir", cmd.Dir).Msg("running command")

	c := exec.CommandContext(ctx, cmd.Args[0], cmd.Args[1:]...) //#nosec G204 -- commands are built by chored tasks
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	if cmd.Stdin != "" {
		c.Stdin = strings.NewReader(cmd.Stdin)
	}

	var errBuf bytes.Buffer
	c.Stdout = writerOrDiscard(r.stdout)
	c.Stderr = io.MultiWriter(writerOrDiscard(r.stderr), &errBuf)

	err := c.Run()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	cmdErr := &CommandError{
		Args:     append([]string(nil), cmd.Args...),
		ExitCode: exitCode,
		Stderr:   tail(strings.TrimSpace(errBuf.String()), maxStderrTail),
		Err:      err,
	}
	log.Debug().Err(cmdErr).Msg("command failed")
	return cmdErr
}

// ExitCode extracts the exit code from an error returned by Run, or -1.
func ExitCode(err error) int {
	var cmdErr *CommandError
	if stderrors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return -1
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// Compile-time interface check.
var _ Runner = (*ExecRunner)(nil)
