package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/chored-dev/chored/internal/process"
)

// RecordingRunner is a process.Runner that records every command and
// returns canned errors keyed by the joined command line.
type RecordingRunner struct {
	mu       sync.Mutex
	commands []process.Command
	// Fail maps "prog arg1 arg2" to the error returned for that command.
	Fail map[string]error
	// Hook, when set, runs before the command is recorded as finished.
	Hook func(ctx context.Context, cmd process.Command) error
}

// Run records cmd and returns its configured error, if any.
func (r *RecordingRunner) Run(ctx context.Context, cmd process.Command) error {
	if r.Hook != nil {
		if err := r.Hook(ctx, cmd); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, cmd)
	if err, ok := r.Fail[strings.Join(cmd.Args, " ")]; ok {
		return err
	}
	return nil
}

// Commands returns a copy of the recorded commands in call order.
func (r *RecordingRunner) Commands() []process.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]process.Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Lines returns the recorded commands as space-joined strings.
func (r *RecordingRunner) Lines() []string {
	cmds := r.Commands()
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = strings.Join(c.Args, " ")
	}
	return out
}

// Compile-time interface check.
var _ process.Runner = (*RecordingRunner)(nil)
