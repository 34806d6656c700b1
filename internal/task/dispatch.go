package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chored-dev/chored/internal/ctxutil"
	"github.com/chored-dev/chored/internal/errors"
	"github.com/chored-dev/chored/internal/logging"
)

// Dispatcher resolves and runs tasks from a Registry.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher returns a dispatcher over r.
func NewDispatcher(r *Registry) *Dispatcher {
	return &Dispatcher{registry: r}
}

// Dispatch resolves path, applies raw options and runs the task.
//
// Resolution and option errors are returned as-is (ErrTaskNotFound,
// ErrModuleNotFound, ErrInvalidTaskOption). A failure inside the task is
// wrapped in ErrTaskFailed naming the task; the cause stays reachable with
// errors.Is.
func (d *Dispatcher) Dispatch(ctx context.Context, path string, raw map[string]string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	t, canonical, err := d.registry.Resolve(path)
	if err != nil {
		return err
	}
	run, err := t.Bind(raw)
	if err != nil {
		return err
	}

	logger := zerolog.Ctx(ctx).With().
		Str("task", canonical).
		Str("run_id", uuid.NewString()).
		Logger()
	ctx = logger.WithContext(ctx)

	start := time.Now()
	logger.Info().Msg("task started")
	if len(raw) > 0 {
		logger.Debug().Interface("options", logging.SafeOptions(raw)).Msg("task options")
	}

	if err := run(ctx); err != nil {
		logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("task failed")
		return fmt.Errorf("%w: %s: %w", errors.ErrTaskFailed, canonical, err)
	}

	logger.Info().Dur("duration", time.Since(start)).Msg("task completed")
	return nil
}
