// Package task provides the named-task registry and dispatcher.
//
// Tasks are declared with a typed options struct and its defaults. Raw
// key=value options from the command line or a CI step are decoded onto a
// copy of the defaults, so callers only name the options they change.
// Tasks are addressed by name, or as module.name for tasks grouped in a
// module; a bare module name runs the module's "default" task.
package task

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/go-viper/mapstructure/v2"

	"github.com/chored-dev/chored/internal/errors"
)

// DefaultTaskName is the module child run when only the module is named.
const DefaultTaskName = "default"

// Entry is anything that can be registered: a Task or a Module.
type Entry interface {
	Name() string
	Description() string
}

// Runnable is a task bound to its options.
type Runnable func(ctx context.Context) error

// Task is a runnable entry with typed options.
type Task interface {
	Entry
	// Bind decodes raw options onto the task's defaults. Unknown keys and
	// values that cannot be converted fail with ErrInvalidTaskOption.
	Bind(raw map[string]string) (Runnable, error)
	// OptionNames lists accepted option keys, sorted.
	OptionNames() []string
}

type typedTask[O any] struct {
	name        string
	description string
	defaults    O
	run         func(ctx context.Context, opts O) error
}

// New declares a task whose options are of type O. O is normally a struct
// with mapstructure tags; struct{} declares a task without options.
func New[O any](name, description string, defaults O, run func(ctx context.Context, opts O) error) Task {
	return &typedTask[O]{name: name, description: description, defaults: defaults, run: run}
}

func (t *typedTask[O]) Name() string        { return t.name }
func (t *typedTask[O]) Description() string { return t.description }

func (t *typedTask[O]) Bind(raw map[string]string) (Runnable, error) {
	opts, err := DecodeOptions(t.defaults, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.name, err)
	}
	return func(ctx context.Context) error {
		return t.run(ctx, opts)
	}, nil
}

func (t *typedTask[O]) OptionNames() []string {
	return optionNames(reflect.TypeOf(t.defaults))
}

// DecodeOptions returns defaults with raw applied field by field. Values are
// weakly typed ("true" -> bool, "3" -> int) and comma-separated strings fill
// slices.
func DecodeOptions[O any](defaults O, raw map[string]string) (O, error) {
	out := defaults
	if len(raw) == 0 {
		return out, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		// Replace slices instead of writing into the defaults' backing arrays.
		ZeroFields:       true,
		Result:           &out,
	})
	if err != nil {
		return defaults, fmt.Errorf("%w: %w", errors.ErrInvalidTaskOption, err)
	}
	if err := dec.Decode(raw); err != nil {
		return defaults, fmt.Errorf("%w: %w", errors.ErrInvalidTaskOption, err)
	}
	return out, nil
}

func optionNames(t reflect.Type) []string {
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	var names []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Tag.Get("mapstructure")
		if name == "" {
			name = f.Name
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Module groups tasks under a common prefix.
type Module struct {
	name        string
	description string
	tasks       []Task
}

// NewModule declares a module. Its tasks are addressed as name.task.
func NewModule(name, description string, tasks ...Task) *Module {
	return &Module{name: name, description: description, tasks: tasks}
}

func (m *Module) Name() string        { return m.name }
func (m *Module) Description() string { return m.description }

// Tasks returns the module's tasks in declaration order.
func (m *Module) Tasks() []Task {
	out := make([]Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}
