package task

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chored-dev/chored/internal/errors"
)

// Descriptor describes one runnable path for listings.
type Descriptor struct {
	Path        string
	Description string
	Options     []string
}

// Registry maps task paths to tasks. It is built once by NewRegistry and is
// read-only afterwards, so it is safe for concurrent use without locking.
type Registry struct {
	top     map[string]Entry
	modules map[string]map[string]Task
}

// NewRegistry builds a registry from top-level tasks and modules. Names must
// be non-empty, must not contain "." and must be unique at their level.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{
		top:     make(map[string]Entry, len(entries)),
		modules: make(map[string]map[string]Task),
	}
	for _, e := range entries {
		if err := validName(e.Name()); err != nil {
			return nil, err
		}
		if _, dup := r.top[e.Name()]; dup {
			return nil, fmt.Errorf("%w: %s", errors.ErrTaskDuplicate, e.Name())
		}
		switch v := e.(type) {
		case Task:
			r.top[v.Name()] = v
		case *Module:
			children := make(map[string]Task, len(v.tasks))
			for _, t := range v.tasks {
				if err := validName(t.Name()); err != nil {
					return nil, err
				}
				if _, dup := children[t.Name()]; dup {
					return nil, fmt.Errorf("%w: %s.%s", errors.ErrTaskDuplicate, v.Name(), t.Name())
				}
				children[t.Name()] = t
			}
			r.top[v.Name()] = v
			r.modules[v.Name()] = children
		default:
			return nil, fmt.Errorf("%w: unsupported entry %T", errors.ErrInvalidArgument, e)
		}
	}
	return r, nil
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: task name", errors.ErrEmptyValue)
	}
	if strings.Contains(name, ".") {
		return fmt.Errorf("%w: task name %q must not contain '.'", errors.ErrInvalidArgument, name)
	}
	return nil
}

// Resolve finds the task for path ("task", "module.task" or "module").
// It returns the canonical path alongside the task.
func (r *Registry) Resolve(path string) (Task, string, error) {
	moduleName, taskName, qualified := strings.Cut(path, ".")

	if !qualified {
		entry, ok := r.top[path]
		if !ok {
			return nil, "", fmt.Errorf("%w: %s", errors.ErrTaskNotFound, path)
		}
		if t, ok := entry.(Task); ok {
			return t, path, nil
		}
		t, ok := r.modules[path][DefaultTaskName]
		if !ok {
			return nil, "", fmt.Errorf("%w: module %s has no %s task", errors.ErrTaskNotFound, path, DefaultTaskName)
		}
		return t, path + "." + DefaultTaskName, nil
	}

	children, ok := r.modules[moduleName]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", errors.ErrModuleNotFound, moduleName)
	}
	t, ok := children[taskName]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", errors.ErrTaskNotFound, path)
	}
	return t, path, nil
}

// List returns every runnable path, sorted.
func (r *Registry) List() []Descriptor {
	var out []Descriptor
	for name, entry := range r.top {
		if t, ok := entry.(Task); ok {
			out = append(out, Descriptor{Path: name, Description: t.Description(), Options: t.OptionNames()})
			continue
		}
		for childName, t := range r.modules[name] {
			out = append(out, Descriptor{
				Path:        name + "." + childName,
				Description: t.Description(),
				Options:     t.OptionNames(),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
