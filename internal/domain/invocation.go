package domain

// Invocation names a task and the options it is called with. It is the unit
// CI documents are built from: one invocation becomes one workflow step.
type Invocation struct {
	Module  string
	Name    string
	Options map[string]string
}

// Path returns the dotted task path ("module.name", or just "name" for a
// top-level task).
func (i Invocation) Path() string {
	if i.Module == "" {
		return i.Name
	}
	return i.Module + "." + i.Name
}
