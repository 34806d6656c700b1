package domain

// FileKind selects how a rendered file is serialized.
type FileKind string

// File kinds.
const (
	// FileKindText is written verbatim and stays user-editable.
	FileKindText FileKind = "text"
	// FileKindYAML is marshalled from Data.
	FileKindYAML FileKind = "yaml"
	// FileKindComputed is written verbatim and marked read-only.
	FileKindComputed FileKind = "computed"
)

// RenderedFile is one generated artifact. Path is relative to the project
// root. Text and computed files carry Content; yaml files carry Data.
type RenderedFile struct {
	Path    string
	Kind    FileKind
	Content string
	Data    any
}

// Generated reports whether the file should be treated as machine-owned.
func (f RenderedFile) Generated() bool {
	return f.Kind != FileKindText
}
