package git

// Status represents the current state of a Git working tree.
type Status struct {
	Staged    []FileChange // Files staged for commit
	Unstaged  []FileChange // Modified but not staged
	Untracked []string     // Untracked files
	Branch    string       // Current branch name
}

// FileChange represents a changed file in the working tree.
type FileChange struct {
	Path    string     // File path relative to repo root
	Status  ChangeType // Type of change (Added, Modified, Deleted, etc.)
	OldPath string     // For renamed files, the original path
}

// ChangeType represents the type of change for a file.
type ChangeType string

// Change type constants for git status.
const (
	ChangeAdded    ChangeType = "A"
	ChangeModified ChangeType = "M"
	ChangeDeleted  ChangeType = "D"
	ChangeRenamed  ChangeType = "R"
	ChangeCopied   ChangeType = "C"
	ChangeUnmerged ChangeType = "U"
)

// IsClean returns true if the working tree has no changes.
func (s *Status) IsClean() bool {
	return len(s.Staged) == 0 && len(s.Unstaged) == 0 && len(s.Untracked) == 0
}

// Paths returns every changed or untracked path, staged entries first.
func (s *Status) Paths() []string {
	paths := make([]string, 0, len(s.Staged)+len(s.Unstaged)+len(s.Untracked))
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}
	for _, c := range s.Staged {
		add(c.Path)
	}
	for _, c := range s.Unstaged {
		add(c.Path)
	}
	for _, p := range s.Untracked {
		add(p)
	}
	return paths
}
