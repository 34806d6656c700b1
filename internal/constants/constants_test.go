package constants

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratedFilesAreReadOnly(t *testing.T) {
	assert.Zero(t, GeneratedFileMode&0o222, "generated files must not be writable")
	assert.NotZero(t, TextFileMode&0o200, "text files must stay owner-writable")
}

func TestVersionFileIsProjectRelative(t *testing.T) {
	assert.False(t, filepath.IsAbs(VersionFile))
	assert.Equal(t, ChoredHome, filepath.Dir(VersionFile))
}

func TestSelfUpdateDefaults(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		expected string
	}{
		{"DefaultCommitMessage", DefaultCommitMessage, "chore: update"},
		{"DefaultUpdateBranch", DefaultUpdateBranch, "self-update"},
		{"DefaultBaseBranch", DefaultBaseBranch, "main"},
		{"DefaultPRTitle", DefaultPRTitle, "[bot] self-update"},
		{"DefaultPRBody", DefaultPRBody, ":robot:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.constant)
		})
	}
}
