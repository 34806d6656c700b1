package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chored-dev/chored/internal/testutil"
)

func TestTasks_Text(t *testing.T) {
	isolateHome(t)

	stdout, _, err := execute(t, recordingFactory(&testutil.RecordingRunner{}), "tasks")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "TASK"))
	assert.Contains(t, stdout, "render.default")
	assert.Contains(t, stdout, "githubToken, mode")
}

func TestTasks_JSON(t *testing.T) {
	isolateHome(t)

	stdout, _, err := execute(t, recordingFactory(&testutil.RecordingRunner{}), "-o", "json", "tasks")
	require.NoError(t, err)

	var listing []taskListing
	require.NoError(t, json.Unmarshal([]byte(stdout), &listing))
	require.NotEmpty(t, listing)

	byPath := make(map[string]taskListing, len(listing))
	for _, l := range listing {
		byPath[l.Path] = l
		assert.NotNil(t, l.Options, l.Path)
	}
	assert.Equal(t, []string{"githubToken", "mode"}, byPath["selfUpdate"].Options)
	assert.Empty(t, byPath["release"].Options)
}

func TestTasks_RejectsArguments(t *testing.T) {
	isolateHome(t)

	_, _, err := execute(t, recordingFactory(&testutil.RecordingRunner{}), "tasks", "extra")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}
