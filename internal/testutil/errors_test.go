package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chored-dev/chored/internal/process"
)

func TestMockErrorsAreDistinct(t *testing.T) {
	all := []error{ErrMockGitFailed, ErrMockGHFailed, ErrMockNetwork, ErrMockCommand}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}

func TestRecordingRunner(t *testing.T) {
	r := &RecordingRunner{Fail: map[string]error{"sbt test": ErrMockCommand}}
	ctx := context.Background()

	require.NoError(t, r.Run(ctx, process.Command{Args: []string{"sbt", "about"}}))
	require.ErrorIs(t, r.Run(ctx, process.Command{Args: []string{"sbt", "test"}}), ErrMockCommand)

	assert.Equal(t, []string{"sbt about", "sbt test"}, r.Lines())
	assert.Len(t, r.Commands(), 2)
}
