package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errFirst  = errors.New("first")
	errSecond = errors.New("second")
)

func TestJoin_AllSucceed(t *testing.T) {
	var n atomic.Int32
	inc := func(context.Context) error { n.Add(1); return nil }

	require.NoError(t, Join(context.Background(), inc, inc, inc))
	assert.Equal(t, int32(3), n.Load())
}

func TestJoin_FailingBranchDoesNotCancelSibling(t *testing.T) {
	var slowFinished atomic.Bool

	err := Join(context.Background(),
		func(context.Context) error { return errFirst },
		func(ctx context.Context) error {
			select {
			case <-time.After(50 * time.Millisecond):
				slowFinished.Store(true)
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	require.ErrorIs(t, err, errFirst)
	assert.True(t, slowFinished.Load(), "slow branch must run to completion")
}

func TestJoin_FirstErrorInArgumentOrder(t *testing.T) {
	err := Join(context.Background(),
		func(context.Context) error {
			time.Sleep(30 * time.Millisecond)
			return errFirst
		},
		func(context.Context) error { return errSecond },
	)

	require.ErrorIs(t, err, errFirst)
}

func TestJoin_Empty(t *testing.T) {
	assert.NoError(t, Join(context.Background()))
}
