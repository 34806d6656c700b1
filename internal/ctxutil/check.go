// Package ctxutil provides context helpers.
package ctxutil

import "context"

// Canceled returns ctx.Err(): nil while the context is live, otherwise
// context.Canceled or context.DeadlineExceeded. Long-running operations
// call it at entry so a canceled run stops before touching the tree.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}
