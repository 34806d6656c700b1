package errors

import "fmt"

// Wrap adds context to an error at a package boundary.
// It returns nil when err is nil so it can be used inline:
//
//	return errors.Wrap(runner.Push(ctx, branch), "push self-update branch")
//
// The original chain is preserved, so errors.Is keeps matching sentinels.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
