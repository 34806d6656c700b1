package flock

import (
	"fmt"
	"os"

	chorederrors "github.com/chored-dev/chored/internal/errors"
)

// Lock is a held exclusive lock on a file.
type Lock struct {
	file *os.File
}

// TryLock creates (if needed) and exclusively locks path without blocking.
// A lock held by another process returns ErrLockTimeout.
func TryLock(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) // #nosec G304 -- path is built by the caller from the git dir
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", path, err)
	}
	if err := Exclusive(f.Fd()); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, chorederrors.ErrLockTimeout)
	}
	return &Lock{file: f}, nil
}

// Release unlocks and closes the lock file. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil
	unlockErr := Unlock(f.Fd())
	closeErr := f.Close()
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}
