// Package flock provides cross-platform advisory file locks.
//
// Exclusive and Unlock operate on raw descriptors; TryLock wraps them for
// the common "lock file next to the thing being mutated" case:
//
//	lock, err := flock.TryLock(filepath.Join(gitDir, "chored-self-update.lock"))
//	if err != nil {
//	    return err // errors.Is(err, errors.ErrLockTimeout)
//	}
//	defer lock.Release()
package flock
