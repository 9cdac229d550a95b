package labelclean

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"
)

const outputLockFile = ".labelclean.lock"

// ErrOutputLocked is returned when another process is writing to the same
// output directory.
var ErrOutputLocked = errors.New("output directory is locked by another run")

// WriteOutputs writes the key file and the cleaned file while holding an
// advisory lock in every directory that receives one of them. The lock files
// stay on disk after the locks are released.
func WriteOutputs(keyPath, cleanedPath string, results []ResultRecord) error {
	locks, err := lockOutputDirs(keyPath, cleanedPath)
	if err != nil {
		return err
	}
	defer unlockAll(locks)

	if err := WriteKeyFile(keyPath, results); err != nil {
		return err
	}
	return WriteCleanedFile(cleanedPath, results)
}

// lockOutputDirs takes the lock of each distinct parent directory in a fixed
// order. Nothing stays locked when it fails.
func lockOutputDirs(paths ...string) ([]*flock.Flock, error) {
	seen := make(map[string]struct{}, len(paths))
	dirs := make([]string, 0, len(paths))
	for _, p := range paths {
		dir := filepath.Clean(filepath.Dir(p))
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	locks := make([]*flock.Flock, 0, len(dirs))
	for _, dir := range dirs {
		if err := EnsureDir(filepath.Join(dir, outputLockFile)); err != nil {
			unlockAll(locks)
			return nil, err
		}
		lockPath := filepath.Join(dir, outputLockFile)
		lock := flock.New(lockPath)
		ok, err := lock.TryLock()
		if err != nil {
			unlockAll(locks)
			return nil, fmt.Errorf("acquire output lock: %w", err)
		}
		if !ok {
			unlockAll(locks)
			return nil, fmt.Errorf("%s: %w", lockPath, ErrOutputLocked)
		}
		locks = append(locks, lock)
	}
	return locks, nil
}

func unlockAll(locks []*flock.Flock) {
	for _, lock := range locks {
		_ = lock.Unlock()
	}
}
