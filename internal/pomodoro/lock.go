package pomodoro

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrLocked is returned when another live timer holds the lock.
var ErrLocked = errors.New("another timer is already running")

// Lock is a PID lockfile that keeps two timers from running at once.
type Lock struct {
	path string
	held bool
}

func NewLock(path string) *Lock {
	return &Lock{path: path}
}

func (l *Lock) Path() string {
	return l.path
}

// Acquire writes the current PID to the lockfile. A lockfile left behind by a
// process that no longer exists is reclaimed.
func (l *Lock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0700); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%d\n", getpidFunc())
			cerr := f.Close()
			if werr != nil {
				return fmt.Errorf("failed to write lockfile: %w", werr)
			}
			if cerr != nil {
				return fmt.Errorf("failed to close lockfile: %w", cerr)
			}
			l.held = true
			return nil
		}
		if !errors.Is(err, os.ErrExist) {
			return fmt.Errorf("failed to create lockfile: %w", err)
		}

		pid, alive := l.owner()
		if alive {
			return fmt.Errorf("%w (pid %d)", ErrLocked, pid)
		}
		if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return ErrLocked
}

// Release removes the lockfile if this Lock holds it.
func (l *Lock) Release() error {
	if !l.held {
		return nil
	}
	l.held = false
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// owner reads the PID from the lockfile and reports whether that process is
// still running. Unreadable or malformed lockfiles count as stale.
func (l *Lock) owner() (int, bool) {
	content, err := os.ReadFile(l.path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return pid, false
	}
	return pid, true
}
