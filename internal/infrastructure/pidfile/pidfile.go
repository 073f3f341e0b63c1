package pidfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// PIDFile marks a session as owned by a running process
type PIDFile struct {
	path string
}

// New creates a PIDFile at an explicit path
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// ForSession returns the lock file of a session inside dir
func ForSession(dir, sessionID string) *PIDFile {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, sessionID)
	return New(filepath.Join(dir, "bakerysim-"+name+".pid"))
}

// Path returns the file location
func (p *PIDFile) Path() string {
	return p.path
}

// Acquire writes the current PID, failing if a live process already holds the file.
// Stale or unreadable files are replaced.
func (p *PIDFile) Acquire() error {
	if data, err := os.ReadFile(p.path); err == nil {
		pid, convErr := strconv.Atoi(strings.TrimSpace(string(data)))
		if convErr == nil && pid != os.Getpid() && isProcessRunning(pid) {
			return fmt.Errorf("session is in use by another process (PID %d)", pid)
		}
		_ = os.Remove(p.path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read PID file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("failed to create PID directory: %w", err)
	}
	if err := os.WriteFile(p.path, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// Release removes the file
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// On Unix FindProcess always succeeds; signal 0 probes existence
	err = process.Signal(syscall.Signal(0))
	switch err {
	case nil, syscall.EPERM:
		return true
	default:
		return false
	}
}
