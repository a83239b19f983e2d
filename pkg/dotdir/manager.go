// Package dotdir locates the .duet/ configuration directory: lexicon
// overrides, cached run output, and config.toml.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// dirName is the name of the duet directory.
	dirName = ".duet"
)

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the target absolute path to a .duet/ directory, or empty
// string if none is found. Order of precedence:
//  1. Provided override
//  2. Local ./.duet/ dir
//  3. Home ~/.duet/ dir, if it already exists
//
// Unlike a VCS-style tool, duet never silently creates a home directory
// just from being invoked; callers that need one call EnsureTarget.
func (m *Manager) Target(overrideDir string) (string, error) {
	if overrideDir != "" {
		return filepath.Abs(overrideDir)
	}

	if dir, ok := m.localDir(); ok {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil
	}
	homeDir := filepath.Join(home, dirName)
	if info, err := os.Stat(homeDir); err == nil && info.IsDir() {
		return filepath.Abs(homeDir)
	}

	return "", nil
}

// EnsureTarget behaves like Target but creates the resolved directory
// (falling back to ~/.duet/) when nothing exists yet.
func (m *Manager) EnsureTarget(overrideDir string) (string, error) {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return "", err
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating duet directory %s: %w", dir, err)
	}
	return filepath.Abs(dir)
}

// localDir reports whether a .duet/ directory exists in the current
// working directory, returning its absolute path.
func (m *Manager) localDir() (string, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	local := filepath.Join(cwd, dirName)
	info, err := os.Stat(local)
	if err != nil || !info.IsDir() {
		return "", false
	}
	abs, err := filepath.Abs(local)
	if err != nil {
		return "", false
	}
	return abs, true
}
