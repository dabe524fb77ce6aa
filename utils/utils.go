// Package utils provides small helpers shared across the application.
package utils

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// ExpandPath expands the tilde and any environment variables in path.
// If expansion fails the input is returned unchanged.
func ExpandPath(path string) string {
	s, err := homedir.Expand(path)
	if err != nil {
		s = path
	}
	return os.ExpandEnv(s)
}

// AbsPath returns the absolute form of path after expansion, falling
// back to the expanded path if it cannot be resolved.
func AbsPath(path string) string {
	p := ExpandPath(path)
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
