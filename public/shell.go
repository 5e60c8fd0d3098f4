// Package public provides the SPA shell document the server decorates per route.
package public

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

//go:embed index.html
var fallbackShell []byte

// FallbackShell returns the minimal shell compiled into the binary.
func FallbackShell() []byte {
	return append([]byte(nil), fallbackShell...)
}

// Shell loads <distDir>/index.html, falling back to the embedded shell when the
// build output is absent. Unless reload is set the bytes are read once.
type Shell struct {
	path   string
	reload bool

	once sync.Once
	data []byte
	err  error
}

// NewShell returns a Shell for the SPA build in distDir.
func NewShell(distDir string, reload bool) *Shell {
	return &Shell{path: filepath.Join(distDir, "index.html"), reload: reload}
}

// Bytes returns the shell document. Callers must not modify the result.
func (s *Shell) Bytes() ([]byte, error) {
	if s.reload {
		return s.read()
	}
	s.once.Do(func() { s.data, s.err = s.read() })
	return s.data, s.err
}

// FromDist reports whether the shell was found in the build output.
func (s *Shell) FromDist() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

func (s *Shell) read() ([]byte, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return fallbackShell, nil
	}
	if err != nil {
		return nil, fmt.Errorf("public: read shell %s: %w", s.path, err)
	}
	return b, nil
}
