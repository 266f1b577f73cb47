package local

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"pdf-qr-scanner/internal/domain"
	"pdf-qr-scanner/internal/repository/scratch"

	"github.com/wb-go/wbf/zlog"
)

var unsafeIDChars = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Store hands out per-request workspaces under the upload directory.
type Store struct {
	root   string
	logger *zlog.Zerolog
}

func NewStore(root string, logger *zlog.Zerolog) (*Store, error) {
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("%w: failed to create upload dir %s: %v", scratch.ErrStorageError, root, err)
	}

	return &Store{
		root:   root,
		logger: logger,
	}, nil
}

// Sweep removes workspaces left behind by a previous process.
func (s *Store) Sweep() (int, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to list upload dir: %v", scratch.ErrStorageError, err)
	}

	removed := 0
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), domain.ScratchWorkspacePrefix) {
			continue
		}

		path := filepath.Join(s.root, e.Name())
		if err := os.RemoveAll(path); err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Failed to remove stale workspace")
			continue
		}
		removed++
	}

	return removed, nil
}

// NewWorkspace creates a directory unique to one request. requestID only
// makes the name easier to trace in logs.
func (s *Store) NewWorkspace(requestID string) (scratch.Workspace, error) {
	pattern := domain.ScratchWorkspacePrefix
	if id := strings.Trim(unsafeIDChars.ReplaceAllString(requestID, "-"), "-"); id != "" {
		pattern += id + "-"
	}
	pattern += "*"

	dir, err := os.MkdirTemp(s.root, pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create workspace: %v", scratch.ErrStorageError, err)
	}

	return &Workspace{dir: dir, logger: s.logger}, nil
}

type Workspace struct {
	dir    string
	logger *zlog.Zerolog

	mu     sync.Mutex
	closed bool
}

func (w *Workspace) Dir() string {
	return w.dir
}

// Save writes data to name inside the workspace and returns the full path.
// name must be a bare file name.
func (w *Workspace) Save(name string, data io.Reader) (path string, err error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", scratch.ErrInvalidName, name)
	}

	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return "", scratch.ErrWorkspaceClosed
	}

	full := filepath.Join(w.dir, name)
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create %s: %v", scratch.ErrStorageError, name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: failed to close %s: %v", scratch.ErrStorageError, name, cerr)
		}
		if err != nil {
			_ = os.Remove(full)
			path = ""
		}
	}()

	if _, err := io.Copy(f, data); err != nil {
		return "", fmt.Errorf("%w: failed to write %s: %v", scratch.ErrStorageError, name, err)
	}

	return full, nil
}

// Remove deletes one file of the workspace. Failures are logged, not returned
// to the client.
func (w *Workspace) Remove(path string) error {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") || strings.ContainsRune(rel, filepath.Separator) {
		return fmt.Errorf("%w: %s", scratch.ErrOutsideRoot, path)
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		w.logger.Warn().Err(err).Str("path", path).Msg("Failed to remove scratch file")
		return fmt.Errorf("%w: %v", scratch.ErrStorageError, err)
	}

	return nil
}

// Close removes the workspace and anything still inside it.
func (w *Workspace) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if err := os.RemoveAll(w.dir); err != nil {
		w.logger.Warn().Err(err).Str("path", w.dir).Msg("Failed to remove workspace")
		return fmt.Errorf("%w: %v", scratch.ErrStorageError, err)
	}

	return nil
}
