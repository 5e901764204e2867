// Package workspace confines reads and writes of the caller's file set to a
// fixed root directory. Apply-block paths come from a model response, so a
// suggested change must never resolve outside the root.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"torchlint/internal/chat"
)

// ErrOutsideRoot reports a path that escapes the workspace root.
var ErrOutsideRoot = errors.New("workspace: path resolves outside root")

// FS locks all file operations to one root directory.
type FS struct {
	absRoot string // absolute root with symlinks resolved
}

// New binds a workspace to root, resolved to an absolute, symlink-free
// directory.
func New(root string) (*FS, error) {
	if root == "" {
		return nil, errors.New("workspace: empty root")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("workspace: root is not a directory")
	}
	return &FS{absRoot: abs}, nil
}

// Root returns the absolute root directory bound to this workspace.
func (w *FS) Root() string {
	if w == nil {
		return ""
	}
	return w.absRoot
}

// ReadContext reads one file relative to the root and wraps it as a chat
// FileContext keyed by the given path.
func (w *FS) ReadContext(userPath string) (chat.FileContext, error) {
	p, err := w.resolveExisting(userPath)
	if err != nil {
		return chat.FileContext{}, err
	}
	info, err := os.Stat(p)
	if err != nil {
		return chat.FileContext{}, err
	}
	if info.IsDir() {
		return chat.FileContext{}, errors.New("workspace: path is a directory")
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return chat.FileContext{}, err
	}
	return chat.FileContext{FilePath: userPath, Content: string(data)}, nil
}

// Apply writes each change's new content to its target path under the root,
// creating parent directories as needed. It stops at the first failure and
// reports how many changes were written.
func (w *FS) Apply(changes []chat.FileChange) (int, error) {
	for i, c := range changes {
		p, err := w.resolveForWrite(c.FilePath)
		if err != nil {
			return i, err
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return i, err
		}
		if err := os.WriteFile(p, []byte(c.NewContent+"\n"), 0o644); err != nil {
			return i, err
		}
	}
	return len(changes), nil
}

// resolveExisting resolves a path that must already exist, following
// symlinks, and verifies it stays under the root.
func (w *FS) resolveExisting(userPath string) (string, error) {
	joined, err := w.join(userPath)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(joined)
	if err != nil {
		return "", err
	}
	if !hasPathPrefix(resolved, w.absRoot) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, userPath)
	}
	return resolved, nil
}

// resolveForWrite resolves a path that may not exist yet. Absolute paths and
// upward traversal are rejected before the target is created.
func (w *FS) resolveForWrite(userPath string) (string, error) {
	joined, err := w.join(userPath)
	if err != nil {
		return "", err
	}
	if !hasPathPrefix(joined, w.absRoot) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, userPath)
	}
	return joined, nil
}

func (w *FS) join(userPath string) (string, error) {
	if w == nil {
		return "", errors.New("workspace: not configured")
	}
	if userPath == "" {
		return "", errors.New("workspace: empty path")
	}
	clean := filepath.Clean(userPath)
	if filepath.IsAbs(clean) || (runtime.GOOS == "windows" && filepath.VolumeName(clean) != "") {
		if !hasPathPrefix(clean, w.absRoot) {
			return "", fmt.Errorf("%w: %s", ErrOutsideRoot, userPath)
		}
		return clean, nil
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, userPath)
	}
	return filepath.Join(w.absRoot, clean), nil
}

func hasPathPrefix(path, root string) bool {
	path = filepath.Clean(path)
	root = filepath.Clean(root)
	if runtime.GOOS == "windows" {
		path = strings.ToLower(path)
		root = strings.ToLower(root)
	}
	if len(root) == 0 {
		return true
	}
	if path == root {
		return true
	}
	sep := string(os.PathSeparator)
	if !strings.HasSuffix(root, sep) {
		root += sep
	}
	if !strings.HasSuffix(path, sep) {
		path += sep
	}
	return strings.HasPrefix(path, root)
}
