// Package workspace keeps the parsed trees of a set of files.
package workspace

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/tsc/shared"
)

var log = commonlog.GetLogger("tsc.workspace")

// File is one parsed file. Source is the text the tree's byte offsets
// index into; for tree-sitter languages it is Content itself.
type File struct {
	Path     string
	Content  []byte
	Source   []byte
	Language string
	Tree     *shared.Handle
	ParseErr error
}

// Text returns the source text between two byte offsets.
func (f *File) Text(start, end uint32) string {
	if int(end) > len(f.Source) || start > end {
		return ""
	}
	return string(f.Source[start:end])
}

type Workspace struct {
	mu        sync.RWMutex
	rootDir   string
	languages map[string]string
	files     map[string]*File
}

// New creates an empty workspace. languages maps file extensions to
// language names, overriding the built-in table.
func New(rootDir string, languages map[string]string) *Workspace {
	return &Workspace{
		rootDir:   rootDir,
		languages: languages,
		files:     make(map[string]*File),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// ScanAll parses every file under the root directory that has a known
// language. It keeps going after errors and returns all of them.
func (w *Workspace) ScanAll(ctx context.Context) error {
	var result *multierror.Error
	err := filepath.WalkDir(w.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result = multierror.Append(result, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, err := LanguageFor(path, w.languages); err != nil {
			return nil
		}
		if err := w.ScanFile(ctx, path); err != nil {
			result = multierror.Append(result, err)
		}
		return ctx.Err()
	})
	if err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

func (w *Workspace) ScanFile(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return w.UpdateFile(ctx, path, content)
}

// UpdateFile parses content and replaces the file's previous tree. A file
// that fails to parse is still recorded, with ParseErr set and no tree.
func (w *Workspace) UpdateFile(ctx context.Context, path string, content []byte) error {
	f, err := Parse(ctx, path, content, w.languages)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		log.Warningf("%s: %s", path, err)
		f = &File{Path: path, Content: content, ParseErr: err}
	}

	w.mu.Lock()
	old := w.files[path]
	w.files[path] = f
	w.mu.Unlock()

	if old != nil {
		log.Debugf("replaced %s", path)
		old.Tree.Release()
	}
	return err
}

// GetFile returns the file without taking a share of its tree. Use Acquire
// when the tree must outlive a concurrent update.
func (w *Workspace) GetFile(path string) *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Acquire returns the file and a new share of its tree, or a nil handle if
// the file is unknown or did not parse. The caller releases the handle.
func (w *Workspace) Acquire(path string) (*File, *shared.Handle) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	f := w.files[path]
	if f == nil || f.Tree == nil {
		return f, nil
	}
	return f, f.Tree.Clone()
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	f := w.files[path]
	delete(w.files, path)
	w.mu.Unlock()
	if f != nil {
		f.Tree.Release()
	}
}

// Paths returns the known file paths in sorted order.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.files))
	for p := range w.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Close releases every tree the workspace holds.
func (w *Workspace) Close() {
	w.mu.Lock()
	files := w.files
	w.files = make(map[string]*File)
	w.mu.Unlock()
	for _, f := range files {
		f.Tree.Release()
	}
}
