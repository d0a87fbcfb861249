package workspace

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// Watcher polls the workspace root and reparses files whose modification
// time changed. Files that disappear from disk are removed.
type Watcher struct {
	ws       *Workspace
	interval time.Duration
	modTimes map[string]time.Time
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewWatcher(ws *Workspace, interval time.Duration) *Watcher {
	return &Watcher{
		ws:       ws,
		interval: interval,
		modTimes: make(map[string]time.Time),
	}
}

// Start scans once and then keeps polling until Stop is called or ctx ends.
func (w *Watcher) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go w.run(ctx)
}

func (w *Watcher) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
	w.cancel = nil
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Scan(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Scan(ctx)
		}
	}
}

// Scan performs one polling pass. Hidden directories are skipped.
func (w *Watcher) Scan(ctx context.Context) {
	current := make(map[string]bool)

	filepath.WalkDir(w.ws.RootDir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != w.ws.RootDir() && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if _, err := LanguageFor(path, w.ws.languages); err != nil {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}

		current[path] = true
		last, known := w.modTimes[path]
		if !known || info.ModTime().After(last) {
			w.modTimes[path] = info.ModTime()
			w.ws.ScanFile(ctx, path)
		}
		return ctx.Err()
	})

	for path := range w.modTimes {
		if !current[path] {
			delete(w.modTimes, path)
			w.ws.RemoveFile(path)
		}
	}
}
