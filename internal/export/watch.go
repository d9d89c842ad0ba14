package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups bursts of file events into one rebuild.
const DefaultDebounce = 200 * time.Millisecond

// Watcher rebuilds the export when a source file changes.
type Watcher struct {
	exporter *Exporter
	paths    []string
	debounce time.Duration
	onBuild  func(Result, error)
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets the quiet period before a rebuild.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) { w.debounce = d }
}

// OnBuild registers fn to be called after every rebuild.
func OnBuild(fn func(Result, error)) WatchOption {
	return func(w *Watcher) { w.onBuild = fn }
}

// NewWatcher watches paths, which may be directories or files. Files are
// watched through their parent directory so editors that replace files are
// still noticed.
func NewWatcher(e *Exporter, paths []string, opts ...WatchOption) *Watcher {
	w := &Watcher{exporter: e, paths: paths, debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch blocks until ctx is cancelled, rebuilding after each burst of
// changes. Events inside the output directory are ignored.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer fw.Close()

	set := w.targets()
	for _, dir := range set.register {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	var (
		timer   *time.Timer
		trigger <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			if !w.relevant(event, set) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			trigger = timer.C
		case <-trigger:
			trigger = nil
			w.rebuild(ctx)
		case err, ok := <-fw.Errors:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			w.exporter.Log.Warnf("watch error: %v", err)
		}
	}
}

func (w *Watcher) rebuild(ctx context.Context) {
	res, err := w.exporter.Build(ctx)
	if err != nil {
		w.exporter.Log.Errorf("rebuild failed: %v", err)
	}
	if w.onBuild != nil {
		w.onBuild(res, err)
	}
}

// watchSet is what a Watcher listens to.
type watchSet struct {
	// register lists the directories added to fsnotify.
	register []string
	// dirs are watched directories whose every entry matters.
	dirs map[string]bool
	// files are single files of interest.
	files map[string]bool
}

// targets resolves the watched paths. Files, including ones that do not exist
// yet, are watched through their nearest existing parent directory.
func (w *Watcher) targets() watchSet {
	set := watchSet{dirs: make(map[string]bool), files: make(map[string]bool)}
	seen := make(map[string]bool)
	register := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			set.register = append(set.register, dir)
		}
	}

	for _, p := range w.paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			set.dirs[abs] = true
			register(abs)
			continue
		}
		set.files[abs] = true
		register(existingParent(filepath.Dir(abs)))
	}
	return set
}

func (w *Watcher) relevant(event fsnotify.Event, set watchSet) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	if out, err := filepath.Abs(w.exporter.OutDir); err == nil && within(name, out) {
		return false
	}
	return set.files[name] || set.dirs[filepath.Dir(name)]
}

func existingParent(dir string) string {
	for {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
