// Package watch reports debounced changes to annotated sources.
package watch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 100 * time.Millisecond

// Watcher coalesces bursts of file system events into single notifications.
// A nil value on Updates means "something changed"; a non-nil value is an
// error reported by the underlying watcher.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	ignore []string

	updates chan error
	done    chan struct{}
	wg      sync.WaitGroup
}

// New watches every directory under each root. Directories created later
// are added as they appear.
func New(roots []string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		debounce: debounce,
		updates:  make(chan error, 1),
		done:     make(chan struct{}),
	}
	for _, root := range roots {
		if err := w.addTree(root); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w.wg.Add(1)
	go w.process()
	return w, nil
}

// Updates delivers change notifications and watcher errors.
func (w *Watcher) Updates() <-chan error {
	return w.updates
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return err
}

// Ignore drops events for paths under dir. Generating into a directory
// below a watched root would otherwise retrigger itself.
func (w *Watcher) Ignore(dir string) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = filepath.Clean(dir)
	}
	w.mu.Lock()
	w.ignore = append(w.ignore, abs)
	w.mu.Unlock()
	_ = w.watcher.Remove(abs)
}

func (w *Watcher) ignored(p string) bool {
	abs, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, dir := range w.ignore {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) addTree(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.watcher.Add(root)
	}
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if w.ignored(p) {
				return filepath.SkipDir
			}
			return w.watcher.Add(p)
		}
		return nil
	})
}

func (w *Watcher) notify(err error) {
	select {
	case w.updates <- err:
	case <-w.done:
	default:
		// A notification is already pending; it covers this one too.
		if err != nil {
			select {
			case w.updates <- err:
			case <-w.done:
			}
		}
	}
}

func (w *Watcher) debounceUpdate() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.notify(nil)
	})
}

func (w *Watcher) process() {
	defer w.wg.Done()
	for {
		select {
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.notify(err)
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.ignored(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.addTree(ev.Name)
				}
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
				w.debounceUpdate()
			}
		}
	}
}
