// Package watch reports changes made to the event database by other processes.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the file must stay quiet before a change fires.
const DefaultDebounce = 150 * time.Millisecond

// Watcher fires onChange once per burst of writes to a database file or its
// journal. The directory is watched so atomic replaces are seen too.
type Watcher struct {
	watcher  *fsnotify.Watcher
	base     string
	delay    time.Duration
	onChange func()
	onError  func(error)

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	done   chan struct{}
	wg     sync.WaitGroup
}

// New starts watching path. onError may be nil.
func New(path string, delay time.Duration, onChange func(), onError func(error)) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if delay <= 0 {
		delay = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(absPath), err)
	}

	w := &Watcher{
		watcher:  fsw,
		base:     filepath.Base(absPath),
		delay:    delay,
		onChange: onChange,
		onError:  onError,
		done:     make(chan struct{}),
	}

	w.wg.Add(1)
	go w.watch()
	return w, nil
}

// Matches reports whether name is the database file or one of its
// SQLite sidecar files.
func (w *Watcher) Matches(name string) bool {
	b := filepath.Base(name)
	if b == w.base {
		return true
	}
	for _, suffix := range []string{"-journal", "-wal"} {
		if b == w.base+suffix {
			return true
		}
	}
	return false
}

func (w *Watcher) watch() {
	defer w.wg.Done()

	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !w.Matches(ev.Name) {
				continue
			}
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	closed := w.closed
	w.timer = nil
	w.mu.Unlock()

	if !closed && w.onChange != nil {
		w.onChange()
	}
}

// Close stops the watcher and drops any pending change.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
