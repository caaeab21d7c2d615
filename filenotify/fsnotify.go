package filenotify

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// EventWatcher is an implementation of FileWatcher using fsnotify.
// It watches the directory containing each file, because editors often save
// by writing a new file and renaming it over the old one, which drops a
// watch placed on the file itself.
type EventWatcher struct {
	watcher *fsnotify.Watcher
	events  chan fsnotify.Event
	errors  chan error
	done    chan struct{}

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]int

	closeOnce sync.Once
}

// NewEventWatcher returns a new EventWatcher
func NewEventWatcher() (FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &EventWatcher{
		watcher: watcher,
		events:  make(chan fsnotify.Event),
		errors:  make(chan error),
		done:    make(chan struct{}),
		files:   make(map[string]bool),
		dirs:    make(map[string]int),
	}

	go w.watch()

	return w, nil
}

// Events returns the event channel
func (w *EventWatcher) Events() <-chan fsnotify.Event {
	return w.events
}

// Errors returns the error channel
func (w *EventWatcher) Errors() <-chan error {
	return w.errors
}

// Add starts watching the named file through its parent directory
func (w *EventWatcher) Add(name string) error {
	name = cleanPath(name)
	dir := filepath.Dir(name)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.files[name] {
		return nil
	}
	if w.dirs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[name] = true
	return nil
}

// Remove stops watching the named file
func (w *EventWatcher) Remove(name string) error {
	name = cleanPath(name)
	dir := filepath.Dir(name)

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.files[name] {
		return ErrNotWatched
	}
	delete(w.files, name)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		return w.watcher.Remove(dir)
	}
	return nil
}

// Close closes the watcher
func (w *EventWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.watcher.Close()
		close(w.done)
	})
	return err
}

func (w *EventWatcher) watched(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[cleanPath(name)]
}

// watch forwards events for watched files until the watcher is closed
func (w *EventWatcher) watch() {
	defer close(w.events)
	defer close(w.errors)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.watched(event.Name) {
				continue
			}
			select {
			case w.events <- event:
			case <-w.done:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			case <-w.done:
				return
			}
		case <-w.done:
			return
		}
	}
}
