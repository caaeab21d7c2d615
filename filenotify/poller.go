package filenotify

import (
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval is the interval used by NewPollingWatcher
const DefaultPollInterval = 200 * time.Millisecond

// PollingWatcher is an implementation of FileWatcher based on polling
type PollingWatcher struct {
	// interval is the time between polling for file changes
	interval time.Duration
	// files maps watched names to their last observed state; a nil entry
	// means the file did not exist at the last poll
	files map[string]*fileInfo
	// events is the channel where events are reported
	events chan fsnotify.Event
	// errors is the channel where errors are reported
	errors chan error
	// stop is closed to stop the polling
	stop chan struct{}
	// mutex guards access to files map
	mutex sync.Mutex
	// done is closed when polling has stopped
	done chan struct{}

	closeOnce sync.Once
}

type fileInfo struct {
	ModTime time.Time
	Size    int64
}

// NewPollingWatcher returns a new polling watcher with the default interval
func NewPollingWatcher() FileWatcher {
	return NewPollingWatcherWithInterval(DefaultPollInterval)
}

// NewPollingWatcherWithInterval returns a new polling watcher with the specified interval
func NewPollingWatcherWithInterval(interval time.Duration) FileWatcher {
	watcher := &PollingWatcher{
		interval: interval,
		files:    make(map[string]*fileInfo),
		events:   make(chan fsnotify.Event),
		errors:   make(chan error),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	go watcher.poll()
	return watcher
}

// Add starts watching the named file. The file must exist.
func (w *PollingWatcher) Add(name string) error {
	f, err := os.Stat(name)
	if err != nil {
		return err
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.files[cleanPath(name)] = &fileInfo{ModTime: f.ModTime(), Size: f.Size()}
	return nil
}

// Remove stops watching the named file
func (w *PollingWatcher) Remove(name string) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	name = cleanPath(name)
	if _, exists := w.files[name]; !exists {
		return ErrNotWatched
	}
	delete(w.files, name)
	return nil
}

// Events returns the event channel
func (w *PollingWatcher) Events() <-chan fsnotify.Event {
	return w.events
}

// Errors returns the error channel
func (w *PollingWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops the polling watcher
func (w *PollingWatcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.stop)
		<-w.done
		close(w.events)
		close(w.errors)
	})
	return nil
}

// poll checks for changes to the watched files at the specified interval
func (w *PollingWatcher) poll() {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, event := range w.checkFiles() {
				select {
				case w.events <- event:
				case <-w.stop:
					return
				}
			}
		case <-w.stop:
			return
		}
	}
}

// checkFiles compares every watched file with its last observed state and
// returns the resulting events. Errors are sent without holding the lock.
func (w *PollingWatcher) checkFiles() []fsnotify.Event {
	var events []fsnotify.Event
	var errs []error

	w.mutex.Lock()
	for name, old := range w.files {
		stat, err := os.Stat(name)
		if err != nil {
			if !os.IsNotExist(err) {
				errs = append(errs, err)
				continue
			}
			if old != nil {
				events = append(events, fsnotify.Event{Name: name, Op: fsnotify.Remove})
				w.files[name] = nil
			}
			continue
		}

		current := &fileInfo{ModTime: stat.ModTime(), Size: stat.Size()}
		switch {
		case old == nil:
			// the file came back after being removed
			events = append(events, fsnotify.Event{Name: name, Op: fsnotify.Create})
			w.files[name] = current
		case current.ModTime != old.ModTime || current.Size != old.Size:
			events = append(events, fsnotify.Event{Name: name, Op: fsnotify.Write})
			w.files[name] = current
		}
	}
	w.mutex.Unlock()

	for _, err := range errs {
		select {
		case w.errors <- err:
		case <-w.stop:
		}
	}
	return events
}
