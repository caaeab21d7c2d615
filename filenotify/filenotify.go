// Package filenotify reports changes to individual files.
// It wraps fsnotify and adds a poll-based notifier for file systems where
// fsnotify cannot deliver events. Both satisfy FileWatcher, so callers can
// use either interchangeably.
package filenotify

import (
	"errors"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ErrNotWatched is returned when removing a file that was never added
var ErrNotWatched = errors.New("file is not being watched")

// FileWatcher is an interface for implementing file notification watchers
type FileWatcher interface {
	// Events returns the channel for watching events
	Events() <-chan fsnotify.Event
	// Errors returns the channel for watching errors
	Errors() <-chan error
	// Add starts watching the named file
	Add(name string) error
	// Remove stops watching the named file
	Remove(name string) error
	// Close stops watching and closes the channels
	Close() error
}

// New tries to use an fs-event watcher, and falls back to the poller if there is an error
func New() (FileWatcher, error) {
	watcher, err := NewEventWatcher()
	if err != nil {
		return NewPollingWatcher(), nil
	}
	return watcher, nil
}

// IsChange reports whether the event means the file content may differ
func IsChange(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

func cleanPath(name string) string {
	if abs, err := filepath.Abs(name); err == nil {
		return abs
	}
	return filepath.Clean(name)
}
