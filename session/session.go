// Package session drives a calculator engine from a terminal. It redraws
// the display after every input, either in place through a live writer or
// as one transcript line per input, and can replay key scripts, including
// re-running a script file whenever it changes.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/bond-kaneko/go-keycalc/calculator"
	"github.com/bond-kaneko/go-keycalc/filenotify"
	"github.com/bond-kaneko/go-keycalc/keypad"
	"github.com/gosuri/uilive"
)

const (
	// DefaultFlashDuration is how long a chained commit stays highlighted
	DefaultFlashDuration = 400 * time.Millisecond
	// DefaultDebounceDelay is the quiet period before a changed script is replayed
	DefaultDebounceDelay = 100 * time.Millisecond
)

// Session owns a calculator engine and its display
type Session struct {
	mu     sync.Mutex
	engine *calculator.Engine

	out    io.Writer
	live   *uilive.Writer
	logger *slog.Logger

	flashDuration time.Duration
	debounceDelay time.Duration
	newWatcher    func() (filenotify.FileWatcher, error)

	// chained is set by the engine while an input is being applied
	chained    bool
	flashing   bool
	flashTimer *time.Timer
}

// Option configures a Session
type Option func(*Session)

// WithLive redraws the display in place instead of writing a transcript
func WithLive(live bool) Option {
	return func(s *Session) {
		if !live {
			s.live = nil
			return
		}
		w := uilive.New()
		w.Out = s.out
		w.RefreshInterval = 50 * time.Millisecond
		s.live = w
	}
}

// WithLogger sets the logger for diagnostic output
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithFlashDuration sets how long a chained commit stays highlighted
func WithFlashDuration(d time.Duration) Option {
	return func(s *Session) {
		s.flashDuration = d
	}
}

// WithDebounceDelay sets the delay before a changed script is replayed
func WithDebounceDelay(d time.Duration) Option {
	return func(s *Session) {
		s.debounceDelay = d
	}
}

// WithWatcher sets the constructor used for watching script files
func WithWatcher(newWatcher func() (filenotify.FileWatcher, error)) Option {
	return func(s *Session) {
		s.newWatcher = newWatcher
	}
}

// New creates a session writing to out. It writes a transcript unless
// WithLive(true) is given.
func New(out io.Writer, opts ...Option) *Session {
	s := &Session{
		out:           out,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		flashDuration: DefaultFlashDuration,
		debounceDelay: DefaultDebounceDelay,
		newWatcher:    filenotify.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = calculator.New(calculator.OnFlash(func() {
		s.chained = true
	}))
	return s
}

// Frame returns what the display currently shows
func (s *Session) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame()
}

// State returns the engine state
func (s *Session) State() calculator.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State()
}

// Press applies one action and redraws the display
func (s *Session) Press(a keypad.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.press(a)
}

// PressKey applies the action mapped to a physical key.
// It reports false for keys that map to nothing.
func (s *Session) PressKey(key string) bool {
	a, ok := keypad.MapKey(key)
	if !ok {
		s.logger.Debug("unmapped key", "key", key)
		return false
	}
	s.Press(a)
	return true
}

// Replay clears the engine and presses every action of a key script.
// A script that fails to parse leaves the engine untouched.
func (s *Session) Replay(src string) error {
	actions, err := keypad.ParseScript(src)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.Clear()
	for _, a := range actions {
		s.press(a)
	}
	s.logger.Debug("replayed script", "actions", len(actions), "current", s.engine.State().Current)
	return nil
}

// Run reads key script lines from r and presses them as they arrive.
// Lines that fail to parse are reported on the display and skipped.
// It returns when r is exhausted or ctx is cancelled.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	s.start()
	defer s.stop()

	s.mu.Lock()
	s.draw("clear")
	s.mu.Unlock()

	lineNo := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				// the reader only leaves no error behind when ctx was cancelled
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("failed to read input: %w", err)
					}
				default:
				}
				return nil
			}
			lineNo++

			actions, err := keypad.ParseLine(line)
			if err != nil {
				s.report(fmt.Errorf("line %d: %w", lineNo, err))
				continue
			}
			s.mu.Lock()
			for _, a := range actions {
				s.press(a)
			}
			s.mu.Unlock()
		}
	}
}

// Watch replays the key script at path now and every time it changes,
// until ctx is cancelled
func (s *Session) Watch(ctx context.Context, path string) error {
	watcher, err := s.newWatcher()
	if err != nil {
		return fmt.Errorf("failed to initialize watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	s.start()
	defer s.stop()

	s.replayFile(path)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			s.logger.Debug("watch event", "name", event.Name, "op", event.Op.String())
			if !filenotify.IsChange(event) {
				continue
			}
			// Debounce so a burst of writes replays once
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(s.debounceDelay, func() {
				s.replayFile(path)
			})

		case err, ok := <-watcher.Errors():
			if !ok {
				return nil
			}
			s.report(fmt.Errorf("watch error: %w", err))
		}
	}
}

func (s *Session) replayFile(path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		s.report(fmt.Errorf("failed to read %s: %w", path, err))
		return
	}
	s.notice(fmt.Sprintf("%s changed. Replaying.", path))
	if err := s.Replay(string(src)); err != nil {
		s.report(fmt.Errorf("%s: %w", path, err))
	}
}

// press applies a under s.mu and redraws
func (s *Session) press(a keypad.Action) {
	s.chained = false
	keypad.Apply(s.engine, a)
	state := s.engine.State()
	s.logger.Debug("key", "action", a.String(), "current", state.Current, "pending", state.Pending, "operator", state.Operator.String())

	if s.chained {
		s.startFlash()
	}
	s.draw(a.String())
	// a transcript marks only the line that chained
	if s.live == nil {
		s.flashing = false
	}
}

func (s *Session) startFlash() {
	s.flashing = true
	if s.live == nil {
		return
	}
	if s.flashTimer != nil {
		s.flashTimer.Stop()
	}
	s.flashTimer = time.AfterFunc(s.flashDuration, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.flashing = false
		s.draw("")
	})
}

func (s *Session) frame() Frame {
	f := Render(s.engine.State())
	f.Flash = s.flashing
	return f
}

// draw writes the current frame; callers hold s.mu
func (s *Session) draw(label string) {
	f := s.frame()
	if s.live != nil {
		fmt.Fprint(s.live, f.Screen())
		s.live.Flush()
		return
	}
	fmt.Fprintln(s.out, f.Line(label))
}

func (s *Session) start() {
	if s.live != nil {
		s.live.Start()
	}
}

func (s *Session) stop() {
	s.mu.Lock()
	if s.flashTimer != nil {
		s.flashTimer.Stop()
	}
	s.mu.Unlock()
	if s.live != nil {
		s.live.Stop()
	}
}

// notice prints a message outside the display area
func (s *Session) notice(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live != nil {
		fmt.Fprintln(s.live.Bypass(), msg)
		return
	}
	fmt.Fprintln(s.out, "# "+msg)
}

func (s *Session) report(err error) {
	s.logger.Warn("input rejected", "error", err)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live != nil {
		fmt.Fprintf(s.live.Bypass(), "error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "error: %v\n", err)
}
