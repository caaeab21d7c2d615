package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bond-kaneko/go-keycalc/session"
	"github.com/mattn/go-isatty"
)

func main() {
	// Configure command line arguments
	watchFlag := flag.String("w", "", "Key script to replay whenever it changes")
	evalFlag := flag.String("e", "", "Key script to evaluate, e.g. \"12+3=\"")
	delayFlag := flag.Duration("d", session.DefaultDebounceDelay, "Debounce delay before replaying a changed script")
	flashFlag := flag.Duration("flash", session.DefaultFlashDuration, "How long a chained operation stays highlighted")
	liveFlag := flag.Bool("live", false, "Redraw the display in place even when not attached to a terminal")
	verboseFlag := flag.Bool("v", false, "Log every key press to stderr")
	flag.Parse()

	level := slog.LevelWarn
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Scripts passed with -e always print a transcript
	live := *liveFlag || isTerminal(os.Stdout) && (*watchFlag != "" || isTerminal(os.Stdin))
	if *evalFlag != "" {
		live = false
	}

	calc := session.New(os.Stdout,
		session.WithLive(live),
		session.WithLogger(logger),
		session.WithDebounceDelay(*delayFlag),
		session.WithFlashDuration(*flashFlag),
	)

	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch {
	case *evalFlag != "":
		err = calc.Replay(*evalFlag)
	case *watchFlag != "":
		fmt.Println("Watching for script changes. Press Ctrl+C to exit.")
		err = calc.Watch(ctx, *watchFlag)
	default:
		if live {
			fmt.Println("Type keys and press Enter (e.g. 12+3=, sqrt, neg). Press Ctrl+C to exit.")
		}
		err = calc.Run(ctx, os.Stdin)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if ctx.Err() != nil {
		fmt.Println("\nShutting down...")
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
