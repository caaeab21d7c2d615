package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/bond-kaneko/go-keycalc/gui"
)

func main() {
	verboseFlag := flag.Bool("v", false, "Log every key press to stderr")
	flag.Parse()

	level := slog.LevelWarn
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := gui.Run(logger); err != nil {
		fmt.Printf("Error running window: %v\n", err)
		os.Exit(1)
	}
}
