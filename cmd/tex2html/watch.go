package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"

	tex2html "github.com/alnah/go-tex2html"
	"github.com/alnah/go-tex2html/internal/config"
)

// runWatch recompiles on source changes, debounced through the scheduler so
// a burst of edits yields one pass and at most one pass is ever in flight.
func runWatch(cfg config.Config, flags *cliFlags) int {
	if cfg.Output.Path == "" {
		fmt.Fprintln(os.Stderr, "--watch requires --out (stdout would interleave passes)")
		return exitUsage
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIO
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(cfg.Input.Dir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIO
	}

	ctx := context.Background()
	scheduler := tex2html.NewScheduler(cfg.QuietInterval(), func() {
		result, code := compileOnce(ctx, cfg, flags)
		if code != exitOK {
			return
		}
		_ = writeOutputs(ctx, cfg, flags, result)
	})
	defer scheduler.Close()

	// Initial pass before any edit arrives.
	scheduler.Notify()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if flags.verbose {
		fmt.Fprintf(os.Stderr, "watching %s\n", cfg.Input.Dir)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return exitOK
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				scheduler.Notify()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return exitOK
			}
			fmt.Fprintln(os.Stderr, err)
		case <-sigCh:
			return exitOK
		}
	}
}
