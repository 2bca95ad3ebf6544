package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/alnah/go-tex2html/internal/api"
	"github.com/alnah/go-tex2html/internal/config"
)

// runServe starts the HTTP compile API.
func runServe(cfg config.Config, flags *cliFlags) int {
	if cfg.Serve.Addr == "" {
		fmt.Fprintln(os.Stderr, config.ErrInvalidAddr)
		return exitUsage
	}

	level := slog.LevelInfo
	if flags.quiet {
		level = slog.LevelError
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	server := api.NewServer(newCompiler(cfg), log)

	httpServer := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("listening", "addr", cfg.Serve.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server stopped", "error", err)
		return exitIO
	}
	return exitOK
}
