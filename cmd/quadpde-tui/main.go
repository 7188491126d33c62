// QuadPDE TUI: interactive client for the QuadratizePDE service.
//
// Usage:
//
//	quadpde-tui [flags]
//
// Flags:
//
//	--api   Base URL of the service (default: $QUADPDE_API_BASE_URL or http://localhost:8000)
//	--log   File to write logs to (default: $QUADPDE_LOG_FILE, logging disabled when empty)
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/Mr-Dark-debug/quadpde/internal/api"
	"github.com/Mr-Dark-debug/quadpde/internal/config"
	"github.com/Mr-Dark-debug/quadpde/internal/history"
	"github.com/Mr-Dark-debug/quadpde/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()

	flag.StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "Base URL of the quadratization service")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "File to write logs to")
	flag.Parse()

	// The alt screen owns stdout and stderr; logs go to a file or nowhere.
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "quadpde ")
		if err != nil {
			log.Fatalf("Failed to open log file %s: %v", cfg.LogFile, err)
		}
		defer f.Close()
		slog.SetLogLoggerLevel(slog.LevelDebug)
	} else {
		log.SetOutput(io.Discard)
	}

	client := api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(slog.Default()),
	)

	store, err := history.NewSessionStore()
	if err != nil {
		log.Fatalf("Failed to open session history: %v", err)
	}
	defer store.Close()

	slog.Info("starting", "api", client.BaseURL())

	model := tui.NewModel(client, store)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
