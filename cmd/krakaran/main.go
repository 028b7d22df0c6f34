// Krakaran is a recipe catalog and pantry client.
//
// Usage:
//
//	krakaran [-verbose] [-quiet]
//
// Configuration comes from the environment (or a local .env file):
// KRAKARAN_API_URL points at the recipe service.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/hammamikhairi/krakaran/internal/api"
	"github.com/hammamikhairi/krakaran/internal/config"
	"github.com/hammamikhairi/krakaran/internal/display"
	"github.com/hammamikhairi/krakaran/internal/logger"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".krakaran/krakaran.log", "file to write logs to (use \"stderr\" to log to console)")
	flag.Parse()

	// Configure logger. Logs go to a file by default: the terminal
	// belongs to the Bubble Tea program.
	level := logger.LevelNormal
	if *verbose {
		level = logger.LevelVerbose
	}
	if *quiet {
		level = logger.LevelOff
	}

	var logOut io.Writer = os.Stderr
	if *logFile != "stderr" && level != logger.LevelOff {
		if err := os.MkdirAll(filepath.Dir(*logFile), 0o755); err == nil {
			if f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				defer f.Close()
				logOut = f
			}
		}
	}
	log := logger.New(level, logOut)

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.APIBaseURL, log.Named("api"),
		api.WithHTTPTimeout(cfg.HTTPTimeout))

	app := display.NewApp(display.Deps{
		Recipes:     client,
		Categories:  client,
		Ingredients: client,
		Uploader:    client,
		Log:         log,
	})

	log.Info("krakaran starting (api=%s)", cfg.APIBaseURL)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
