package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mertcano/drinktrack/internal/logger"
	"github.com/mertcano/drinktrack/internal/settings"
	"github.com/mertcano/drinktrack/internal/store"
	"github.com/mertcano/drinktrack/internal/tracker"
	"github.com/mertcano/drinktrack/internal/tui"
)

func main() {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Logging goes to a rotating file next to the database; stderr stays
	// clean for the TUI.
	if err := logger.Init(logger.Config{ConfigDir: filepath.Dir(dbPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	svc := settings.NewService(s)
	engine := tracker.NewEngine(s, svc)
	defer engine.Flush()

	app := tui.NewApp(engine, svc)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
