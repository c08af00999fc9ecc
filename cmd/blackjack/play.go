package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/cardtable/blackjack/internal/game"
	"github.com/cardtable/blackjack/internal/tui"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#1D7044")).
	Padding(0, 1).
	Bold(true)

type PlayCmd struct {
	Bank    *int   `help:"Starting bankroll in chips (defaults to the rules' starting bank)"`
	Seed    int64  `default:"0" help:"Shoe seed (0 draws a fresh one each round)"`
	Rules   string `type:"path" help:"HCL rules file overriding the table defaults"`
	LogFile string `default:"blackjack.log" help:"Debug log destination"`
	Debug   bool   `help:"Verbose logging"`
}

func (c *PlayCmd) Run() error {
	rules, err := game.LoadRules(c.Rules)
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("failed to close log file", "error", err)
		}
	}()

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if c.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	bank := resolveBank(c.Bank, rules)
	logger.Info("session starting", "bank", bank, "seed", c.Seed)

	model := tui.NewModel(rules, bank, c.Seed, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running session: %w", err)
	}

	fmt.Println(titleStyle.Render(" ♠ ♥ Thanks for playing ♦ ♣ "))
	fmt.Printf("You left the table with $%d\n", model.Bank())
	return nil
}
