package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"app/internal/apiclient"
	"app/internal/player"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := log.New(os.Stderr)

	app := &cli.Command{
		Name:    "slidecast",
		Usage:   "Play AI-generated slide decks in the terminal",
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "Slidecast API base URL",
				Value:   "http://localhost:8080",
				Sources: cli.EnvVars("SLIDECAST_SERVER"),
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "Identity provider bearer token",
				Sources: cli.EnvVars("SLIDECAST_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "prompt",
				Aliases: []string{"p"},
				Usage:   "Topic to generate and play immediately",
			},
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Deck type: quick (5 slides) or long (10 slides)",
				Value:   "quick",
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	token := cmd.String("token")
	if token == "" {
		return fmt.Errorf("no token provided: set --token or SLIDECAST_TOKEN")
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	logPath := filepath.Join(os.TempDir(), "slidecast-player.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	logger := log.New(logFile)

	client := apiclient.New(cmd.String("server"), token, nil)

	// Make sure the profile row exists before entering the UI; a dead
	// server or bad token fails fast here instead of inside the TUI.
	user, err := client.GetOrCreateUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	logger.Info("signed in", "email", user.Email)

	model := player.NewModel(ctx, client, player.Options{
		Prompt: cmd.String("prompt"),
		Type:   cmd.String("type"),
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running player: %w", err)
	}
	return nil
}
