package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"parley/internal/config"
	"parley/internal/logging"
	"parley/internal/session"
	"parley/internal/tui"
	"parley/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store := session.NewStore(cfg.DataDir)

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("parley " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "logout":
			return runLogout(store)
		case "whoami":
			return runWhoami(ctx, cfg, store)
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
			printHelp()
			os.Exit(1)
		}
	}

	log, closer, err := logging.Open(cfg.DataDir, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close() //nolint:errcheck

	c := client.New(cfg.APIURL, store).WithLogger(log)
	app := tui.NewApp(c, store, log, version)

	log.Info().Str("version", version).Str("api_url", cfg.APIURL).Msg("starting")

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogout(store *session.Store) error {
	if store.Token() == "" {
		fmt.Println("Already signed out.")
		return nil
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	fmt.Println("Signed out.")
	return nil
}

func runWhoami(ctx context.Context, cfg *config.Config, store *session.Store) error {
	if store.Token() == "" {
		fmt.Println("Not signed in.")
		return nil
	}
	c := client.New(cfg.APIURL, store)
	user, err := c.GetProfile(ctx)
	if err != nil {
		if client.IsUnauthorized(err) {
			fmt.Println("Session expired — sign in again.")
			return nil
		}
		return err
	}
	fmt.Printf("@%s\n", user.Login)
	return nil
}

func printHelp() {
	fmt.Print(`parley — group chat in your terminal

usage:
  parley            start the chat client
  parley whoami     show the signed-in account
  parley logout     remove the stored session token
  parley version    print the version
  parley help       show this help

environment:
  PARLEY_API_URL    chat server base URL (default http://localhost:8000)
  PARLEY_LOG_LEVEL  debug log level: trace, debug, info, warn, error
  PARLEY_DATA_DIR   token and log directory (default ~/.parley)
`)
}
