package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mfergus/tiller/internal/assets"
	"github.com/mfergus/tiller/internal/catalog"
	"github.com/mfergus/tiller/internal/config"
	"github.com/mfergus/tiller/internal/i18n"
	"github.com/mfergus/tiller/internal/log"
	"github.com/mfergus/tiller/internal/notify"
	"github.com/mfergus/tiller/internal/session"
	"github.com/mfergus/tiller/internal/store"
	"github.com/mfergus/tiller/internal/submit"
	"github.com/mfergus/tiller/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("tiller %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting tiller", "version", Version)

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg)
	}

	tr, err := i18n.LoadBundle(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load labels: %w", err)
	}

	client := catalog.NewClient(cfg.API.BaseURL, cfg.API.Token, cfg.API.Timeout, logger)

	snapshots, err := store.NewSnapshotStore(config.DefaultCachePath(), cfg.API.BaseURL)
	if err != nil {
		logger.Warn("snapshot store unavailable, running without cache", "error", err)
		snapshots, _ = store.NewSnapshotStore("", "")
	}
	defer snapshots.Close()

	previews, err := assets.NewFilePreviewStore(cfg.Uploads.PreviewDir)
	if err != nil {
		return fmt.Errorf("failed to create preview store: %w", err)
	}
	defer previews.Close()

	hub := notify.NewHub(logger)
	sess := session.New(logger)
	queue := assets.NewQueue(previews, hub, tr, logger, nil)
	submitCtrl := submit.NewController(client, hub, tr, logger)

	model := tui.NewModel(client, snapshots, sess, queue, submitCtrl, hub, tr, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow prompts for the record service URL and API token on
// first start.
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to Tiller!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	var baseURL string
	for {
		fmt.Print("Enter the record service URL (e.g., http://192.168.1.100:9000): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		baseURL = strings.TrimSpace(input)
		if baseURL != "" {
			break
		}
		fmt.Println("Service URL cannot be empty. Please try again.")
	}

	fmt.Print("Enter your API token: ")
	tokenBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}
	token := strings.TrimSpace(string(tokenBytes))
	if token == "" {
		return fmt.Errorf("API token cannot be empty")
	}

	cfg.API.BaseURL = baseURL
	cfg.API.Token = token

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run tiller again to start the application.")

	return nil
}
