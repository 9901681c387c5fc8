package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"koda/internal/config"
	"koda/internal/logging"
	"koda/internal/transport"
	"koda/internal/ui"
)

var (
	version    = "0.1.0"
	cfgFile    string
	backendURL string
	language   string
	logLevel   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "koda [file]",
		Short: "Terminal AI code editor",
		Long: `Koda is a terminal code editor backed by an AI proxy. It offers
quick completion suggestions while you type, plus on-demand actions to
complete, document, explain, or clean up the code in the buffer.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runApp,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/koda/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "backend base URL (default is http://127.0.0.1:5002)")
	rootCmd.PersistentFlags().StringVar(&language, "language", "", "language ID for scratch buffers (default is python)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	// Version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("koda version %s\n", version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var cfg *config.Config
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Version = version

	// Flag overrides
	if backendURL != "" {
		cfg.Backend.BaseURL = backendURL
	}
	if language != "" {
		cfg.Editor.Language = language
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	// The TUI owns the terminal; logs go to a file or nowhere.
	if cfg.Logging.File {
		if dir, err := config.Dir(); err == nil {
			if err := logging.EnableFileLogging(dir, logging.ParseLevel(cfg.Logging.Level)); err != nil {
				fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
			} else {
				defer logging.Close()
			}
		}
	}

	// Open the file argument, if any. A missing file starts empty and is
	// created on first save.
	var filePath, text string
	if len(args) == 1 {
		filePath = args[0]
		data, err := os.ReadFile(filePath)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to open %s: %w", filePath, err)
		}
		text = string(data)
	}

	backend := transport.New(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	model, err := ui.New(cfg, backend, filePath, text)
	if err != nil {
		return fmt.Errorf("failed to create UI: %w", err)
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseMode != "disabled" {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(model, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("koda exited with error: %w", err)
	}
	return nil
}
