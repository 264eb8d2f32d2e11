package commands

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"flowtask/cmd/flowtask/output"
	"flowtask/internal/api"
	"flowtask/internal/di"
	"flowtask/internal/infrastructure/config"
	"flowtask/internal/session"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	// Global flags
	serverURL    string
	outputFormat string
	configPath   string
	quiet        bool

	// Shared instances
	cfg       *config.Config
	container *di.Container
	printer   *output.Printer
	formatter *output.Formatter
)

var log = logrus.StandardLogger()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "flowtask",
	Short: "Terminal client for the FlowTask task manager",
	Long: `flowtask is a terminal client for the FlowTask backend: manage tasks,
notifications, and your session from the command line or an interactive TUI.

Features:
  - Task management with priorities, tags, search, and sorting
  - Cookie-based sign in, registration, and GitHub OAuth completion
  - Notification inbox with unread tracking
  - Light/dark/system theme with persisted preference
  - Interactive TUI and comprehensive CLI

Examples:
  # Launch interactive TUI
  flowtask
  flowtask tui

  # Sign in
  flowtask auth login --email me@example.com

  # Create a new task
  flowtask task create --title "Fix login bug" --priority high

  # List active high-priority tasks
  flowtask task list --completed=false --priority high

  # Flip a task's completed flag
  flowtask task toggle 42`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

		var err error
		if configPath != "" {
			loader := config.NewLoaderAt(configPath)
			cfg, err = loader.Load()
		} else {
			var loader *config.Loader
			loader, err = config.NewLoader()
			if err == nil {
				cfg, err = loader.Load()
			}
		}
		if err != nil {
			return err
		}

		if serverURL != "" {
			cfg.Server.BaseURL = serverURL
		}

		container, err = buildContainer()
		if err != nil {
			return err
		}

		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}
		formatter = output.NewFormatter(format, os.Stdout)
		printer = output.DefaultPrinter()

		return nil
	},
}

// buildContainer wires dependencies with a CLI navigator: auth transitions
// print their destination instead of switching screens.
func buildContainer() (*di.Container, error) {
	nav := session.NavigatorFunc(func(route string) {
		if !quiet {
			output.DefaultPrinter().Subtle("→ %s", route)
		}
	})

	if configPath == "" && serverURL == "" {
		return di.InitializeContainer(nav)
	}

	// Flag overrides bypass the default loader wiring.
	loader := config.NewLoaderAt(configPath)
	var err error
	if configPath == "" {
		loader, err = config.NewLoader()
		if err != nil {
			return nil, err
		}
	}
	changes := api.NewChangeRegistry()
	client := api.New(cfg.Server.BaseURL, cfg.Timeout(), changes)
	return &di.Container{
		Config:  cfg,
		Loader:  loader,
		Changes: changes,
		API:     client,
		Session: di.ProvideSessionManager(client, nav),
		Theme:   di.ProvideThemeManager(loader),
		Tasks:   di.ProvideViewModel(client),
	}, nil
}

// getContext returns the context for command execution.
func getContext() context.Context {
	return context.Background()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printer := output.DefaultPrinter()
		printer.Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format (text, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress informational output")
}
