package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dentalink/dentalink/internal/api"
	"github.com/dentalink/dentalink/internal/config"
	"github.com/dentalink/dentalink/internal/debuglog"
	"github.com/dentalink/dentalink/internal/opener"
	"github.com/dentalink/dentalink/internal/storage"
	"github.com/dentalink/dentalink/internal/tui"
	"github.com/dentalink/dentalink/internal/validation"
)

// Version is the version of the application, set at build time
var Version = "dev"

type rootOptions struct {
	configPath string
	apiURL     string
	logLevel   string
	quiet      bool
	resume     bool
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		tui.ShowBanner(os.Stdout, Version)
		fmt.Printf("%s %s\n", tui.AppName, Version)
		fmt.Println("github.com/dentalink/dentalink")
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configGenCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the default configuration to ~/.config/dentalink/config.toml",
	Run: func(cmd *cobra.Command, args []string) {
		configFile := filepath.Join(config.DefaultDir(), "config.toml")
		if err := config.GenerateDefaultConfig(configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Generated default configuration at: %s\n", configFile)
	},
}

func init() {
	configCmd.AddCommand(configGenCmd)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "dentalink [location]",
		Short: "Terminal reader for Arabic dental articles and research",
		Long: "dentalink browses the articles and research of a dental content API.\n" +
			"location is a path such as /articles?tag=implants or /research/42.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			location := ""
			if len(args) == 1 {
				location = args[0]
			}
			return runTUI(opts, location)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flags.StringVar(&opts.apiURL, "api-url", "", "Content API base URL (overrides config)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error, off")
	root.Flags().BoolVar(&opts.quiet, "quiet", false, "Skip startup banner")
	root.Flags().BoolVar(&opts.resume, "resume", false, "Reopen the last visited location")

	root.AddCommand(versionCmd, configCmd, newListCmd(opts), newBookmarksCmd(opts))
	return root
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	return cfg, nil
}

func setupLogging(cfg *config.Config) error {
	level := debuglog.ParseLogLevel(cfg.Log.Level)
	if level == debuglog.LevelOff {
		return nil
	}
	path, err := validation.PrepareDataPath(cfg.Log.Path)
	if err != nil {
		return fmt.Errorf("log path: %w", err)
	}
	return debuglog.Setup(level, path)
}

func openStore(cfg *config.Config) (*storage.Store, error) {
	path, err := validation.PrepareDataPath(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}
	return storage.NewStore(path, cfg.Database.Timeout)
}

func runTUI(opts *rootOptions, location string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}
	defer debuglog.Close()

	tui.ApplyColors(cfg.UI.Colors)
	if !opts.quiet {
		tui.ShowBanner(os.Stdout, Version)
	}

	// Bookmarks are optional; a locked or unwritable database only disables them.
	var bookmarks tui.BookmarkStore
	store, err := openStore(cfg)
	if err != nil {
		debuglog.Warnf("bookmarks disabled: %v", err)
		fmt.Fprintf(os.Stderr, "bookmarks disabled: %v\n", err)
	} else {
		defer store.Close()
		bookmarks = store
		if location == "" && opts.resume {
			last, lastErr := store.LastLocation()
			if lastErr != nil && !errors.Is(lastErr, storage.ErrNotFound) {
				debuglog.Warnf("reading last location: %v", lastErr)
			}
			location = last
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := api.NewClient(cfg.API)
	debuglog.Infof("starting at %q against %s", location, client.BaseURL())

	app := tui.NewApp(ctx, client, bookmarks, opener.NewLauncher(cfg), cfg)
	app.Start(location)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
