package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"movielist-cli/config"
	"movielist-cli/logging"
	"movielist-cli/service"
	"movielist-cli/store"
	"movielist-cli/tui"
)

const appName = "movielist"

var (
	version = "dev"
	commit  = "none"
)

// appRuntime holds what every command builds from the loaded config.
type appRuntime struct {
	cfg    config.Config
	logger *slog.Logger
	closer io.Closer
	client *service.Client
}

var (
	configPath string
	apiURL     string
	debug      bool
	rt         *appRuntime
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Browse a movie catalog and manage your watch list",
	Long:  `Browse movies and TV shows, open their details and keep a To Watch / Watched list, all from the terminal.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		r, err := setup()
		if err != nil {
			return err
		}
		rt = r
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cache := openStore(rt.cfg)
		model := tui.New(tui.Options{
			Client:   rt.client,
			Store:    cache,
			Logger:   rt.logger,
			Policy:   rt.cfg.FilterPolicy,
			Language: rt.cfg.Language(),
		})
		_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s", appName, version)
		if commit != "none" && commit != "" {
			fmt.Fprintf(out, " (%s)", commit)
		}
		fmt.Fprintln(out)
	},
}

func setup() (*appRuntime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}
	if debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(logging.Options{File: cfg.LogFile, Debug: cfg.Debug})
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(logger)

	client := service.NewClient(
		&http.Client{Timeout: cfg.Timeout},
		service.WithBaseURL(cfg.APIBaseURL),
		service.WithUserAgent(appName+"/"+version),
		service.WithRetry(cfg.MaxAttempts, 0, 0),
		service.WithRateLimit(cfg.RateLimit, 4),
		service.WithLogger(logger),
	)
	logger.Debug("cmd.setup", "api", cfg.APIBaseURL, "policy", cfg.FilterPolicy, "locale", cfg.Locale)
	return &appRuntime{cfg: cfg, logger: logger, closer: closer, client: client}, nil
}

// openStore returns nil when no cache directory is available; callers run uncached.
func openStore(cfg config.Config) *store.Store {
	s, err := store.Default(cfg.CacheTTL)
	if err != nil {
		slog.Warn("cmd.store_unavailable", "err", err)
		return nil
	}
	return s
}

// SetVersion is called from main with the values stamped at build time.
func SetVersion(v, c string) {
	if v != "" {
		version = v
	}
	if c != "" {
		commit = c
	}
}

func init() {
	rootCmd.AddCommand(versionCmd, catalogCmd, detailCmd, myListCmd, addCmd, mockServerCmd)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the config file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "override the API base URL")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	registerCatalogFlags()
	registerWatchlistFlags()
	registerMockServerFlags()
}

// run executes the command line and releases the runtime whether or not the command failed.
func run(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	closeRuntime()
	return err
}

func closeRuntime() {
	if rt == nil {
		return
	}
	if rt.closer != nil {
		if err := rt.closer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close log file: %v\n", err)
		}
	}
	rt = nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		os.Exit(1)
	}
}
