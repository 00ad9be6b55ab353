// Command bitsense is a timed binary/hex conversion trainer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"bitsense/internal/config"
	"bitsense/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string

	// Resolved in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bitsense",
	Short: "bitsense - timed binary/hex conversion practice",
	Long: `bitsense drills conversions between binary and hexadecimal.

Each round shows a random value in one base and a countdown. Type the
value in the other base before the clock runs out. Finished rounds are
kept in a local history so you can watch your speed improve.

Run without arguments to start playing.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadEnvironment(); err != nil {
			return err
		}

		// The TUI owns the terminal; diagnostics go to the log files only.
		if isInteractive(cmd) {
			logger = zap.NewNop()
			return nil
		}

		var err error
		logger, err = logging.NewConsole(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runPlay,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <workspace>/.bitsense/config.yaml)")

	// The bare root command plays, so it takes the play flags too.
	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(guideCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := execute(ctx, os.Args[1:])
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// execute runs the command tree. Cobra skips PersistentPostRun when RunE
// fails, so the log files are closed here.
func execute(ctx context.Context, args []string) (err error) {
	defer func() {
		if err != nil {
			logging.Boot("command failed: %v", err)
		}
		logging.CloseAll()
	}()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// loadEnvironment resolves the workspace, .env, config file and file logging.
func loadEnvironment() error {
	ws, err := resolveWorkspace()
	if err != nil {
		return err
	}
	workspace = ws

	if err := config.LoadDotEnv(ws); err != nil {
		return err
	}

	path := configPath
	if path == "" {
		path = config.DefaultPath(ws)
	}
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}

	if err := logging.Initialize(ws, cfg.Logging.ToLogging()); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	cfg.LogSummary(path)
	return nil
}

func resolveWorkspace() (string, error) {
	if workspace != "" {
		return filepath.Abs(workspace)
	}
	ws, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspace: %w", err)
	}
	return ws, nil
}

func isInteractive(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "bitsense", "play":
		return true
	}
	return false
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
