// dessert is a terminal dessert clicker: sell desserts, unlock better ones,
// and share how your bakery is doing.
//
// Usage:
//
//	dessert                  - Open the bakery (same as play)
//	dessert play             - Open the bakery
//	dessert serve            - Start SSH server for remote play
//	dessert tiers            - List the dessert tiers
//	dessert scores           - Show the best recorded runs
//	dessert share            - Share a summary without opening the bakery
//
// Global flags:
//
//	--config <path>    - Game config YAML (tiers, share settings)
//	--db <path>        - Set database path (default: ~/.dessert/runs.db)
//	--log-level <lvl>  - debug, info, warn, error
//	--log-file <path>  - Write logs here while the TUI is running
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dessert-clicker/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dessert",
	Short: "Dessert Clicker - Run a bakery in your terminal",
	Long: `Dessert Clicker is a terminal idle game. Every click sells a dessert;
sell enough and a pricier dessert takes its place.

Available commands:
  play     - Open the bakery (default)
  serve    - Start SSH server for remote play
  tiers    - Show the dessert tiers
  scores   - View the best recorded runs
  share    - Share a summary from the command line

Examples:
  dessert
  dessert play --config ./my-desserts.yaml
  dessert serve --ssh :2222
  dessert scores
  dessert share --sold 12 --revenue 120`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dessert/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (play logs nowhere otherwise)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tiersCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(shareCmd)
}

// loadConfig loads the game config or exits.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger builds the process logger. fallback is used when --log-file is
// not set; the returned closer releases the log file, if any.
func newLogger(fallback io.Writer, level string) (*log.Logger, func(), error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	out, closer := fallback, func() {}
	if flagLogFile != "" {
		path := expandHome(flagLogFile)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closer = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "dessert",
		Level:           lvl,
	})
	return logger, closer, nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
