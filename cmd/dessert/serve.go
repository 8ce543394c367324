package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dessert-clicker/internal/config"
	"github.com/vovakirdan/dessert-clicker/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bakery SSH server",
	Long: `Start an SSH server that gives every connection its own bakery.

Runs are stored per-server (all players share the same history).
Share copies the summary to the player's terminal clipboard via OSC 52.

Settings come from flags, then DESSERT_* environment variables, then defaults:
  --ssh           DESSERT_SSH_ADDR      (:23235)
  --host-key      DESSERT_HOST_KEY      (~/.dessert/host_key)
  --db            DESSERT_DB            (~/.dessert/runs.db)
  --idle-timeout  DESSERT_IDLE_TIMEOUT  (30m)
  --metrics       DESSERT_METRICS_ADDR  (off)
  --log-level     DESSERT_LOG_LEVEL     (info)

Examples:
  dessert serve                           # Listen on :23235 with auto-generated key
  dessert serve --ssh :2222               # Listen on port 2222
  dessert serve --metrics :9090           # Expose Prometheus metrics
  dessert serve --host-key ./my_host_key  # Use specific host key

Players can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Prometheus metrics address (host:port)")
}

func runServe(cmd *cobra.Command, _ []string) {
	env, err := config.ParseServerEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := serverConfig(env, cmd)
	cfg.Game = loadConfig()

	level := env.LogLevel
	if cmd.Flags().Changed("log-level") {
		level = flagLogLevel
	}
	logger, closeLog, err := newLogger(os.Stderr, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	cfg.Logger = logger

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting dessert SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// serverConfig overlays flags the user set on top of the environment.
func serverConfig(env config.ServerEnv, cmd *cobra.Command) tui.SSHServerConfig {
	cfg := tui.SSHServerConfig{
		Address:     env.Address,
		HostKeyPath: env.HostKeyPath,
		DBPath:      env.DBPath,
		IdleTimeout: env.IdleTimeout,
		MetricsAddr: env.MetricsAddr,
	}

	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.HostKeyPath = flagHostKey
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout = flagIdleTimeout
	}
	if flags.Changed("metrics") {
		cfg.MetricsAddr = flagMetricsAddr
	}
	return cfg
}

func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
