package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/user"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dessert-clicker/internal/bakery"
	"github.com/vovakirdan/dessert-clicker/internal/config"
	"github.com/vovakirdan/dessert-clicker/internal/metrics"
	"github.com/vovakirdan/dessert-clicker/internal/platform/tui"
	"github.com/vovakirdan/dessert-clicker/internal/share"
	"github.com/vovakirdan/dessert-clicker/internal/storage"
)

var flagPlayMetrics string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the bakery",
	Long: `Open the bakery in this terminal.

Controls:
  Space/Enter/Click  - Sell a dessert
  S                  - Share your totals
  R                  - Start over (the run is recorded)
  H/Tab              - Best recorded runs
  ?                  - More keys
  Q/Ctrl+C           - Quit (the run is recorded)

Examples:
  dessert play
  dessert play --config ./my-desserts.yaml
  dessert play --log-file ~/.dessert/dessert.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayMetrics, "metrics", "", "Serve Prometheus metrics on this address while playing")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	logger, closeLog, err := newLogger(io.Discard, flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctrl, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The renderer and the OSC 52 clipboard share one serialized stdout.
	out := share.NewSyncFile(os.Stdout)
	sharer, err := localSharer(cfg, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the bakery still works
		store = nil
	}

	opts := bakery.Options{
		Controller: ctrl,
		Sharer:     sharer,
		Logger:     logger,
		Player:     localPlayer(),
	}
	uiOpts := tui.Options{
		Notices: tui.NoticesFromConfig(cfg.Share),
		Width:   80,
		Height:  24,
		Output:  out,
	}
	if store != nil {
		opts.Store = store
		uiOpts.History = store
	}
	if flagPlayMetrics != "" {
		opts.Metrics = metrics.New()
		stop := serveMetrics(flagPlayMetrics, opts.Metrics, logger)
		defer stop()
	}

	// Get terminal size for the first frame
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		uiOpts.Width = w
		uiOpts.Height = h
	}

	uiOpts.Session = bakery.NewSession(opts)
	logger.Info("bakery opened", "player", opts.Player, "tiers", ctrl.Table().Len())

	// Run the bakery
	runErr := tui.Run(uiOpts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running bakery: %v\n", runErr)
		os.Exit(1)
	}
}

// localSharer builds the configured share chain for this terminal.
func localSharer(cfg config.Config, out io.Writer) (*share.Chain, error) {
	return share.New(share.Options{
		Targets: cfg.Share.Targets,
		Command: cfg.Share.Command,
		File:    cfg.Share.File,
		Out:     out,
		Tmux:    os.Getenv("TMUX") != "",
	})
}

func localPlayer() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}

// serveMetrics exposes the recorder over HTTP until stop is called.
func serveMetrics(addr string, rec *metrics.Recorder, logger *log.Logger) (stop func()) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", rec.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "error", err)
		}
	}()
	return func() { srv.Close() }
}
