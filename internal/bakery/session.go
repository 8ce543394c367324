// Package bakery ties one player's controller to the services around it:
// run history, metrics and sharing. The terminal UI and the SSH server both
// drive the game through a Session.
package bakery

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dessert-clicker/internal/clicker"
	"github.com/vovakirdan/dessert-clicker/internal/metrics"
	"github.com/vovakirdan/dessert-clicker/internal/share"
	"github.com/vovakirdan/dessert-clicker/internal/storage"
)

// RunSaver persists finished runs. Implemented by *storage.Store.
type RunSaver interface {
	SaveRun(run storage.Run) (string, error)
}

var _ RunSaver = (*storage.Store)(nil)

// Options configures a Session. Every field except Controller is optional.
type Options struct {
	Controller *clicker.Controller
	Store      RunSaver
	Metrics    *metrics.Recorder
	Sharer     share.Sharer
	Logger     *log.Logger
	Player     string
	Now        func() time.Time
}

// Session is one player's bakery from open to close.
type Session struct {
	ctrl    *clicker.Controller
	store   RunSaver
	metrics *metrics.Recorder
	sharer  share.Sharer
	logger  *log.Logger
	player  string
	now     func() time.Time

	mu          sync.Mutex
	startedAt   time.Time
	ended       bool
	stopMetrics func()
}

// NewSession opens a session and starts metrics observation if configured.
func NewSession(opts Options) *Session {
	s := &Session{
		ctrl:    opts.Controller,
		store:   opts.Store,
		metrics: opts.Metrics,
		sharer:  opts.Sharer,
		logger:  opts.Logger,
		player:  opts.Player,
		now:     opts.Now,
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.sharer == nil {
		s.sharer = share.NewChain()
	}
	s.startedAt = s.now()
	if s.metrics != nil {
		s.stopMetrics = s.metrics.Observe(s.ctrl)
	}
	return s
}

// Controller returns the session's game controller.
func (s *Session) Controller() *clicker.Controller {
	return s.ctrl
}

// Player returns the player name recorded with runs.
func (s *Session) Player() string {
	return s.player
}

// Sell records one sale.
func (s *Session) Sell() {
	s.ctrl.RecordSale()
}

// StartOver records the current run and resets the game.
func (s *Session) StartOver() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saveLocked(storage.EndReset)
	s.ctrl.Reset()
	s.startedAt = s.now()
	s.logger.Debug("bakery reset", "player", s.player)
}

// End records the current run and stops observers. Further calls are no-ops.
func (s *Session) End(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return
	}
	s.ended = true
	s.saveLocked(reason)
	if s.stopMetrics != nil {
		s.stopMetrics()
	}
}

// Ended reports whether End has been called.
func (s *Session) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

// Share sends the current summary to the session's sharer. The controller is
// not told about the outcome; callers use the error to pick a notice.
func (s *Session) Share(ctx context.Context) error {
	text := s.ctrl.FormatShareSummary()
	err := s.sharer.ShareText(ctx, text)

	result := metrics.ShareOK
	switch {
	case err == nil:
		s.logger.Info("summary shared", "player", s.player)
	case errors.Is(err, share.ErrUnavailable):
		result = metrics.ShareUnavailable
		s.logger.Debug("no share target", "player", s.player, "error", err)
	default:
		result = metrics.ShareFailed
		s.logger.Warn("share failed", "player", s.player, "error", err)
	}
	if s.metrics != nil {
		s.metrics.ShareResult(result)
	}
	return err
}

// saveLocked writes the current run if anything was sold. Errors are logged;
// the game continues regardless.
func (s *Session) saveLocked(reason string) {
	state := s.ctrl.State()
	if state.UnitsSold == 0 || s.store == nil {
		return
	}

	run := storage.Run{
		Player:    s.player,
		UnitsSold: state.UnitsSold,
		Revenue:   state.Revenue,
		TopTier:   s.ctrl.Table().At(state.TierIndex).Name,
		EndReason: reason,
		Duration:  int(s.now().Sub(s.startedAt).Seconds()),
	}
	id, err := s.store.SaveRun(run)
	if err != nil {
		s.logger.Warn("could not save run", "player", s.player, "error", err)
		return
	}
	s.logger.Debug("run saved", "id", id, "player", s.player, "sold", run.UnitsSold, "revenue", run.Revenue)
}
