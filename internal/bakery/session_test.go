package bakery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vovakirdan/dessert-clicker/internal/clicker"
	"github.com/vovakirdan/dessert-clicker/internal/dessert"
	"github.com/vovakirdan/dessert-clicker/internal/metrics"
	"github.com/vovakirdan/dessert-clicker/internal/share"
	"github.com/vovakirdan/dessert-clicker/internal/storage"
)

type fakeStore struct {
	runs []storage.Run
	err  error
}

func (f *fakeStore) SaveRun(run storage.Run) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.runs = append(f.runs, run)
	return "id", nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func newTestSession(store RunSaver, sharer share.Sharer, rec *metrics.Recorder) (*Session, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)}
	s := NewSession(Options{
		Controller: clicker.New(dessert.Default(), nil),
		Store:      store,
		Sharer:     sharer,
		Metrics:    rec,
		Player:     "alice",
		Now:        clock.Now,
	})
	return s, clock
}

func TestStartOverSavesRun(t *testing.T) {
	store := &fakeStore{}
	s, clock := newTestSession(store, nil, nil)

	for i := 0; i < 6; i++ {
		s.Sell()
	}
	clock.t = clock.t.Add(42 * time.Second)
	s.StartOver()

	if len(store.runs) != 1 {
		t.Fatalf("Expected 1 saved run, got %d", len(store.runs))
	}
	run := store.runs[0]
	if run.UnitsSold != 6 || run.Revenue != 35 || run.TopTier != "Donut" ||
		run.EndReason != storage.EndReset || run.Duration != 42 || run.Player != "alice" {
		t.Errorf("saved run = %+v", run)
	}

	if st := s.Controller().State(); st.UnitsSold != 0 || st.Revenue != 0 {
		t.Errorf("state after StartOver = %+v", st)
	}
}

func TestStartOverWithoutSalesSavesNothing(t *testing.T) {
	store := &fakeStore{}
	s, _ := newTestSession(store, nil, nil)

	s.StartOver()
	s.End(storage.EndQuit)

	if len(store.runs) != 0 {
		t.Errorf("empty runs should not be saved, got %v", store.runs)
	}
}

func TestEndIsIdempotent(t *testing.T) {
	store := &fakeStore{}
	rec := metrics.New()
	s, _ := newTestSession(store, nil, rec)

	s.Sell()
	s.End(storage.EndQuit)
	s.End(storage.EndDisconnect)

	if !s.Ended() {
		t.Error("Ended() should be true")
	}
	if len(store.runs) != 1 || store.runs[0].EndReason != storage.EndQuit {
		t.Errorf("saved runs = %+v, expected one quit run", store.runs)
	}
	if got := testutil.ToFloat64(rec.ActiveSessions); got != 0 {
		t.Errorf("ActiveSessions = %v, expected 0", got)
	}
}

func TestSaveErrorDoesNotStopGame(t *testing.T) {
	store := &fakeStore{err: errors.New("disk full")}
	s, _ := newTestSession(store, nil, nil)

	s.Sell()
	s.StartOver()
	s.Sell()

	if got := s.Controller().State().UnitsSold; got != 1 {
		t.Errorf("UnitsSold = %d, expected 1", got)
	}
}

func TestShare(t *testing.T) {
	var shared string
	ok := share.Func(func(_ context.Context, text string) error {
		shared = text
		return nil
	})

	rec := metrics.New()
	s, _ := newTestSession(nil, ok, rec)
	for i := 0; i < 10; i++ {
		s.Sell()
	}

	if err := s.Share(context.Background()); err != nil {
		t.Fatalf("Share() failed: %v", err)
	}
	if shared != s.Controller().FormatShareSummary() {
		t.Errorf("shared %q, expected controller summary %q", shared, s.Controller().FormatShareSummary())
	}
	if got := testutil.ToFloat64(rec.Shares.WithLabelValues(metrics.ShareOK)); got != 1 {
		t.Errorf("ok shares = %v, expected 1", got)
	}
}

func TestShareUnavailable(t *testing.T) {
	rec := metrics.New()
	s, _ := newTestSession(nil, nil, rec) // empty chain

	err := s.Share(context.Background())
	if !errors.Is(err, share.ErrUnavailable) {
		t.Errorf("Share() error = %v, expected ErrUnavailable", err)
	}
	if got := testutil.ToFloat64(rec.Shares.WithLabelValues(metrics.ShareUnavailable)); got != 1 {
		t.Errorf("unavailable shares = %v, expected 1", got)
	}

	// The game is unaffected.
	if st := s.Controller().State(); st.UnitsSold != 0 {
		t.Errorf("state changed by share: %+v", st)
	}
}
