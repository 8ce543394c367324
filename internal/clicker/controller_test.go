package clicker

import (
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/vovakirdan/dessert-clicker/internal/dessert"
)

func newScenarioController(t *testing.T) *Controller {
	t.Helper()
	table, err := dessert.NewTable([]dessert.Tier{
		{Name: "Cupcake", ImageRef: "cupcake", Price: 5, Threshold: 0},
		{Name: "Donut", ImageRef: "donut", Price: 10, Threshold: 5},
		{Name: "Eclair", ImageRef: "eclair", Price: 15, Threshold: 10},
	})
	if err != nil {
		t.Fatalf("NewTable() failed: %v", err)
	}
	return New(table, nil)
}

func sell(c *Controller, n int) {
	for i := 0; i < n; i++ {
		c.RecordSale()
	}
}

func TestControllerScenario(t *testing.T) {
	c := newScenarioController(t)

	steps := []struct {
		name      string
		sales     int // additional sales before checking
		sold      int
		revenue   int
		price     int
		image     string
		tierIndex int
	}{
		{"start", 0, 0, 0, 5, "cupcake", 0},
		{"after 1 sale", 1, 1, 5, 5, "cupcake", 0},
		{"after 5 sales", 4, 5, 25, 10, "donut", 1},
		{"after 10 sales", 5, 10, 75, 15, "eclair", 2},
		{"after 11 sales", 1, 11, 90, 15, "eclair", 2},
	}

	for _, step := range steps {
		sell(c, step.sales)
		s := c.State()
		if s.UnitsSold != step.sold {
			t.Errorf("%s: UnitsSold = %d, expected %d", step.name, s.UnitsSold, step.sold)
		}
		if s.Revenue != step.revenue {
			t.Errorf("%s: Revenue = %d, expected %d", step.name, s.Revenue, step.revenue)
		}
		if s.CurrentPrice != step.price {
			t.Errorf("%s: CurrentPrice = %d, expected %d", step.name, s.CurrentPrice, step.price)
		}
		if s.CurrentImageRef != step.image {
			t.Errorf("%s: CurrentImageRef = %q, expected %q", step.name, s.CurrentImageRef, step.image)
		}
		if s.TierIndex != step.tierIndex {
			t.Errorf("%s: TierIndex = %d, expected %d", step.name, s.TierIndex, step.tierIndex)
		}
	}

	c.Reset()
	s := c.State()
	if s.UnitsSold != 0 || s.Revenue != 0 || s.CurrentPrice != 5 || s.CurrentImageRef != "cupcake" {
		t.Errorf("after Reset(): %+v", s)
	}
}

func TestRecordSaleUsesPriceBeforeSale(t *testing.T) {
	table := dessert.Default()
	c := New(table, nil)

	expectedRevenue := 0
	for k := 1; k <= 3000; k++ {
		// Sale k is priced at the tier selected for k-1 units.
		expectedRevenue += table.Active(k - 1).Price
		c.RecordSale()

		s := c.State()
		if s.UnitsSold != k {
			t.Fatalf("after %d sales UnitsSold = %d", k, s.UnitsSold)
		}
		if s.Revenue != expectedRevenue {
			t.Fatalf("after %d sales Revenue = %d, expected %d", k, s.Revenue, expectedRevenue)
		}
		active := table.Active(k)
		if s.CurrentPrice != active.Price || s.CurrentImageRef != active.ImageRef {
			t.Fatalf("after %d sales state %+v does not mirror tier %+v", k, s, active)
		}
	}
}

func TestResetMirrorsTierForZeroSales(t *testing.T) {
	table := dessert.MustTable([]dessert.Tier{
		{Name: "Scone", ImageRef: "scone", Price: 3, Threshold: 0},
		{Name: "Tart", ImageRef: "tart", Price: 7, Threshold: 1},
		{Name: "Pie", ImageRef: "pie", Price: 9, Threshold: 1},
	})
	c := New(table, nil)
	sell(c, 4)
	c.Reset()

	active := table.Active(0)
	s := c.State()
	if s.CurrentPrice != active.Price || s.CurrentImageRef != active.ImageRef || s.TierIndex != table.ActiveIndex(0) {
		t.Fatalf("reset state %+v does not mirror tier %+v", s, active)
	}

	// The first sale is priced at the tier selected for zero sales.
	c.RecordSale()
	if got := c.State().Revenue; got != active.Price {
		t.Errorf("first sale revenue = %d, expected %d", got, active.Price)
	}
	if got := c.State().CurrentImageRef; got != "pie" {
		t.Errorf("after 1 sale image = %q, expected %q", got, "pie")
	}
}

func TestTierNeverRegresses(t *testing.T) {
	c := New(dessert.Default(), nil)

	prev := c.State().TierIndex
	for i := 0; i < 5000; i++ {
		c.RecordSale()
		idx := c.State().TierIndex
		if idx < prev {
			t.Fatalf("tier regressed from %d to %d at sale %d", prev, idx, i+1)
		}
		prev = idx
	}
}

func TestResetIdempotent(t *testing.T) {
	c := newScenarioController(t)
	sell(c, 12)

	c.Reset()
	once := c.State()
	c.Reset()
	twice := c.State()

	if once != twice {
		t.Errorf("Reset() not idempotent: %+v vs %+v", once, twice)
	}

	fresh := newScenarioController(t).State()
	if once != fresh {
		t.Errorf("Reset() state %+v differs from fresh state %+v", once, fresh)
	}
}

func TestFormatShareSummary(t *testing.T) {
	c := newScenarioController(t)
	sell(c, 10)

	got := c.FormatShareSummary()
	if !strings.Contains(got, "10") || !strings.Contains(got, "75") {
		t.Errorf("FormatShareSummary() = %q, expected both 10 and 75", got)
	}
	if again := c.FormatShareSummary(); again != got {
		t.Errorf("FormatShareSummary() not stable: %q vs %q", got, again)
	}

	// Same counters through a different controller give the same text.
	other := newScenarioController(t)
	sell(other, 10)
	if other.FormatShareSummary() != got {
		t.Errorf("equal counters produced different summaries")
	}
}

func TestSubscribeOrder(t *testing.T) {
	c := newScenarioController(t)

	var seen []int
	cancel := c.Subscribe(func(s GameState) {
		seen = append(seen, s.UnitsSold)
	})

	sell(c, 3)
	c.Reset()
	sell(c, 1)
	cancel()
	sell(c, 2) // not observed

	expected := []int{0, 1, 2, 3, 0, 1}
	if len(seen) != len(expected) {
		t.Fatalf("observed %v, expected %v", seen, expected)
	}
	for i := range expected {
		if seen[i] != expected[i] {
			t.Fatalf("observed %v, expected %v", seen, expected)
		}
	}

	// cancel is safe to call twice
	cancel()
}

func TestMultipleSubscribers(t *testing.T) {
	c := newScenarioController(t)

	var a, b GameState
	cancelA := c.Subscribe(func(s GameState) { a = s })
	cancelB := c.Subscribe(func(s GameState) { b = s })
	defer cancelA()
	defer cancelB()

	sell(c, 7)
	if a != c.State() || b != c.State() {
		t.Errorf("subscribers out of date: a=%+v b=%+v state=%+v", a, b, c.State())
	}
}

func TestWatchConflatesToLatest(t *testing.T) {
	c := newScenarioController(t)

	ch, cancel := c.Watch()
	defer cancel()

	initial := <-ch
	if initial.UnitsSold != 0 {
		t.Errorf("initial watched state UnitsSold = %d, expected 0", initial.UnitsSold)
	}

	// Nobody reads while these are published; only the latest survives.
	sell(c, 6)
	latest := <-ch
	if latest.UnitsSold != 6 || latest.Revenue != 35 {
		t.Errorf("watched state = %+v, expected UnitsSold=6 Revenue=35", latest)
	}

	select {
	case s := <-ch:
		t.Errorf("unexpected extra state %+v", s)
	default:
	}
}

func TestWatchCancelClosesChannel(t *testing.T) {
	c := newScenarioController(t)
	ch, cancel := c.Watch()

	<-ch
	cancel()
	cancel()

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after cancel")
	}

	// Publishing after cancel must not panic.
	c.RecordSale()
}

func TestWatchConcurrentReaderSeesOrderedStates(t *testing.T) {
	c := New(dessert.Default(), nil)
	ch, cancel := c.Watch()

	var wg sync.WaitGroup
	var observed []int
	wg.Add(1)
	go func() {
		defer wg.Done()
		for s := range ch {
			observed = append(observed, s.UnitsSold)
		}
	}()

	const total = 2000
	sell(c, total)
	// A closed channel still yields its buffered value, so the reader gets the final state.
	cancel()
	wg.Wait()

	for i := 1; i < len(observed); i++ {
		if observed[i] <= observed[i-1] {
			t.Fatalf("states out of order at %d: %v then %v", i, observed[i-1], observed[i])
		}
	}
	if len(observed) == 0 || observed[len(observed)-1] != total {
		t.Errorf("reader did not converge on latest state, last=%v", lastOf(observed))
	}
}

func lastOf(xs []int) string {
	if len(xs) == 0 {
		return "none"
	}
	return strconv.Itoa(xs[len(xs)-1])
}
