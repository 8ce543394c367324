package clicker

import (
	"sync"

	"github.com/vovakirdan/dessert-clicker/internal/dessert"
)

// Controller owns the GameState. Reset and RecordSale must be called from a
// single goroutine (the UI event loop); observers may subscribe from anywhere.
type Controller struct {
	table   *dessert.Table
	summary *Summary

	mu        sync.Mutex // guards state and listeners, held while publishing
	state     GameState
	listeners map[uint64]Listener
	nextID    uint64
}

// New creates a controller over the given table. A nil summary uses the
// default share template.
func New(table *dessert.Table, summary *Summary) *Controller {
	if summary == nil {
		summary = DefaultSummary()
	}
	c := &Controller{
		table:     table,
		summary:   summary,
		listeners: make(map[uint64]Listener),
	}
	c.Reset()
	return c
}

// Table returns the tier table the controller advances through.
func (c *Controller) Table() *dessert.Table {
	return c.table
}

// State returns a snapshot of the current state.
func (c *Controller) State() GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reset replaces the state with zero counters and the tier selected for zero
// sales, which a valid table guarantees is the first.
func (c *Controller) Reset() {
	idx := c.table.ActiveIndex(0)
	tier := c.table.At(idx)
	c.publish(GameState{
		CurrentPrice:    tier.Price,
		CurrentImageRef: tier.ImageRef,
		TierIndex:       idx,
	})
}

// RecordSale sells one unit of the displayed dessert. The sale is priced at
// the tier active before the count is incremented.
func (c *Controller) RecordSale() {
	c.mu.Lock()
	prev := c.state
	c.mu.Unlock()

	sold := prev.UnitsSold + 1
	idx := c.table.ActiveIndex(sold)
	tier := c.table.At(idx)

	c.publish(GameState{
		UnitsSold:       sold,
		Revenue:         prev.Revenue + prev.CurrentPrice,
		CurrentPrice:    tier.Price,
		CurrentImageRef: tier.ImageRef,
		TierIndex:       idx,
	})
}

// FormatShareSummary renders the share text for the current counters.
func (c *Controller) FormatShareSummary() string {
	s := c.State()
	return c.summary.Format(s.UnitsSold, s.Revenue)
}

// Subscribe registers fn to receive every published state. fn is called
// immediately with the current state. Listeners run with the controller
// locked and must not call back into it.
// The returned function removes the listener.
func (c *Controller) Subscribe(fn Listener) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	fn(c.state)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

// publish stores the new state and notifies listeners while still holding the
// lock, so every listener sees states in the order they were produced.
func (c *Controller) publish(s GameState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = s
	for _, fn := range c.listeners {
		fn(s)
	}
}
