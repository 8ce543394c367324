// Package dessert holds the price tier table that drives the clicker.
// It has no dependencies on the platform layer so the rules stay pure and testable.
package dessert

import (
	"errors"
	"fmt"
	"sort"
)

// Validation errors returned by NewTable.
var (
	ErrEmptyTable     = errors.New("dessert: tier table is empty")
	ErrFirstThreshold = errors.New("dessert: first tier threshold must be 0")
	ErrDuplicateStart = errors.New("dessert: only the first tier may have threshold 0")
	ErrUnsorted       = errors.New("dessert: tier thresholds must be non-decreasing")
	ErrPrice          = errors.New("dessert: tier price must be positive")
)

// Tier is a price/image bracket that becomes active once cumulative
// sales reach Threshold.
type Tier struct {
	Name      string
	ImageRef  string // Opaque asset reference, resolved by the platform layer
	Price     int    // Revenue earned per unit while this tier is active
	Threshold int    // Units sold at which this tier becomes active
}

// Table is an immutable, threshold-ordered list of tiers.
type Table struct {
	tiers []Tier
}

// NewTable validates tiers and returns a table holding a private copy.
func NewTable(tiers []Tier) (*Table, error) {
	if len(tiers) == 0 {
		return nil, ErrEmptyTable
	}
	if tiers[0].Threshold != 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrFirstThreshold, tiers[0].Threshold)
	}

	for i, t := range tiers {
		if t.Price <= 0 {
			return nil, fmt.Errorf("%w: tier %d (%s) has price %d", ErrPrice, i, t.Name, t.Price)
		}
		// A second tier at 0 would be selected at zero sales instead of the first.
		if i > 0 && t.Threshold == 0 {
			return nil, fmt.Errorf("%w: tier %d (%s)", ErrDuplicateStart, i, t.Name)
		}
		if i > 0 && t.Threshold < tiers[i-1].Threshold {
			return nil, fmt.Errorf("%w: tier %d (%s) threshold %d < %d",
				ErrUnsorted, i, t.Name, t.Threshold, tiers[i-1].Threshold)
		}
	}

	owned := make([]Tier, len(tiers))
	copy(owned, tiers)
	return &Table{tiers: owned}, nil
}

// MustTable is like NewTable but panics on an invalid table.
// Intended for static literals checked at startup.
func MustTable(tiers []Tier) *Table {
	t, err := NewTable(tiers)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of tiers.
func (t *Table) Len() int {
	return len(t.tiers)
}

// At returns the tier at index i.
func (t *Table) At(i int) Tier {
	return t.tiers[i]
}

// First returns the tier active at zero sales.
func (t *Table) First() Tier {
	return t.tiers[0]
}

// Tiers returns a copy of all tiers in order.
func (t *Table) Tiers() []Tier {
	out := make([]Tier, len(t.tiers))
	copy(out, t.tiers)
	return out
}

// ActiveIndex returns the index of the last tier whose threshold does not
// exceed unitsSold. The first threshold is 0, so the result is always valid.
func (t *Table) ActiveIndex(unitsSold int) int {
	if unitsSold < 0 {
		return 0
	}
	// First tier whose threshold is strictly above the count; the one before it is active.
	next := sort.Search(len(t.tiers), func(i int) bool {
		return t.tiers[i].Threshold > unitsSold
	})
	return next - 1
}

// Active returns the tier selected for unitsSold.
func (t *Table) Active(unitsSold int) Tier {
	return t.tiers[t.ActiveIndex(unitsSold)]
}

// Next returns the tier following index i and whether one exists.
func (t *Table) Next(i int) (Tier, bool) {
	if i+1 >= len(t.tiers) {
		return Tier{}, false
	}
	return t.tiers[i+1], true
}
