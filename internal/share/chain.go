package share

import (
	"context"
	"errors"
)

// Chain tries each sharer in order until one accepts the text.
type Chain struct {
	sharers []Sharer
}

// NewChain creates a chain over the given sharers.
func NewChain(sharers ...Sharer) *Chain {
	return &Chain{sharers: sharers}
}

// Len returns the number of configured targets.
func (c *Chain) Len() int {
	return len(c.sharers)
}

// ShareText returns nil on the first success. Unavailable targets are skipped.
// If every target is unavailable the result is ErrUnavailable; otherwise the
// last real failure is returned.
func (c *Chain) ShareText(ctx context.Context, text string) error {
	var lastErr error
	for _, s := range c.sharers {
		err := s.ShareText(ctx, text)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrUnavailable) {
			continue
		}
		lastErr = err
	}
	if lastErr != nil {
		return lastErr
	}
	return ErrUnavailable
}
