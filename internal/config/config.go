// Package config provides YAML-based configuration for the dessert clicker:
// the tier table, share text and share targets.
package config

import (
	"fmt"

	"github.com/vovakirdan/dessert-clicker/internal/clicker"
	"github.com/vovakirdan/dessert-clicker/internal/dessert"
)

// Config is the top-level game configuration.
type Config struct {
	Tiers []TierConfig `yaml:"tiers"`
	Share ShareConfig  `yaml:"share"`
}

// TierConfig describes one dessert tier.
type TierConfig struct {
	Name      string `yaml:"name"`
	Image     string `yaml:"image"` // Asset reference; defaults to Name
	Price     int    `yaml:"price"`
	Threshold int    `yaml:"threshold"`
}

// ShareConfig controls the share action.
type ShareConfig struct {
	Template      string   `yaml:"template"`       // text/template with .Sold and .Revenue
	Unavailable   string   `yaml:"unavailable"`    // Notice shown when no target accepts the text
	Shared        string   `yaml:"shared"`         // Notice shown on success
	NoticeSeconds int      `yaml:"notice_seconds"` // How long notices stay on screen
	Targets       []string `yaml:"targets"`        // "command", "osc52", "file", tried in order
	Command       []string `yaml:"command"`        // Clipboard program and arguments
	File          string   `yaml:"file"`           // Destination for the "file" target
}

// Table builds and validates the tier table.
func (c Config) Table() (*dessert.Table, error) {
	tiers := make([]dessert.Tier, len(c.Tiers))
	for i, t := range c.Tiers {
		image := t.Image
		if image == "" {
			image = t.Name
		}
		tiers[i] = dessert.Tier{
			Name:      t.Name,
			ImageRef:  image,
			Price:     t.Price,
			Threshold: t.Threshold,
		}
	}

	table, err := dessert.NewTable(tiers)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return table, nil
}

// Summary builds the share summary template.
func (c Config) Summary() (*clicker.Summary, error) {
	text := c.Share.Template
	if text == "" {
		text = clicker.DefaultSummaryTemplate
	}
	s, err := clicker.NewSummary(text)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return s, nil
}

// Validate checks everything that would otherwise fail at first use.
func (c Config) Validate() error {
	if _, err := c.Table(); err != nil {
		return err
	}
	if _, err := c.Summary(); err != nil {
		return err
	}
	if c.Share.NoticeSeconds < 0 {
		return fmt.Errorf("config: share.notice_seconds must not be negative (got %d)", c.Share.NoticeSeconds)
	}
	return nil
}

// Build validates the config and returns a fresh controller over it.
func (c Config) Build() (*clicker.Controller, error) {
	table, err := c.Table()
	if err != nil {
		return nil, err
	}
	summary, err := c.Summary()
	if err != nil {
		return nil, err
	}
	return clicker.New(table, summary), nil
}
