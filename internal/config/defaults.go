package config

import (
	_ "embed"

	"github.com/vovakirdan/dessert-clicker/internal/clicker"
	"github.com/vovakirdan/dessert-clicker/internal/dessert"
)

//go:embed defaults/dessert.yaml
var defaultYAML []byte

// Default notice texts.
const (
	DefaultUnavailableNotice = "Sharing not available"
	DefaultSharedNotice      = "Copied to share target"
	DefaultNoticeSeconds     = 2
)

// Default returns the hardcoded configuration.
func Default() Config {
	tiers := dessert.DefaultTiers()
	cfgTiers := make([]TierConfig, len(tiers))
	for i, t := range tiers {
		cfgTiers[i] = TierConfig{
			Name:      t.Name,
			Image:     t.ImageRef,
			Price:     t.Price,
			Threshold: t.Threshold,
		}
	}

	return Config{
		Tiers: cfgTiers,
		Share: ShareConfig{
			Template:      clicker.DefaultSummaryTemplate,
			Unavailable:   DefaultUnavailableNotice,
			Shared:        DefaultSharedNotice,
			NoticeSeconds: DefaultNoticeSeconds,
			Targets:       []string{"command", "osc52", "file"},
			Command:       []string{"wl-copy"},
			File:          "~/.dessert/shared.txt",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}

// applyDefaults fills share fields a partial config left empty.
func applyDefaults(cfg *Config) {
	def := Default()
	if len(cfg.Tiers) == 0 {
		cfg.Tiers = def.Tiers
	}
	if cfg.Share.Template == "" {
		cfg.Share.Template = def.Share.Template
	}
	if cfg.Share.Unavailable == "" {
		cfg.Share.Unavailable = def.Share.Unavailable
	}
	if cfg.Share.Shared == "" {
		cfg.Share.Shared = def.Share.Shared
	}
	if cfg.Share.NoticeSeconds == 0 {
		cfg.Share.NoticeSeconds = def.Share.NoticeSeconds
	}
	if cfg.Share.Targets == nil {
		cfg.Share.Targets = def.Share.Targets
	}
	if cfg.Share.Command == nil {
		cfg.Share.Command = def.Share.Command
	}
	if cfg.Share.File == "" {
		cfg.Share.File = def.Share.File
	}
}
