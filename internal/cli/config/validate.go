package config

import (
	"fmt"

	"github.com/leapstack-labs/layerlint/pkg/lint"
	"github.com/leapstack-labs/layerlint/pkg/naming"
)

// Validate checks the loaded configuration. An invalid architecture is
// the only fatal configuration error; everything else has a usable
// default.
func (c *Config) Validate() error {
	if _, err := naming.ParseArchitecture(c.Architecture); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Lint != nil {
		if c.Lint.KeyStyle != "" {
			if _, ok := naming.ParseKeyStyle(c.Lint.KeyStyle); !ok {
				return fmt.Errorf("invalid configuration: unknown key_style %q (expected _key or _id)", c.Lint.KeyStyle)
			}
		}
		for id, sev := range c.Lint.Severity {
			if _, ok := lint.ParseSeverity(sev); !ok {
				return fmt.Errorf("invalid configuration: unknown severity %q for rule %s", sev, id)
			}
		}
		if c.Lint.Parallelism < 0 {
			return fmt.Errorf("invalid configuration: parallelism must be >= 0")
		}
	}

	return nil
}

// BuildLintConfig converts file-level lint settings into a lint.Config.
func (c *Config) BuildLintConfig() *lint.Config {
	lintCfg := lint.NewConfig()
	if c == nil || c.Lint == nil {
		return lintCfg
	}

	for _, id := range c.Lint.Disabled {
		lintCfg.Disable(id)
	}
	for id, sev := range c.Lint.Severity {
		if s, ok := lint.ParseSeverity(sev); ok {
			lintCfg.SetSeverity(id, s)
		}
	}
	for id, opts := range c.Lint.Rules {
		lintCfg.SetRuleOptions(id, opts)
	}

	return lintCfg
}
