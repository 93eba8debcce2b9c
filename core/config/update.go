package config

import (
	"io"

	"github.com/BurntSushi/toml"
)

// Dump writes the effective config, environment overrides included, as TOML.
func (c *Config) Dump(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c.Typed().Root)
}
