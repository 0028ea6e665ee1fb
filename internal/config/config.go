// Package config defines the user-facing settings and their defaults.
// Values come from a .lualint.yaml file and command-line flags; the cmd
// package binds both through viper.
package config

import "github.com/sensei-lua/lualint/internal/lint"

// Config mirrors the keys of .lualint.yaml.
type Config struct {
	IndentSize int      `mapstructure:"indent_size"`
	AllowTabs  bool     `mapstructure:"allow_tabs"`
	Color      bool     `mapstructure:"color"`
	Extensions []string `mapstructure:"extensions"`
}

// Defaults returns the stock configuration.
func Defaults() Config {
	return Config{
		IndentSize: lint.DefaultIndentSize,
		AllowTabs:  false,
		Color:      false,
		Extensions: []string{".lua"},
	}
}

// Lint converts to the analysis config consumed by the core.
func (c Config) Lint() lint.Config {
	return lint.Config{
		IndentSize: c.IndentSize,
		AllowTabs:  c.AllowTabs,
		Color:      c.Color,
	}
}
