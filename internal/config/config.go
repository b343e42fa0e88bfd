// Package config loads flatsheet settings from a TOML file.
package config

import (
	"fmt"
	"os"
	"runtime"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/header"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "flatsheet.toml"

// AppConfig is the full configuration.
type AppConfig struct {
	Convert ConvertConfig `toml:"convert"`
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
}

// ConvertConfig controls flattening and serialization.
type ConvertConfig struct {
	Sheet         string   `toml:"sheet"`
	HeaderRows    int      `toml:"header_rows"`
	Delimiter     string   `toml:"delimiter"`
	StageKeywords []string `toml:"stage_keywords"`
	CRLF          bool     `toml:"crlf"`
}

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	Addr  string `toml:"addr"`
	Input string `toml:"input"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Convert: ConvertConfig{
			HeaderRows:    flatsheet.DefaultHeaderRows,
			Delimiter:     ";",
			StageKeywords: append([]string(nil), header.DefaultStageKeywords...),
			CRLF:          runtime.GOOS == "windows",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads path over the defaults. A missing file yields the defaults.
// FLATSHEET_INPUT overrides server.input.
func LoadConfig(path string) (*AppConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if v := os.Getenv("FLATSHEET_INPUT"); v != "" {
		config.Server.Input = v
	}

	return config, nil
}

// Options converts the [convert] section to conversion options.
func (c *AppConfig) Options() (flatsheet.Options, error) {
	opts := flatsheet.DefaultOptions()
	opts.SheetName = c.Convert.Sheet
	if c.Convert.HeaderRows != 0 {
		opts.HeaderRows = c.Convert.HeaderRows
	}
	if len(c.Convert.StageKeywords) > 0 {
		opts.StageKeywords = append([]string(nil), c.Convert.StageKeywords...)
	}
	opts.CRLF = c.Convert.CRLF

	if c.Convert.Delimiter != "" {
		r, size := utf8.DecodeRuneInString(c.Convert.Delimiter)
		if size != len(c.Convert.Delimiter) {
			return opts, fmt.Errorf("delimiter must be a single character, got %q", c.Convert.Delimiter)
		}
		opts.Delimiter = r
	}

	return opts, opts.Validate()
}
