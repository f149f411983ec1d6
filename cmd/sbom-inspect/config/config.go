// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"log/slog"
	"slices"
	"time"

	"github.com/l3montree-dev/sbomparser/parser"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

var OutputFormats = []string{OutputTable, OutputJSON, OutputYAML}

type baseConfig struct {
	MaxFileSize int64  `json:"maxFileSize" mapstructure:"maxFileSize"`
	MaxDepth    int    `json:"maxDepth" mapstructure:"maxDepth"`
	Output      string `json:"output" mapstructure:"output"`
	Concurrency int    `json:"concurrency" mapstructure:"concurrency"`
	// seconds
	Timeout int `json:"timeout" mapstructure:"timeout"`
}

var RuntimeBaseConfig baseConfig

func ParseBaseConfig() error {
	var cfg baseConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return errors.Wrap(err, "could not parse config")
	}

	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = parser.DefaultMaxFileSize
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = parser.DefaultMaxDepth
	}
	if cfg.Output == "" {
		cfg.Output = OutputTable
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 10
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 300
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	RuntimeBaseConfig = cfg
	slog.Debug("parsed config", "maxFileSize", cfg.MaxFileSize, "maxDepth", cfg.MaxDepth, "output", cfg.Output)
	return nil
}

func (c baseConfig) Validate() error {
	if !slices.Contains(OutputFormats, c.Output) {
		return errors.Errorf("invalid output format %q, expected one of %v", c.Output, OutputFormats)
	}
	if c.MaxFileSize <= 0 {
		return errors.Errorf("maxFileSize must be positive, got %d", c.MaxFileSize)
	}
	if c.MaxDepth <= 0 {
		return errors.Errorf("maxDepth must be positive, got %d", c.MaxDepth)
	}
	if c.Concurrency <= 0 {
		return errors.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.Timeout <= 0 {
		return errors.Errorf("timeout must be positive, got %d", c.Timeout)
	}
	return nil
}

func (c baseConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// ParserOptions translates the limits into parser options.
func (c baseConfig) ParserOptions() []parser.Option {
	return []parser.Option{
		parser.WithMaxFileSize(c.MaxFileSize),
		parser.WithMaxDepth(c.MaxDepth),
		parser.WithLogger(slog.Default()),
	}
}
