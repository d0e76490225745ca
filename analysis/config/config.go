// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the configuration and logging facilities shared by
// the analysis tools.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// The global config file
	configFile string
)

// SetGlobalConfig sets the global config filename
func SetGlobalConfig(filename string) {
	configFile = filename
}

// LoadGlobal loads the config file that has been set by SetGlobalConfig
func LoadGlobal() (*Config, error) {
	return Load(configFile)
}

// Config holds the options of the control flow tools. If some field is not
// defined in the config file, it keeps its value from NewDefault, which
// also gives the configuration used when no file is given.
type Config struct {
	Options `yaml:",inline"`

	sourceFile string
}

// Options are the user-facing settings of the analysis tools.
type Options struct {
	// LogLevel controls the verbosity of construction logging (see the
	// LogLevel constants).
	LogLevel int `yaml:"log-level"`

	// DotOut is the file the graphviz rendering is written to; empty
	// means standard output.
	DotOut string `yaml:"dot-out"`

	// IncludeHoist renders hoist events in the graph output when true.
	IncludeHoist bool `yaml:"include-hoist"`

	// MaxLabel truncates rendered node labels to this many characters;
	// 0 means no truncation.
	MaxLabel int `yaml:"max-label"`
}

// NewDefault returns the default configuration.
func NewDefault() *Config {
	return &Config{
		Options: Options{
			LogLevel:     int(InfoLevel),
			IncludeHoist: true,
		},
	}
}

// Load reads a yaml config file. An empty filename returns the defaults.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return NewDefault(), nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	cfg := NewDefault()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file %q: %w", filename, err)
	}
	cfg.sourceFile = filename
	return cfg, nil
}

// SourceFile returns the file this config was loaded from, if any.
func (c *Config) SourceFile() string {
	return c.sourceFile
}
