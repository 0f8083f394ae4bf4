// Package config loads the TOML configuration consumed by the
// command-line tooling: where commitments are persisted and how the
// engines should log.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/sstone1/concerto/logging"
)

// Config is the top-level configuration file format for the concerto
// command-line tools.
type Config struct {
	// Path is set by Load to the file the config was read from; it is
	// not itself part of the TOML document.
	Path string `toml:"-"`

	// RootStorePath is the path to the LevelDB directory that persists
	// record commitments keyed by record ID.
	RootStorePath string `toml:"root_store_path"`

	// Logger configures the structured logger shared by all
	// subcommands.
	Logger *logging.Config `toml:"logger"`
}

// Default returns a Config suitable for local experimentation: a
// development-level logger writing to stderr only, and a root store
// rooted at the given directory.
func Default(rootStorePath string) *Config {
	return &Config{
		RootStorePath: rootStorePath,
		Logger: &logging.Config{
			Environment: "development",
		},
	}
}

// Load decodes the TOML configuration file at path.
func Load(path string) (*Config, error) {
	conf := new(Config)
	if _, err := toml.DecodeFile(path, conf); err != nil {
		return nil, fmt.Errorf("failed to load config: %v", err)
	}
	if conf.Logger == nil {
		conf.Logger = &logging.Config{Environment: "production"}
	}
	conf.Path = path
	return conf, nil
}

// Save encodes conf in TOML form to its Path.
func (conf *Config) Save() error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(conf); err != nil {
		return err
	}
	return os.WriteFile(conf.Path, buf.Bytes(), 0644)
}
