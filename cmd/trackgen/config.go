package main

import (
	"errors"

	"github.com/joeshaw/envdecode"

	"github.com/andreyvit/trackgen"
)

// Config holds flag defaults; each one can be set from the environment.
type Config struct {
	// ENV: TRACKGEN_FIELD
	StorageField string `env:"TRACKGEN_FIELD,default=tracker"`
	// Output file, relative to the package directory or description file.
	// "-" writes to stdout. ENV: TRACKGEN_OUTPUT
	Output string `env:"TRACKGEN_OUTPUT,default=tracker_gen.go"`
	// Layout cache file. Empty disables the cache. ENV: TRACKGEN_CACHE
	Cache string `env:"TRACKGEN_CACHE"`
	// ENV: TRACKGEN_VERBOSE
	Verbose bool `env:"TRACKGEN_VERBOSE,default=false"`
}

func loadConfig() (Config, error) {
	var cfg Config
	err := envdecode.Decode(&cfg)
	if err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return cfg, err
	}
	if cfg.StorageField == "" {
		cfg.StorageField = trackgen.DefaultStorageField
	}
	if cfg.Output == "" {
		cfg.Output = defaultOutput
	}
	return cfg, nil
}

const defaultOutput = "tracker_gen.go"
