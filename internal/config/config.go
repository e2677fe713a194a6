// Package config loads dagstats settings from an optional TOML file.
//
// Values are resolved in three layers: built-in defaults, the config file,
// and finally command-line flags (applied by the caller). A missing file at
// the default location is not an error.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dagstats/pkg/errors"
	"github.com/matzehuels/dagstats/pkg/pipeline"
	"github.com/matzehuels/dagstats/pkg/stats"
)

const (
	appName  = "dagstats"
	fileName = "config.toml"

	// DefaultAddr is the listen address of the serve command.
	DefaultAddr = ":8080"

	// DefaultMaxBodyBytes limits the size of a POST /v1/stats body (1 MiB).
	DefaultMaxBodyBytes = 1 << 20
)

// Config is the decoded config file.
type Config struct {
	Precision   int    `toml:"precision"`
	BucketWidth int64  `toml:"bucket_width"`
	Format      string `toml:"format"`
	Server      Server `toml:"server"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Precision:   stats.DefaultPrecision,
		BucketWidth: stats.DefaultBucketWidth,
		Format:      pipeline.FormatText,
		Server: Server{
			Addr:         DefaultAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
	}
}

// Validate checks every value in c.
func (c Config) Validate() error {
	if err := c.PipelineOptions().Validate(); err != nil {
		return err
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	return nil
}

// PipelineOptions returns the pipeline options described by c.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Format:      c.Format,
		Precision:   c.Precision,
		BucketWidth: c.BucketWidth,
	}
}

// Load reads the config file at path, applies overrides in order and
// validates the result. Overrides run before validation, so an explicit
// command-line value can replace an invalid file value.
func Load(path string, overrides ...func(*Config)) (Config, error) {
	cfg, err := read(path)
	if err != nil {
		return Config{}, err
	}
	for _, o := range overrides {
		o(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// read decodes the config file at path on top of [Default].
//
// An empty path selects [DefaultPath]; a missing file there yields the
// defaults. An explicitly named file must exist. Syntax errors and unknown
// keys are rejected here; value ranges are left to [Config.Validate].
func read(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		var pathErr *fs.PathError
		if stderrors.As(err, &pathErr) {
			return Config{}, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
		}
		var parseErr toml.ParseError
		if stderrors.As(err, &parseErr) {
			return Config{}, errors.New(errors.ErrCodeInvalidInput, "config %s: %s", path, parseErr.Message)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undec[0].String())
	}
	return cfg, nil
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/dagstats/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}
