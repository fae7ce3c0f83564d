package main

import (
	"os"
	"runtime"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/akeil/nebotool/internal/errors"
	"github.com/akeil/nebotool/internal/logging"
	"github.com/akeil/nebotool/pkg/ink"
)

const defaultConfigPath = "~/.config/nebotool/config.yaml"

// settings can be read from a YAML file and are overridden by command line
// flags.
type settings struct {
	LogLevel string  `yaml:"log-level"`
	Output   string  `yaml:"output"`
	Format   string  `yaml:"format"`
	Jobs     int     `yaml:"jobs"`
	Scale    float64 `yaml:"scale"`
	Alpha    string  `yaml:"alpha"`
}

func defaultSettings() settings {
	return settings{
		LogLevel: "warning",
		Output:   ".",
		Format:   "pdf",
		Jobs:     runtime.NumCPU(),
		Scale:    ink.DefaultScale,
		Alpha:    ink.AlphaSource.String(),
	}
}

// loadSettings reads settings from the given file.
// Values not set in the file keep their defaults. A missing file is not an
// error.
func loadSettings(path string) (settings, error) {
	s := defaultSettings()

	p, err := homedir.Expand(path)
	if err != nil {
		return s, err
	}

	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		logging.Debug("No settings file at %q, using defaults", p)
		return s, nil
	} else if err != nil {
		return s, err
	}

	err = yaml.Unmarshal(data, &s)
	if err != nil {
		return s, errors.Wrap(err, "could not read settings from %q", p)
	}

	return s, s.validate()
}

// override replaces settings with all non-zero values from o.
func (s *settings) override(o settings) {
	if o.LogLevel != "" {
		s.LogLevel = o.LogLevel
	}
	if o.Output != "" {
		s.Output = o.Output
	}
	if o.Format != "" {
		s.Format = o.Format
	}
	if o.Jobs != 0 {
		s.Jobs = o.Jobs
	}
	if o.Scale != 0 {
		s.Scale = o.Scale
	}
	if o.Alpha != "" {
		s.Alpha = o.Alpha
	}
}

func (s settings) validate() error {
	if s.Jobs < 1 {
		return errors.NewValidationError("jobs must be at least 1, got %d", s.Jobs)
	}
	if s.Scale <= 0 {
		return errors.NewValidationError("scale must be positive, got %v", s.Scale)
	}
	_, err := ink.ParseAlphaPolicy(s.Alpha)
	return err
}

// options creates the conversion options.
func (s settings) options() (ink.Options, error) {
	err := s.validate()
	if err != nil {
		return ink.Options{}, err
	}

	opts := ink.DefaultOptions()
	opts.Scale = s.Scale
	opts.Alpha, _ = ink.ParseAlphaPolicy(s.Alpha)
	return opts, nil
}

// outputDir returns the expanded output directory and creates it if needed.
func (s settings) outputDir() (string, error) {
	p, err := homedir.Expand(s.Output)
	if err != nil {
		return "", err
	}
	return p, os.MkdirAll(p, 0755)
}
