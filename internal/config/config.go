// Package config loads the settings of the ankitmpl command.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	anki "github.com/AlexanderGrooff/anki-template-go"
	"github.com/AlexanderGrooff/anki-template-go/pkg/cardrender"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = ".ankitmpl.yaml"

// DefaultTimeout bounds a whole command run.
const DefaultTimeout = time.Minute

// Config holds the renderer settings.
type Config struct {
	CacheCapacity int           `yaml:"cache_capacity"`
	Locale        string        `yaml:"locale"`
	HelpURL       string        `yaml:"help_url"`
	ClozeHelpURL  string        `yaml:"cloze_help_url"`
	Timeout       time.Duration `yaml:"timeout"`
}

// Default returns the settings used when no configuration file exists.
func Default() Config {
	return Config{
		CacheCapacity: anki.DefaultCacheCapacity,
		Locale:        "en",
		HelpURL:       anki.DefaultHelpURL,
		ClozeHelpURL:  cardrender.DefaultClozeHelpURL,
		Timeout:       DefaultTimeout,
	}
}

// Load reads the configuration at path on top of the defaults. A missing
// file at DefaultPath is not an error; a missing file elsewhere is.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	config, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Parse decodes a YAML configuration. Keys that are not set keep their
// default value.
func Parse(r io.Reader) (Config, error) {
	config := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks the values that cannot be used as they are.
func (c Config) Validate() error {
	if c.CacheCapacity < 0 {
		return fmt.Errorf("cache_capacity must not be negative, got %d", c.CacheCapacity)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if _, err := c.Language(); err != nil {
		return err
	}
	return nil
}

// Language parses the configured locale.
func (c Config) Language() (language.Tag, error) {
	if c.Locale == "" {
		return language.English, nil
	}
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	return tag, nil
}

// Write stores the configuration as YAML at path.
func Write(path string, c Config) error {
	d, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0o644)
}
