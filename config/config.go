// Package config loads the YAML configuration of argument capture.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/navikt/otel-argbind/binding"
	"github.com/navikt/otel-argbind/feature"
	"github.com/navikt/otel-argbind/naming"
)

//go:embed argbind.yaml
var defaultYaml []byte

// ErrInvalidConfig is returned for configuration that decodes but cannot be used.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config controls which arguments are captured and under which keys.
type Config struct {
	// TogglePrefix prefixes the Unleash toggle of every method.
	TogglePrefix string `yaml:"toggle_prefix"`
	// AttributePrefix is prepended to every attribute key.
	AttributePrefix string `yaml:"attribute_prefix"`
	// ParameterNames captures every named parameter of methods matched by no rule and
	// no annotation.
	ParameterNames bool         `yaml:"parameter_names"`
	Rules          naming.Rules `yaml:"rules"`
}

// Default returns the embedded configuration.
func Default() Config {
	cfg, err := Parse(bytes.NewReader(defaultYaml))
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded argbind.yaml: %v", err))
	}
	return cfg
}

// Load reads the configuration at path. An empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML configuration. Unset fields keep their defaults.
func Parse(r io.Reader) (Config, error) {
	cfg := Config{TogglePrefix: feature.DefaultPrefix}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the prefixes produce usable toggle and attribute names.
func (c Config) Validate() error {
	if c.TogglePrefix == "" || !feature.IsValidName(c.TogglePrefix) {
		return fmt.Errorf("%w: toggle_prefix %q is not a valid toggle name", ErrInvalidConfig, c.TogglePrefix)
	}
	if strings.IndexFunc(c.AttributePrefix, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: attribute_prefix %q contains whitespace", ErrInvalidConfig, c.AttributePrefix)
	}
	for key, rule := range c.Rules {
		for _, name := range rule.Positional {
			if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
				return fmt.Errorf("%w: rule %s: attribute %q contains whitespace", ErrInvalidConfig, key, name)
			}
		}
		for param, name := range rule.ByName {
			if name == "" || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
				return fmt.Errorf("%w: rule %s: parameter %s has invalid attribute %q", ErrInvalidConfig, key, param, name)
			}
		}
	}
	return nil
}

// Naming builds the naming strategy: configured rules first, then annotations, then
// optionally the parameter names, all under AttributePrefix.
func (c Config) Naming() binding.NamingStrategy {
	strategies := []binding.NamingStrategy{c.Rules, naming.Annotated()}
	if c.ParameterNames {
		strategies = append(strategies, naming.ParameterNames())
	}
	return naming.Prefixed(c.AttributePrefix, naming.First(strategies...))
}
