// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles formrequest project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	envprovider "github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/dacolabs/formrequest/internal/emit"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

const (
	// FileName is the config file looked up in the working directory.
	FileName = "formrequest.yaml"
	// EnvPrefix prefixes environment overrides, e.g. FORMREQUEST_NAMESPACE.
	EnvPrefix = "FORMREQUEST_"
)

// ErrConfigNotFound indicates an explicitly requested config file is missing.
var ErrConfigNotFound = errors.New("config file not found")

// Config represents the formrequest.yaml project configuration file.
type Config struct {
	Version           int    `koanf:"version" yaml:"version" validate:"required"`
	Output            string `koanf:"output" yaml:"output" validate:"required"`
	Namespace         string `koanf:"namespace" yaml:"namespace" validate:"php_namespace"`
	BaseClass         string `koanf:"base_class" yaml:"base_class,omitempty" validate:"omitempty,php_fqcn"`
	Authorize         string `koanf:"authorize" yaml:"authorize,omitempty"`
	Force             bool   `koanf:"force" yaml:"force,omitempty"`
	Concurrency       int    `koanf:"concurrency" yaml:"concurrency" validate:"min=1,max=64"`
	IncludeParameters bool   `koanf:"include_parameters" yaml:"include_parameters,omitempty"`
}

func defaults() map[string]any {
	return map[string]any{
		"version":            CurrentConfigVersion,
		"output":             "./app/Http/Requests",
		"namespace":          emit.DefaultNamespace,
		"base_class":         emit.DefaultBaseClass,
		"authorize":          "true",
		"force":              false,
		"concurrency":        4,
		"include_parameters": false,
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := load("", false)
	if err != nil {
		// defaults alone always unmarshal
		panic(err)
	}
	return cfg
}

// Load reads configuration with priority:
// 1. Environment variables (FORMREQUEST_*)
// 2. The YAML file at path, or formrequest.yaml when path is empty
// 3. Default values
//
// A missing formrequest.yaml is ignored; a missing explicit path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}

	if _, err := os.Stat(path); err != nil {
		if explicit {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		path = ""
	}

	cfg, err := load(path, true)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func load(path string, withEnv bool) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	if withEnv {
		if err := k.Load(envprovider.Provider(EnvPrefix, ".", func(s string) string {
			return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load environment variables: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yamlv3.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

var validate = emit.NewValidator()

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s: failed %q check for value %v", yamlKey(fe.StructField()), fe.Tag(), fe.Value())
		}
		return err
	}
	return nil
}

func yamlKey(field string) string {
	switch field {
	case "BaseClass":
		return "base_class"
	case "IncludeParameters":
		return "include_parameters"
	default:
		return strings.ToLower(field)
	}
}
