// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads process configuration for httpfy clients and
// assembles the matching pipeline.
//
// Values come from, in increasing order of precedence, the built-in
// defaults, an optional YAML file and HTTPFY_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "HTTPFY"

// Config is the process configuration.
type Config struct {
	// BaseURL is the URL request paths are resolved against.
	BaseURL string `yaml:"baseURL" envconfig:"BASE_URL" validate:"omitempty,url"`

	// Timeout bounds each attempt. Zero means no attempt timeout.
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gte=0"`

	// Retries is the maximum number of retries of an idempotent
	// request.
	Retries int `yaml:"retries" envconfig:"RETRIES" validate:"gte=0,lte=10"`

	// RPS limits the request rate. Zero means unlimited.
	RPS float64 `yaml:"rps" envconfig:"RPS" validate:"gte=0"`

	// Burst is the largest burst admitted when RPS is set.
	Burst int `yaml:"burst" envconfig:"BURST" validate:"required_with=RPS,gte=0"`

	// LogLevel is one of debug, info, warn and error.
	LogLevel string `yaml:"logLevel" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	// Headers are added to every request that does not set them.
	Headers map[string]string `yaml:"headers" envconfig:"HEADERS"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Timeout:  5 * time.Second,
		Retries:  3,
		Burst:    1,
		LogLevel: "info",
	}
}

// Load returns the defaults overridden by the environment. The config
// is nil whenever the error is not.
func Load() (*Config, error) {
	cfg := Default()
	if err := loadEnv(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile returns the defaults overridden by the YAML file at path,
// then by the environment. Unknown keys in the file are an error, and
// an invalid config is never returned.
func LoadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("httpfy/config: reading file: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err = dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("httpfy/config: parsing %s: %w", path, err)
	}
	if err = loadEnv(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("httpfy/config: reading environment: %w", err)
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// A FieldError describes one invalid configuration value.
type FieldError struct {
	Field string
	Tag   string
	Value interface{}
}

// FieldErrors is returned by Validate for an invalid configuration.
type FieldErrors []FieldError

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, f := range fe {
		parts[i] = fmt.Sprintf("%s: failed %q (value %v)", f.Field, f.Tag, f.Value)
	}
	return "httpfy/config: invalid configuration: " + strings.Join(parts, "; ")
}

// Validate checks cfg against the constraints declared on Config.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(FieldErrors, 0, len(verrs))
	for _, v := range verrs {
		fields = append(fields, FieldError{Field: v.Field(), Tag: v.Tag(), Value: v.Value()})
	}
	return fields
}

// Level returns the slog level named by LogLevel, or slog.LevelInfo if
// the name is not recognized.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
