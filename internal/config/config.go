// Package config loads the YAML configuration shared by the pagefill
// binaries.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pagefill/pkg/pdf"
	"github.com/goliatone/go-pagefill/pkg/placeholder"
)

// Config is the file layout:
//
//	server:
//	  addr: ":8080"
//	  shutdown_timeout: 10s
//	templates:
//	  dir: ./templates
//	brackets: ["{{", "}}"]
//	pdf:
//	  chrome_path: /usr/bin/chromium
//	  timeout: 60s
//	  no_sandbox: true
//	  margins: {top: 10, right: 10, bottom: 10, left: 10}
//	render:
//	  sanitize: none | strict | ugc
//	  decode: true
type Config struct {
	Server    Server    `yaml:"server"`
	Templates Templates `yaml:"templates"`
	Brackets  []string  `yaml:"brackets"`
	PDF       PDF       `yaml:"pdf"`
	Render    Render    `yaml:"render"`
}

type Server struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
}

type Templates struct {
	Dir string `yaml:"dir"`
}

type PDF struct {
	ChromePath string        `yaml:"chrome_path"`
	Timeout    time.Duration `yaml:"timeout"`
	NoSandbox  *bool         `yaml:"no_sandbox"`
	Margins    *pdf.Margins  `yaml:"margins"`
}

type Render struct {
	Sanitize string `yaml:"sanitize"`
	Decode   *bool  `yaml:"decode"`
}

// Sanitizer modes accepted by Render.Sanitize.
const (
	SanitizeNone   = "none"
	SanitizeStrict = "strict"
	SanitizeUGC    = "ugc"
)

// Default returns the configuration used when no file is given.
func Default() Config {
	noSandbox := true
	decode := true
	margins := pdf.DefaultMargins
	return Config{
		Server: Server{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    10 << 20,
		},
		Templates: Templates{Dir: "templates"},
		Brackets:  placeholder.Default().Slice(),
		PDF: PDF{
			Timeout:   pdf.DefaultTimeout,
			NoSandbox: &noSandbox,
			Margins:   &margins,
		},
		Render: Render{
			Sanitize: SanitizeNone,
			Decode:   &decode,
		},
	}
}

// Load reads path over Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	if _, err := c.Delimiters(); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(c.Render.Sanitize)) {
	case "", SanitizeNone, SanitizeStrict, SanitizeUGC:
	default:
		return fmt.Errorf("unknown render.sanitize %q", c.Render.Sanitize)
	}
	if c.PDF.Timeout < 0 {
		return errors.New("pdf.timeout must not be negative")
	}
	return nil
}

// Delimiters returns the configured default bracket pair.
func (c Config) Delimiters() (placeholder.Delimiters, error) {
	if len(c.Brackets) == 0 {
		return placeholder.Default(), nil
	}
	if len(c.Brackets) != 2 {
		return placeholder.Delimiters{}, fmt.Errorf("brackets must hold exactly two entries, got %d", len(c.Brackets))
	}
	d := placeholder.FromSlice(c.Brackets)
	if err := d.Validate(); err != nil {
		return placeholder.Delimiters{}, err
	}
	return d, nil
}
