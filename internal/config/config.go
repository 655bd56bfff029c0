// ABOUTME: Soundboard configuration file with defaults and validation
// ABOUTME: JSON settings checked with go-playground/validator struct tags
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Configuration defaults are used when values are not specified.
const (
	DefaultLanguage    = "tr"
	DefaultVolume      = 25
	DefaultOutputRate  = 48000
	DefaultChunkFrames = 1024
	DefaultFeedPort    = 8928
	DefaultFeedName    = "Jingle Box"
	DefaultLogFile     = "jinglebox.log"
)

// validate is the shared validator instance
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Use JSON tag names in error messages instead of struct field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})
}

// Config holds soundboard settings
type Config struct {
	Language    string `json:"language" validate:"oneof=tr en"`
	Volume      int    `json:"volume" validate:"gte=1,lte=100"`
	OutputRate  int    `json:"output_rate" validate:"oneof=44100 48000"`
	ChunkFrames int    `json:"chunk_frames" validate:"gte=64,lte=16384"`
	Palette     string `json:"palette" validate:"omitempty,max=4096"` // Palette loaded at startup
	LogFile     string `json:"log_file" validate:"required,max=4096"`
	Feed        Feed   `json:"feed"`
}

// Feed holds meter feed settings
type Feed struct {
	Enabled bool   `json:"enabled"`
	Port    int    `json:"port" validate:"gte=1,lte=65535"`
	Name    string `json:"name" validate:"required,max=63"`
	MDNS    bool   `json:"mdns"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Language:    DefaultLanguage,
		Volume:      DefaultVolume,
		OutputRate:  DefaultOutputRate,
		ChunkFrames: DefaultChunkFrames,
		LogFile:     DefaultLogFile,
		Feed: Feed{
			Enabled: true,
			Port:    DefaultFeedPort,
			Name:    DefaultFeedName,
			MDNS:    true,
		},
	}
}

// Load reads path over the defaults. An empty path or a missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("Config file %s not found, using defaults", path)
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes the configuration as indented JSON
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks every field and reports all failures at once
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, fieldPath(e)+" "+formatValidationMessage(e))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// fieldPath drops the root struct name from the namespace, "feed.port"
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// formatValidationMessage creates a human-readable message from a validator error.
func formatValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}
