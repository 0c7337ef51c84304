// Package config loads locradar settings from .locradar.yaml, LOCRADAR_*
// environment variables and an optional .env file.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all locradar settings.
type Config struct {
	Scan      ScanConfig      `mapstructure:"scan"`
	Backend   BackendConfig   `mapstructure:"backend"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Output    OutputConfig    `mapstructure:"output"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ScanConfig controls discovery and attribution.
type ScanConfig struct {
	Path string `mapstructure:"path" validate:"required"`
	// MaxDepth of -1 disables the limit.
	MaxDepth     int      `mapstructure:"max_depth"     validate:"min=-1"`
	Authors      []string `mapstructure:"authors"`
	TopN         int      `mapstructure:"top_n"         validate:"min=1"`
	Workers      int      `mapstructure:"workers"       validate:"min=0"`
	SkipVendored bool     `mapstructure:"skip_vendored"`
}

// BackendConfig selects how git is queried.
type BackendConfig struct {
	Kind      string `mapstructure:"kind"       validate:"oneof=exec libgit2"`
	GitBinary string `mapstructure:"git_binary" validate:"required"`
}

// CatalogConfig selects the language catalog.
type CatalogConfig struct {
	Source string `mapstructure:"source" validate:"oneof=bundled linguist"`
	File   string `mapstructure:"file"`
}

// OutputConfig controls the chart and summary output.
type OutputConfig struct {
	SVG     string `mapstructure:"svg"`
	HTML    string `mapstructure:"html"`
	Format  string `mapstructure:"format"   validate:"oneof=text json yaml"`
	Width   int    `mapstructure:"width"    validate:"min=200,max=8192"`
	Height  int    `mapstructure:"height"   validate:"min=200,max=8192"`
	Theme   string `mapstructure:"theme"    validate:"oneof=light dark"`
	NoColor bool   `mapstructure:"no_color"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelemetryConfig controls OpenTelemetry export and the metrics snapshot.
type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint" validate:"omitempty,hostname_port"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
	// OTLPHeaders uses "key=value,key=value".
	OTLPHeaders string `mapstructure:"otlp_headers"`
	MetricsFile string `mapstructure:"metrics_file"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints. Failures wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]

		return fmt.Errorf("%w: %s fails %q (got %v)", ErrInvalidConfig, fe.Namespace(), fe.Tag(), fe.Value())
	}

	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}
