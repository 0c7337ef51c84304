package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".locradar"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for locradar settings.
const envPrefix = "LOCRADAR"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// DotEnvFile is loaded from the working directory before the config.
const DotEnvFile = ".env"

// LoadDotEnv exports the variables in path that are not already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load %s: %w", path, err)
}

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Path:         DefaultScanPath,
			MaxDepth:     DefaultScanMaxDepth,
			Authors:      []string{},
			TopN:         DefaultScanTopN,
			Workers:      DefaultScanWorkers,
			SkipVendored: DefaultScanSkipVendored,
		},
		Backend: BackendConfig{Kind: DefaultBackendKind, GitBinary: DefaultBackendGitBinary},
		Catalog: CatalogConfig{Source: DefaultCatalogSource, File: DefaultCatalogFile},
		Output: OutputConfig{
			SVG:     DefaultOutputSVG,
			HTML:    DefaultOutputHTML,
			Format:  DefaultOutputFormat,
			Width:   DefaultOutputWidth,
			Height:  DefaultOutputHeight,
			Theme:   DefaultOutputTheme,
			NoColor: DefaultOutputNoColor,
		},
		Logging: LoggingConfig{Level: DefaultLoggingLevel, JSON: DefaultLoggingJSON},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: DefaultTelemetryOTLPEndpoint,
			OTLPInsecure: DefaultTelemetryOTLPInsecure,
			OTLPHeaders:  DefaultTelemetryOTLPHeaders,
			MetricsFile:  DefaultTelemetryMetricsFile,
		},
	}
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("scan.path", DefaultScanPath)
	viperCfg.SetDefault("scan.max_depth", DefaultScanMaxDepth)
	viperCfg.SetDefault("scan.authors", []string{})
	viperCfg.SetDefault("scan.top_n", DefaultScanTopN)
	viperCfg.SetDefault("scan.workers", DefaultScanWorkers)
	viperCfg.SetDefault("scan.skip_vendored", DefaultScanSkipVendored)

	viperCfg.SetDefault("backend.kind", DefaultBackendKind)
	viperCfg.SetDefault("backend.git_binary", DefaultBackendGitBinary)

	viperCfg.SetDefault("catalog.source", DefaultCatalogSource)
	viperCfg.SetDefault("catalog.file", DefaultCatalogFile)

	viperCfg.SetDefault("output.svg", DefaultOutputSVG)
	viperCfg.SetDefault("output.html", DefaultOutputHTML)
	viperCfg.SetDefault("output.format", DefaultOutputFormat)
	viperCfg.SetDefault("output.width", DefaultOutputWidth)
	viperCfg.SetDefault("output.height", DefaultOutputHeight)
	viperCfg.SetDefault("output.theme", DefaultOutputTheme)
	viperCfg.SetDefault("output.no_color", DefaultOutputNoColor)

	viperCfg.SetDefault("logging.level", DefaultLoggingLevel)
	viperCfg.SetDefault("logging.json", DefaultLoggingJSON)

	viperCfg.SetDefault("telemetry.otlp_endpoint", DefaultTelemetryOTLPEndpoint)
	viperCfg.SetDefault("telemetry.otlp_insecure", DefaultTelemetryOTLPInsecure)
	viperCfg.SetDefault("telemetry.otlp_headers", DefaultTelemetryOTLPHeaders)
	viperCfg.SetDefault("telemetry.metrics_file", DefaultTelemetryMetricsFile)
}
