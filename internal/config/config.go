package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Catalog CatalogConfig `yaml:"catalog" envconfig:"CATALOG"`
	Report  ReportConfig  `yaml:"report" envconfig:"REPORT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/salescli.log"`
}

// PathsConfig contains file system paths configuration.
// Relative paths are resolved against BaseDir (working directory by default).
type PathsConfig struct {
	BaseDir      string `yaml:"base_dir" envconfig:"BASE_DIR"`
	DataDir      string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	OutputDir    string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"output"`
	LogsDir      string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
	LedgerFile   string `yaml:"ledger_file" envconfig:"LEDGER_FILE" default:"sales_data.txt"`
	EnrichedFile string `yaml:"enriched_file" envconfig:"ENRICHED_FILE" default:"enriched_sales_data.txt"`
	ReportFile   string `yaml:"report_file" envconfig:"REPORT_FILE" default:"sales_report.txt"`
	WorkbookFile string `yaml:"workbook_file" envconfig:"WORKBOOK_FILE" default:"sales_report.xlsx"`
}

// CatalogConfig contains remote product catalog configuration
type CatalogConfig struct {
	BaseURL string        `yaml:"base_url" envconfig:"BASE_URL" default:"https://dummyjson.com/products" validate:"required,url"`
	Limit   int           `yaml:"limit" envconfig:"LIMIT" default:"100" validate:"gt=0,lte=100"`
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"10s" validate:"gt=0"`
}

// ReportConfig contains report rendering configuration
type ReportConfig struct {
	CurrencySymbol string `yaml:"currency_symbol" envconfig:"CURRENCY_SYMBOL" default:"₹" validate:"required"`
	TopN           int    `yaml:"top_n" envconfig:"TOP_N" default:"5" validate:"gt=0"`
	LowThreshold   int    `yaml:"low_threshold" envconfig:"LOW_THRESHOLD" default:"10" validate:"gt=0"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("SALES", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs overlays file-provided values onto the env-processed config.
// envconfig has already filled defaults into env, so a zero-value check
// cannot tell "defaulted" from "explicitly set"; each field's environment
// variable is consulted instead. Set variables always win over the file.
func mergeConfigs(file, env Config) Config {
	merged := env

	setString := func(dst *string, v, key string) {
		if v != "" && !envSet(key) {
			*dst = v
		}
	}
	setInt := func(dst *int, v int, key string) {
		if v != 0 && !envSet(key) {
			*dst = v
		}
	}
	setDuration := func(dst *time.Duration, v time.Duration, key string) {
		if v != 0 && !envSet(key) {
			*dst = v
		}
	}

	setString(&merged.Logging.Level, file.Logging.Level, "SALES_LOGGING_LEVEL")
	setString(&merged.Logging.Format, file.Logging.Format, "SALES_LOGGING_FORMAT")
	setString(&merged.Logging.Output, file.Logging.Output, "SALES_LOGGING_OUTPUT")
	setString(&merged.Logging.FilePath, file.Logging.FilePath, "SALES_LOGGING_FILE_PATH")

	setString(&merged.Paths.BaseDir, file.Paths.BaseDir, "SALES_PATHS_BASE_DIR")
	setString(&merged.Paths.DataDir, file.Paths.DataDir, "SALES_PATHS_DATA_DIR")
	setString(&merged.Paths.OutputDir, file.Paths.OutputDir, "SALES_PATHS_OUTPUT_DIR")
	setString(&merged.Paths.LogsDir, file.Paths.LogsDir, "SALES_PATHS_LOGS_DIR")
	setString(&merged.Paths.LedgerFile, file.Paths.LedgerFile, "SALES_PATHS_LEDGER_FILE")
	setString(&merged.Paths.EnrichedFile, file.Paths.EnrichedFile, "SALES_PATHS_ENRICHED_FILE")
	setString(&merged.Paths.ReportFile, file.Paths.ReportFile, "SALES_PATHS_REPORT_FILE")
	setString(&merged.Paths.WorkbookFile, file.Paths.WorkbookFile, "SALES_PATHS_WORKBOOK_FILE")

	setString(&merged.Catalog.BaseURL, file.Catalog.BaseURL, "SALES_CATALOG_BASE_URL")
	setInt(&merged.Catalog.Limit, file.Catalog.Limit, "SALES_CATALOG_LIMIT")
	setDuration(&merged.Catalog.Timeout, file.Catalog.Timeout, "SALES_CATALOG_TIMEOUT")

	setString(&merged.Report.CurrencySymbol, file.Report.CurrencySymbol, "SALES_REPORT_CURRENCY_SYMBOL")
	setInt(&merged.Report.TopN, file.Report.TopN, "SALES_REPORT_TOP_N")
	setInt(&merged.Report.LowThreshold, file.Report.LowThreshold, "SALES_REPORT_LOW_THRESHOLD")

	return merged
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

// resolvePaths makes all configured paths absolute relative to BaseDir
func (c *Config) resolvePaths() error {
	if c.Paths.BaseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine working directory: %w", err)
		}
		c.Paths.BaseDir = wd
	}

	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(c.Paths.BaseDir, p)
	}

	c.Paths.DataDir = resolve(c.Paths.DataDir)
	c.Paths.OutputDir = resolve(c.Paths.OutputDir)
	c.Paths.LogsDir = resolve(c.Paths.LogsDir)
	if !filepath.IsAbs(c.Logging.FilePath) {
		c.Logging.FilePath = filepath.Join(c.Paths.BaseDir, c.Logging.FilePath)
	}
	return nil
}

// validate checks configuration invariants
func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c.Catalog); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if err := v.Struct(c.Report); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return nil
}

// configFilePath returns the config file location, overridable via env
func configFilePath() string {
	if path := os.Getenv("SALES_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// LedgerPath returns the full path to the input ledger file
func (c *Config) LedgerPath() string {
	if filepath.IsAbs(c.Paths.LedgerFile) {
		return c.Paths.LedgerFile
	}
	return filepath.Join(c.Paths.DataDir, c.Paths.LedgerFile)
}

// EnrichedPath returns the full path to the enriched export file
func (c *Config) EnrichedPath() string {
	return filepath.Join(c.Paths.DataDir, c.Paths.EnrichedFile)
}

// ReportPath returns the full path to the text report file
func (c *Config) ReportPath() string {
	return filepath.Join(c.Paths.OutputDir, c.Paths.ReportFile)
}

// WorkbookPath returns the full path to the Excel workbook export
func (c *Config) WorkbookPath() string {
	return filepath.Join(c.Paths.OutputDir, c.Paths.WorkbookFile)
}

// EnsureDirectories creates the data, output and logs directories if needed
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.OutputDir, c.Paths.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
