// Package config provides centralized configuration management for the sales
// analytics pipeline. It handles loading configuration from multiple sources,
// validation, and path resolution for all input and output artifacts.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Optional YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern SALES_* for namespacing:
//
//	SALES_LOGGING_LEVEL=debug
//	SALES_PATHS_BASE_DIR=/srv/sales
//	SALES_CATALOG_BASE_URL=https://dummyjson.com/products
//	SALES_REPORT_TOP_N=5
//
// # Configuration File
//
// A config.yaml in the working directory (or the file named by
// SALES_CONFIG_FILE) is merged underneath the environment; any value the
// environment sets wins over the file.
//
// # Path Resolution
//
// Relative paths are resolved against Paths.BaseDir, which defaults to the
// working directory. Helpers such as LedgerPath and ReportPath return the
// fully resolved artifact locations.
package config
