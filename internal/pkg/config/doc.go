// Package config provides functionality for loading and managing application configuration.
//
// Settings are read from a YAML file through viper, overridden by GENNO_* environment
// variables and validated before use. A .env file next to the process is loaded first
// when present, so local runs can keep provider secrets out of the YAML file.
package config
