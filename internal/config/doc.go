// Package config loads the command-line configuration from a JSON file and
// SIMPYSON_* environment variables.
package config
