// Package config builds the process-wide settings once at startup from a YAML
// settings file, an optional .env file and the process environment. Required
// keys have no defaults: a missing file key or environment variable aborts
// startup before any command runs.
package config
