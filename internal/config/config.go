package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigName is resolved relative to the working directory, with
	// or without a YAML extension.
	DefaultConfigName = "config/default"
	// DefaultEnvFile is loaded when present and silently skipped otherwise.
	DefaultEnvFile = ".env"

	defaultLogLevel = "info"
)

// Environment variable names read by Load.
const (
	EnvMarvelPublicKey  = "MARVEL_API_PUBLIC_KEY"
	EnvMarvelPrivateKey = "MARVEL_API_PRIVATE_KEY"
	EnvComicVineAPIKey  = "COMICVINE_API_KEY"
	EnvLogLevel         = "COMIC_LOG_LEVEL"
)

var configExtensions = []string{"", ".yaml", ".yml"}

// Secret holds a credential. It never prints its value.
type Secret string

const redacted = "[REDACTED]"

func (s Secret) String() string {
	return redacted
}

// MarshalText keeps secrets out of encoded output such as JSON logs.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}

// Reveal returns the raw credential.
func (s Secret) Reveal() string {
	return string(s)
}

// Config is the resolved, read-only settings object.
type Config struct {
	Database Database
	API      API
	Secrets  Secrets
	LogLevel string
	// Source is the settings file the values were read from.
	Source string
}

// Database holds storage settings.
type Database struct {
	URL string
}

// API holds the base URLs of the external comic data providers.
type API struct {
	MarvelBaseURL    string
	ComicVineBaseURL string
}

// Secrets holds the provider credentials taken from the environment.
type Secrets struct {
	MarvelPublicKey  Secret
	MarvelPrivateKey Secret
	ComicVineAPIKey  Secret
}

// Options selects the sources Load reads from. The zero value uses the
// default file locations and the real process environment.
type Options struct {
	// ConfigFile is an explicit settings file path. It must exist as given.
	ConfigFile string
	// EnvFile is an explicit .env path. It must exist as given.
	EnvFile string
	// LogLevel overrides every other log level source when non-empty.
	LogLevel string
	// LookupEnv replaces os.LookupEnv, primarily for tests.
	LookupEnv func(key string) (string, bool)
}

// yamlConfig represents the settings file structure.
type yamlConfig struct {
	Database struct {
		URL *string `yaml:"url"`
	} `yaml:"database"`
	API struct {
		MarvelBaseURL    *string `yaml:"marvel_base_url"`
		ComicVineBaseURL *string `yaml:"comicvine_base_url"`
	} `yaml:"api"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load resolves configuration from its sources. Log level precedence:
// Options.LogLevel > environment > YAML > default.
// A missing environment variable is reported as *MissingEnvError; every other
// failure is a configuration source error.
func Load(opts Options) (*Config, error) {
	path, err := resolveConfigPath(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	yamlCfg, err := loadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load YAML config: %w", err)
	}

	cfg := &Config{
		LogLevel: defaultLogLevel,
		Source:   path,
	}
	if err := applyYAMLConfig(cfg, yamlCfg); err != nil {
		return nil, err
	}

	lookup, err := newEnvLookup(opts)
	if err != nil {
		return nil, err
	}

	if err := applyEnvConfig(cfg, lookup); err != nil {
		return nil, err
	}

	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.LogLevel = level
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("%w: log level %q", ErrInvalidValue, cfg.LogLevel)
	}

	return cfg, nil
}

// resolveConfigPath returns explicit as-is, or the first existing candidate
// for DefaultConfigName.
func resolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	for _, ext := range configExtensions {
		candidate := DefaultConfigName + ext
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("configuration file %q not found", DefaultConfigName)
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig copies the settings file into cfg. A required key that is
// absent or null is an error; present values are taken verbatim.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	required := []struct {
		key    string
		value  *string
		target *string
	}{
		{"database.url", yamlCfg.Database.URL, &cfg.Database.URL},
		{"api.marvel_base_url", yamlCfg.API.MarvelBaseURL, &cfg.API.MarvelBaseURL},
		{"api.comicvine_base_url", yamlCfg.API.ComicVineBaseURL, &cfg.API.ComicVineBaseURL},
	}
	for _, r := range required {
		if r.value == nil {
			return fmt.Errorf("%w %q in %s", ErrMissingKey, r.key, cfg.Source)
		}
		*r.target = *r.value
	}

	if level := strings.TrimSpace(yamlCfg.Log.Level); level != "" {
		cfg.LogLevel = level
	}
	return nil
}

// newEnvLookup merges the process environment over the optional .env file
// without mutating the process environment. Any problem with the default
// .env file is ignored; an explicit one must be readable and well formed.
func newEnvLookup(opts Options) (func(string) (string, bool), error) {
	base := opts.LookupEnv
	if base == nil {
		base = os.LookupEnv
	}

	path := opts.EnvFile
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}

	fileVars, err := godotenv.Read(path)
	if err != nil {
		if !explicit {
			return base, nil
		}
		return nil, fmt.Errorf("load env file %s: %w", path, err)
	}

	return func(key string) (string, bool) {
		if v, ok := base(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}, nil
}

// applyEnvConfig reads the required credentials and optional overrides.
func applyEnvConfig(cfg *Config, lookup func(string) (string, bool)) error {
	secrets := []struct {
		name   string
		target *Secret
	}{
		{EnvMarvelPublicKey, &cfg.Secrets.MarvelPublicKey},
		{EnvMarvelPrivateKey, &cfg.Secrets.MarvelPrivateKey},
		{EnvComicVineAPIKey, &cfg.Secrets.ComicVineAPIKey},
	}
	for _, s := range secrets {
		v, ok := lookup(s.name)
		if !ok {
			return &MissingEnvError{Name: s.name}
		}
		*s.target = Secret(v)
	}

	if level, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(level) != "" {
		cfg.LogLevel = strings.TrimSpace(level)
	}

	return nil
}
