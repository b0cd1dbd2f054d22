package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/slicermeta/slicermeta/internal/catalog"
	"github.com/slicermeta/slicermeta/internal/translate"
	"github.com/slicermeta/slicermeta/pkg/slicermeta"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const (
	ConfigFileName = "slicermeta.yaml"
	EnvFileName    = ".env"
)

// Environment variables that override the config file.
const (
	EnvProfile      = slicermeta.EnvPrefix + "PROFILE"
	EnvOnFieldError = slicermeta.EnvPrefix + "ON_FIELD_ERROR"
	EnvBackup       = slicermeta.EnvPrefix + "BACKUP"
	EnvDryRun       = slicermeta.EnvPrefix + "DRY_RUN"
)

// Config holds the settings that may come from slicermeta.yaml.
type Config struct {
	Profile      string `yaml:"profile"`
	OnFieldError string `yaml:"on_field_error"`
	Backup       bool   `yaml:"backup"`
	DryRun       bool   `yaml:"dry_run"`
}

// Defaults returns the configuration used when nothing is configured.
func Defaults() *Config {
	return &Config{
		Profile:      catalog.ProfileDefault,
		OnFieldError: string(translate.PolicyAbort),
	}
}

// Load reads the config file at path. Unset keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", slicermeta.ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// Discover loads slicermeta.yaml from dir, falling back to defaults when
// the file does not exist.
func Discover(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, ConfigFileName))
	if errors.Is(err, ErrConfigNotFound) {
		return Defaults(), nil
	}
	return cfg, err
}

// LoadEnvFile reads KEY=VALUE pairs from a dotenv file without touching the
// process environment.
func LoadEnvFile(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("%w: %s: %v", slicermeta.ErrInvalidConfig, path, err)
	}
	return vars, nil
}

// EnvLookup returns a lookup that prefers non-empty process environment
// values and falls back to fileVars.
func EnvLookup(fileVars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}
}

// ApplyEnv overrides fields from SLICERMETA_* variables. Empty values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvProfile); ok && v != "" {
		c.Profile = v
	}
	if v, ok := lookup(EnvOnFieldError); ok && v != "" {
		c.OnFieldError = v
	}
	if err := applyBool(lookup, EnvBackup, &c.Backup); err != nil {
		return err
	}
	return applyBool(lookup, EnvDryRun, &c.DryRun)
}

func applyBool(lookup func(string) (string, bool), key string, dst *bool) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a boolean", slicermeta.ErrInvalidConfig, key, v)
	}
	*dst = b
	return nil
}

// Validate rejects unknown profiles and field error policies.
func (c *Config) Validate() error {
	var problems []string
	if _, err := catalog.ForProfile(c.Profile); err != nil {
		problems = append(problems, fmt.Sprintf("profile %q is not one of %s", c.Profile, strings.Join(catalog.Profiles(), ", ")))
	}
	if _, err := translate.ParsePolicy(c.OnFieldError); err != nil {
		problems = append(problems, fmt.Sprintf("on_field_error %q is not one of %s, %s", c.OnFieldError, translate.PolicyAbort, translate.PolicySkip))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", slicermeta.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
