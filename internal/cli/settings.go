package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slicermeta/slicermeta/internal/config"
	"github.com/slicermeta/slicermeta/pkg/slicermeta"
)

// settingsFlagValues holds the persistent flags that locate configuration.
type settingsFlagValues struct {
	configPath string
	envFile    string
}

var settingsFlags settingsFlagValues

// loadSettings resolves configuration with precedence
// defaults < slicermeta.yaml < environment (.env file, then process) < flags.
// Only explicitly given paths must exist.
func loadSettings(cmd *cobra.Command, overrides func(cfg *config.Config)) (*config.Config, error) {
	verbose := getVerboseFlag(cmd)

	var cfg *config.Config
	var err error
	if settingsFlags.configPath != "" {
		cfg, err = config.Load(settingsFlags.configPath)
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: config file %s does not exist", slicermeta.ErrInvalidConfig, settingsFlags.configPath)
		}
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}

	envPath := settingsFlags.envFile
	if envPath == "" {
		envPath = config.EnvFileName
	}
	envVars, err := config.LoadEnvFile(envPath)
	switch {
	case errors.Is(err, config.ErrConfigNotFound) && settingsFlags.envFile == "":
		envVars = nil
	case errors.Is(err, config.ErrConfigNotFound):
		return nil, fmt.Errorf("%w: env file %s does not exist", slicermeta.ErrInvalidConfig, envPath)
	case err != nil:
		return nil, err
	}

	if err := cfg.ApplyEnv(config.EnvLookup(envVars)); err != nil {
		return nil, err
	}
	if overrides != nil {
		overrides(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "[VERBOSE] Settings: profile=%s on_field_error=%s backup=%t dry_run=%t\n",
			cfg.Profile, cfg.OnFieldError, cfg.Backup, cfg.DryRun)
	}
	return cfg, nil
}
