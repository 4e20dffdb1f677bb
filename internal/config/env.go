package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "ANIMCURVE"

// SetupEnv maps ANIMCURVE_* environment variables onto config keys. Nested
// keys use underscores, so render.workers is ANIMCURVE_RENDER_WORKERS.
func SetupEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// ReadFile reads the config file. An explicit path must exist; otherwise
// .animcurve.yaml is looked up in the working directory and the home
// directory, and a missing file isn't an error.
func ReadFile(path, home string) error {
	if path != "" {
		viper.SetConfigFile(path)
		return viper.ReadInConfig()
	}
	viper.SetConfigName(".animcurve")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home != "" {
		viper.AddConfigPath(home)
	}
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}
	return nil
}
