package lib

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFlag = "config"

type BaseConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// InitializeConfig standardises config initialization across all apps.
//
// Config is read from a yaml file at defaultPath, which can be overridden
// with the --config flag. Keys present in defaultConfig but absent from the
// yaml file fall back to their default values. Env vars override config keys
// when the env var is the uppercased key name with "." replaced by "_"
// (e.g. STORE_BACKEND overrides store.backend).
//
// The log_level key is parsed into the global zerolog level as part of
// initialization, so every binary gets consistent logging from its config.
//
// targetStruct should be a pointer to a struct the config unmarshals to.
func InitializeConfig(defaultPath string, defaultConfig map[string]interface{}, targetStruct interface{}) error {

	pflag.String(configFlag, defaultPath, "The config file path.")
	pflag.Parse()

	err := viper.BindPFlags(pflag.CommandLine)
	if err != nil {
		return err
	}

	configFile := viper.GetString(configFlag)

	if !filepath.IsAbs(configFile) {
		configFile, err = filepath.Abs(configFile)
		if err != nil {
			return err
		}
	}

	for k, v := range defaultConfig {
		viper.SetDefault(k, v)
	}

	viper.SetConfigName(strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile)))
	viper.AddConfigPath(filepath.Dir(configFile))

	// An env var must also exist as a key in viper's config for viper to be
	// able to read the env var.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	err = viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		log.Warn().Err(err).Msg("default settings applied")
	} else if err != nil {
		return err
	}

	var bc BaseConfig
	if err := viper.Unmarshal(&bc); err != nil {
		return err
	}

	lvl, err := zerolog.ParseLevel(bc.LogLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)

	return viper.Unmarshal(targetStruct)
}
