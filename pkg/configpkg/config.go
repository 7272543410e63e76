// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/go-petr/pet-ledger/pkg/currencypkg"
)

// Config stores all configuration of the application.
//
// The values are read by viper from an optional config file or environment variables.
type Config struct {
	DataFile     string `mapstructure:"DATA_FILE"`
	Environement string `mapstructure:"GO_ENV"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	LogFile      string `mapstructure:"LOG_FILE"`
	Currency     string `mapstructure:"CURRENCY"`
	ClearScreen  bool   `mapstructure:"CLEAR_SCREEN"`
}

// Default returns the configuration used when neither a config file nor environment variables are set.
func Default() Config {
	return Config{
		DataFile:     "accounts.json",
		Environement: "production",
		LogLevel:     zerolog.WarnLevel.String(),
		Currency:     currencypkg.USD,
		ClearScreen:  true,
	}
}

// Load read configuration from file or environment variables.
//
// A missing app.env file in path is not an error.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	d := Default()
	v.SetDefault("DATA_FILE", d.DataFile)
	v.SetDefault("GO_ENV", d.Environement)
	v.SetDefault("LOG_LEVEL", d.LogLevel)
	v.SetDefault("LOG_FILE", d.LogFile)
	v.SetDefault("CURRENCY", d.Currency)
	v.SetDefault("CLEAR_SCREEN", d.ClearScreen)

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	if err := c.validate(); err != nil {
		return c, err
	}

	return c, nil
}

func (c Config) validate() error {
	if c.DataFile == "" {
		return errors.New("DATA_FILE must not be empty")
	}

	if !currencypkg.IsSupportedCurrency(c.Currency) {
		return fmt.Errorf("unsupported CURRENCY %q", c.Currency)
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}

	return nil
}
