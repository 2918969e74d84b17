// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Store drivers supported by the application.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	StoreDriver   string `mapstructure:"STORE_DRIVER"`
	DBDriver      string `mapstructure:"DB_DRIVER"`
	DBSource      string `mapstructure:"DB_SOURCE"`
	Timezone      string `mapstructure:"TIMEZONE"`
	Environement  string `mapstructure:"GO_ENV"`
}

// Location returns the time zone used to split statements into calendar dates.
//
// An empty timezone means the local time of the process.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}

	return time.LoadLocation(c.Timezone)
}

// Load reads configuration from file or environment variables.
//
// A missing app.env is not an error, defaults and environment are used instead.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:3333")
	v.SetDefault("STORE_DRIVER", StoreMemory)
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_SOURCE", "")
	v.SetDefault("TIMEZONE", "")
	v.SetDefault("GO_ENV", "production")

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

	if c.StoreDriver != StoreMemory && c.StoreDriver != StorePostgres {
		return c, errors.New("unsupported STORE_DRIVER " + c.StoreDriver)
	}

	return c, nil
}
