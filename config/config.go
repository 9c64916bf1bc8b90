// Package config loads the api settings from a YAML file, a .env file and
// JPQL_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rel/jpql-example/jpql"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const envPrefix = "JPQL"

// AppFs is the file system configuration is read from.
var AppFs = afero.NewOsFs()

// ErrInvalidNaming error.
var ErrInvalidNaming = errors.New("config: naming must be counter or random")

// Config of the api.
type Config struct {
	Addr            string        `mapstructure:"addr"`
	DSN             string        `mapstructure:"dsn"`
	Naming          string        `mapstructure:"naming"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// QueryOptions returns the builder options matching the naming setting.
func (c Config) QueryOptions() []jpql.Option {
	if c.Naming == "random" {
		return []jpql.Option{jpql.WithNamer(jpql.RandomNames(nil))}
	}

	return nil
}

// Load configuration. An empty path looks for config.yaml in the working
// directory and in ~/.config/jpql-example, a missing file is not an error
// in that case.
func Load(path string) (Config, error) {
	var (
		cfg Config
		v   = viper.New()
	)

	v.SetFs(AppFs)
	v.SetConfigType("yaml")
	v.SetDefault("addr", ":3000")
	v.SetDefault("dsn", "")
	v.SetDefault("naming", "counter")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return cfg, err
		}

		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(home, ".config", "jpql-example"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := loadDotenv(v, ".env"); err != nil {
		return cfg, err
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	if cfg.Naming != "counter" && cfg.Naming != "random" {
		return cfg, fmt.Errorf("%w, got %q", ErrInvalidNaming, cfg.Naming)
	}

	return cfg, nil
}

// loadDotenv applies JPQL_ variables of a .env file. Variables already set in
// the environment win.
func loadDotenv(v *viper.Viper, name string) error {
	content, err := afero.ReadFile(AppFs, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return err
	}

	values, err := godotenv.Unmarshal(string(content))
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", name, err)
	}

	for key, value := range values {
		if !strings.HasPrefix(key, envPrefix+"_") {
			continue
		}

		if _, ok := os.LookupEnv(key); ok {
			continue
		}

		v.Set(strings.ToLower(strings.TrimPrefix(key, envPrefix+"_")), value)
	}

	return nil
}
