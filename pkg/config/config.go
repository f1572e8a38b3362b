package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var loadEnvOnce sync.Once

// MustNew panics when the environment cannot satisfy T's envconfig tags.
func MustNew[T any](prefix string) *T {
	conf, err := New[T](prefix)
	if err != nil {
		panic(err)
	}
	return conf
}

// New loads a .env file (when present) into the process environment, then
// populates T from environment variables with the given prefix.
func New[T any](prefix string) (*T, error) {
	var loadErr error
	loadEnvOnce.Do(func() {
		loadErr = exportEnvFile(".env")
	})
	if loadErr != nil {
		return nil, fmt.Errorf("failed to load env file: %w", loadErr)
	}

	var conf T
	if err := envconfig.Process(prefix, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func exportEnvFile(filepath string) error {
	info, err := os.Stat(filepath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}

	viper.SetConfigFile(filepath)
	if err := viper.ReadInConfig(); err != nil {
		return err
	}

	for k, v := range viper.AllSettings() {
		if err := os.Setenv(strings.ToUpper(k), fmt.Sprint(v)); err != nil {
			return err
		}
	}
	return nil
}
