// Package config resolves application settings from viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/shopimpact/internal/storage"
	"github.com/spf13/viper"
)

// AppName names the config and data directories.
const AppName = "shopimpact"

// DefaultMetricsAddr is where `serve` listens when metrics.addr is unset.
const DefaultMetricsAddr = ":9464"

// Storage holds the resolved storage settings.
type Storage struct {
	Driver string
	Path   string
}

// Dir returns the configuration directory, $HOME/.config/shopimpact.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", AppName)
	}
	return filepath.Join(home, ".config", AppName)
}

// DataDir returns the data directory, $HOME/.local/share/shopimpact.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".local", "share", AppName)
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// DefaultStoragePath returns the default state location for driver.
func DefaultStoragePath(driver string) string {
	ext := ".json"
	if storage.IsSQLite(driver) {
		ext = ".db"
	}
	return filepath.Join(DataDir(), AppName+ext)
}

// SetDefaults registers default values with viper.
func SetDefaults() {
	viper.SetDefault("storage.driver", storage.DriverJSON)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("metrics.addr", DefaultMetricsAddr)
}

// LoadStorage resolves storage.driver and storage.path from viper.
func LoadStorage() (Storage, error) {
	driver := viper.GetString("storage.driver")
	if driver == "" {
		driver = storage.DriverJSON
	}
	if driver != storage.DriverJSON && !storage.IsSQLite(driver) {
		return Storage{}, fmt.Errorf("%w: %q (use %q, %q or %q)", storage.ErrUnknownDriver, driver,
			storage.DriverJSON, storage.DriverSQLite, storage.DriverSQLitePure)
	}

	path := ExpandPath(viper.GetString("storage.path"))
	if path == "" {
		path = DefaultStoragePath(driver)
	}

	return Storage{Driver: driver, Path: path}, nil
}

// ExpandPath expands a leading ~ and any $VAR references in path.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return os.ExpandEnv(path)
}
