package config

import (
	"path/filepath"
	"testing"

	"github.com/Veraticus/shopimpact/internal/storage"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("SHOPIMPACT_TEST_DIR", "/data")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", "/home/tester"},
		{"~/state.json", "/home/tester/state.json"},
		{"$SHOPIMPACT_TEST_DIR/state.db", "/data/state.db"},
		{"/abs/path", "/abs/path"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestLoadStorage(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		name       string
		driver     string
		path       string
		wantDriver string
		wantPath   string
		wantErr    bool
	}{
		{
			name:       "defaults to json",
			wantDriver: storage.DriverJSON,
			wantPath:   filepath.Join("/home/tester", ".local", "share", AppName, "shopimpact.json"),
		},
		{
			name:       "sqlite default path",
			driver:     storage.DriverSQLite,
			wantDriver: storage.DriverSQLite,
			wantPath:   filepath.Join("/home/tester", ".local", "share", AppName, "shopimpact.db"),
		},
		{
			name:       "pure go sqlite shares the db path",
			driver:     storage.DriverSQLitePure,
			wantDriver: storage.DriverSQLitePure,
			wantPath:   filepath.Join("/home/tester", ".local", "share", AppName, "shopimpact.db"),
		},
		{
			name:       "explicit path is expanded",
			driver:     storage.DriverJSON,
			path:       "~/footprint.json",
			wantDriver: storage.DriverJSON,
			wantPath:   "/home/tester/footprint.json",
		},
		{
			name:    "unknown driver",
			driver:  "mongo",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()
			viper.Set("storage.driver", tt.driver)
			viper.Set("storage.path", tt.path)

			got, err := LoadStorage()
			if tt.wantErr {
				assert.ErrorIs(t, err, storage.ErrUnknownDriver)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDriver, got.Driver)
			assert.Equal(t, tt.wantPath, got.Path)
		})
	}
}

func TestLoadSheetsConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	keyring.MockInit()
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "env-client")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "env-secret")
	t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "env-token")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "Env Footprint")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "")
	t.Setenv("GOOGLE_SHEETS_TIMEZONE", "")

	viper.Set("sheets.client_id", "viper-client")

	cfg, err := LoadSheetsConfig()
	require.NoError(t, err)
	assert.Equal(t, "viper-client", cfg.ClientID)
	assert.Equal(t, "env-secret", cfg.ClientSecret)
	assert.Equal(t, "env-token", cfg.RefreshToken)
	assert.Equal(t, "Env Footprint", cfg.SpreadsheetName)
	assert.Empty(t, cfg.SpreadsheetID)
	assert.Equal(t, "UTC", cfg.TimeZone, "default kept")
}

func TestLoadSheetsConfig_NoAuth(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	keyring.MockInit()
	for _, key := range []string{
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
		"GOOGLE_SHEETS_CLIENT_ID",
		"GOOGLE_SHEETS_CLIENT_SECRET",
		"GOOGLE_SHEETS_REFRESH_TOKEN",
	} {
		t.Setenv(key, "")
	}

	_, err := LoadSheetsConfig()
	assert.Error(t, err)
}
