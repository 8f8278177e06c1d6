package config

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/Veraticus/shopimpact/internal/sheets"
)

// sheetsSetting ties a sheets.* viper key to its GOOGLE_SHEETS_* fallback.
type sheetsSetting struct {
	dst  func(*sheets.Config) *string
	key    string
	env    string
	secret string
	path   bool
}

var sheetsSettings = []sheetsSetting{
	{key: "sheets.service_account_path", env: "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", path: true,
		dst: func(c *sheets.Config) *string { return &c.ServiceAccountPath }},
	{key: "sheets.client_id", env: "GOOGLE_SHEETS_CLIENT_ID",
		dst: func(c *sheets.Config) *string { return &c.ClientID }},
	{key: "sheets.client_secret", env: "GOOGLE_SHEETS_CLIENT_SECRET", secret: SecretClientSecret,
		dst: func(c *sheets.Config) *string { return &c.ClientSecret }},
	{key: "sheets.refresh_token", env: "GOOGLE_SHEETS_REFRESH_TOKEN", secret: SecretRefreshToken,
		dst: func(c *sheets.Config) *string { return &c.RefreshToken }},
	{key: "sheets.spreadsheet_id", env: "GOOGLE_SHEETS_SPREADSHEET_ID",
		dst: func(c *sheets.Config) *string { return &c.SpreadsheetID }},
	{key: "sheets.spreadsheet_name", env: "GOOGLE_SHEETS_SPREADSHEET_NAME",
		dst: func(c *sheets.Config) *string { return &c.SpreadsheetName }},
	{key: "sheets.timezone", env: "GOOGLE_SHEETS_TIMEZONE",
		dst: func(c *sheets.Config) *string { return &c.TimeZone }},
}

// LoadSheetsConfig builds the export configuration. Each setting comes from
// viper (config file or SHOPIMPACT_ env) first, then the matching
// GOOGLE_SHEETS_* variable, then the OS keyring for credentials, then
// sheets.DefaultConfig.
func LoadSheetsConfig() (*sheets.Config, error) {
	cfg := sheets.DefaultConfig()

	for _, s := range sheetsSettings {
		v := viper.GetString(s.key)
		if v == "" {
			v = os.Getenv(s.env)
		}
		if v == "" && s.secret != "" {
			v = secretOrEmpty(s.secret)
		}
		if v == "" {
			continue
		}
		if s.path {
			v = ExpandPath(v)
		}
		*s.dst(&cfg) = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func secretOrEmpty(name string) string {
	v, err := GetSecret(name)
	if err != nil && !errors.Is(err, ErrSecretNotFound) {
		slog.Debug("Keyring lookup failed", "secret", name, "error", err)
	}
	return v
}
