package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func oauthConfig() Config {
	c := DefaultConfig()
	c.ClientID = "client"
	c.ClientSecret = "secret"
	c.RefreshToken = "token"
	return c
}

func serviceAccountConfig() Config {
	c := DefaultConfig()
	c.ServiceAccountPath = "/keys/shopimpact.json"
	return c
}

func TestConfig_Auth(t *testing.T) {
	partial := oauthConfig()
	partial.ClientSecret = ""

	both := oauthConfig()
	both.ServiceAccountPath = "/keys/shopimpact.json"

	assert.Equal(t, AuthOAuth, oauthConfig().Auth())
	assert.Equal(t, AuthServiceAccount, serviceAccountConfig().Auth())
	assert.Equal(t, AuthNone, partial.Auth())
	assert.Equal(t, AuthNone, both.Auth())
	assert.Equal(t, AuthNone, DefaultConfig().Auth())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		wantIs  error
		mutate  func(*Config)
		base    func() Config
		name    string
		wantMsg string
	}{
		{name: "oauth", base: oauthConfig},
		{name: "service account", base: serviceAccountConfig},
		{name: "no credentials", base: DefaultConfig, wantIs: ErrNoAuth},
		{
			name:   "missing refresh token",
			base:   oauthConfig,
			mutate: func(c *Config) { c.RefreshToken = "" },
			wantIs: ErrNoAuth,
		},
		{
			name:   "both methods",
			base:   oauthConfig,
			mutate: func(c *Config) { c.ServiceAccountPath = "/keys/shopimpact.json" },
			wantIs: ErrAmbiguousAuth,
		},
		{
			name:    "zero batch size",
			base:    serviceAccountConfig,
			mutate:  func(c *Config) { c.BatchSize = 0 },
			wantMsg: "batch size must be at least 1",
		},
		{
			name:    "negative retries",
			base:    serviceAccountConfig,
			mutate:  func(c *Config) { c.RetryAttempts = -1 },
			wantMsg: "retry settings cannot be negative",
		},
		{
			name:    "negative delay",
			base:    oauthConfig,
			mutate:  func(c *Config) { c.RetryDelay = -time.Second },
			wantMsg: "retry settings cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.base()
			if tt.mutate != nil {
				tt.mutate(&c)
			}
			err := c.Validate()
			switch {
			case tt.wantIs != nil:
				assert.ErrorIs(t, err, tt.wantIs)
			case tt.wantMsg != "":
				assert.ErrorContains(t, err, tt.wantMsg)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, DefaultSpreadsheetName, c.SpreadsheetName)
	assert.Equal(t, "UTC", c.TimeZone)
	assert.True(t, c.EnableFormatting)
	assert.Positive(t, c.BatchSize)
}
