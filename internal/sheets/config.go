// Package sheets exports footprint reports to Google Sheets.
package sheets

import (
	"errors"
	"fmt"
	"time"
)

// DefaultSpreadsheetName is used when a new spreadsheet has to be created.
const DefaultSpreadsheetName = "ShopImpact Footprint"

// Configuration errors.
var (
	ErrNoAuth        = errors.New("no Google Sheets authentication configured")
	ErrAmbiguousAuth = errors.New("both OAuth and service account credentials configured")
)

// AuthMethod names how the writer authenticates.
type AuthMethod string

// Supported authentication methods.
const (
	AuthNone           AuthMethod = ""
	AuthOAuth          AuthMethod = "oauth"
	AuthServiceAccount AuthMethod = "service_account"
)

// Config describes where the report goes and how the writer talks to the API.
// Either ServiceAccountPath or the three OAuth fields must be set, not both.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	TimeZone           string
	BatchSize          int
	RetryAttempts      int
	RetryDelay         time.Duration
	EnableFormatting   bool
}

// DefaultConfig returns export settings without credentials.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName:  DefaultSpreadsheetName,
		TimeZone:         "UTC",
		BatchSize:        500,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
		EnableFormatting: true,
	}
}

// Auth reports which credentials are present. Partial OAuth credentials count
// as none.
func (c Config) Auth() AuthMethod {
	oauth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	switch {
	case oauth && c.ServiceAccountPath != "":
		return AuthNone
	case oauth:
		return AuthOAuth
	case c.ServiceAccountPath != "":
		return AuthServiceAccount
	default:
		return AuthNone
	}
}

// Validate checks credentials and the batching and retry knobs.
func (c Config) Validate() error {
	if c.Auth() == AuthNone {
		if c.ServiceAccountPath != "" {
			return ErrAmbiguousAuth
		}
		return ErrNoAuth
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch size must be at least 1, got %d", c.BatchSize)
	}
	if c.RetryAttempts < 0 || c.RetryDelay < 0 {
		return fmt.Errorf("retry settings cannot be negative (attempts %d, delay %s)", c.RetryAttempts, c.RetryDelay)
	}
	return nil
}
