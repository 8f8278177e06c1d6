package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zalando/go-keyring"
)

// Keyring errors.
var (
	ErrSecretNotFound     = errors.New("secret not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	ErrUnknownSecret      = errors.New("unknown secret")
	ErrInvalidSecret      = errors.New("invalid secret")
)

// Secret names stored under the AppName keyring service.
const (
	SecretClientSecret = "client_secret"
	SecretRefreshToken = "refresh_token"
)

// SecretNames lists the settings that may live in the OS keyring.
func SecretNames() []string {
	return []string{SecretClientSecret, SecretRefreshToken}
}

func checkSecretName(name string) error {
	if !slices.Contains(SecretNames(), name) {
		return fmt.Errorf("%w: %q", ErrUnknownSecret, name)
	}
	return nil
}

// GetSecret reads a Sheets credential from the OS keyring.
func GetSecret(name string) (string, error) {
	if err := checkSecretName(name); err != nil {
		return "", err
	}
	value, err := keyring.Get(AppName, name)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrSecretNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

// SetSecret stores a Sheets credential in the OS keyring.
func SetSecret(name, value string) error {
	if err := checkSecretName(name); err != nil {
		return err
	}
	if value == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidSecret, name)
	}
	if err := keyring.Set(AppName, name, value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", name, err)
	}
	return nil
}

// DeleteSecret removes a Sheets credential from the OS keyring.
func DeleteSecret(name string) error {
	if err := checkSecretName(name); err != nil {
		return err
	}
	err := keyring.Delete(AppName, name)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrSecretNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s from keyring: %w", name, err)
	}
	return nil
}
