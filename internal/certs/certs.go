// Package certs keeps a self-signed localhost certificate for serving the
// metrics endpoint over HTTPS.
package certs

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"
)

// Validity is how long a generated certificate lasts.
const Validity = 365 * 24 * time.Hour

// Store loads or generates the certificate under a directory.
type Store struct {
	now      func() time.Time
	certPath string
	keyPath  string
}

// NewStore keeps shopimpact.crt and shopimpact.key in dir.
func NewStore(dir string) *Store {
	return &Store{
		now:      time.Now,
		certPath: filepath.Join(dir, "shopimpact.crt"),
		keyPath:  filepath.Join(dir, "shopimpact.key"),
	}
}

// Paths returns the certificate and key file locations.
func (s *Store) Paths() (cert, key string) {
	return s.certPath, s.keyPath
}

// Certificate returns the stored certificate, generating a new one when the
// files are missing, unreadable or no longer valid for localhost.
func (s *Store) Certificate() (tls.Certificate, error) {
	cert, err := tls.LoadX509KeyPair(s.certPath, s.keyPath)
	if err == nil {
		if err = s.check(cert); err == nil {
			return cert, nil
		}
	}
	if !errors.Is(err, os.ErrNotExist) {
		// stale or damaged; replaced below
		_ = os.Remove(s.certPath)
		_ = os.Remove(s.keyPath)
	}
	return s.generate()
}

func (s *Store) check(cert tls.Certificate) error {
	if len(cert.Certificate) == 0 {
		return fmt.Errorf("no certificates found")
	}
	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return fmt.Errorf("failed to parse certificate: %w", err)
	}
	now := s.now()
	if now.Before(leaf.NotBefore) || now.After(leaf.NotAfter) {
		return fmt.Errorf("certificate expired or not yet valid")
	}
	return leaf.VerifyHostname("localhost")
}

func (s *Store) generate() (tls.Certificate, error) {
	if err := os.MkdirAll(filepath.Dir(s.certPath), 0o700); err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to create certificate directory: %w", err)
	}

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to generate key: %w", err)
	}
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 62))
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to generate serial: %w", err)
	}

	now := s.now()
	template := x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{Organization: []string{"ShopImpact"}, CommonName: "localhost"},
		NotBefore:             now.Add(-time.Minute),
		NotAfter:              now.Add(Validity),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IPAddresses:           []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
		DNSNames:              []string{"localhost"},
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to create certificate: %w", err)
	}
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to encode key: %w", err)
	}

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	if err := os.WriteFile(s.certPath, certPEM, 0o600); err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to write certificate: %w", err)
	}
	if err := os.WriteFile(s.keyPath, keyPEM, 0o600); err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to write key: %w", err)
	}

	return tls.X509KeyPair(certPEM, keyPEM)
}
