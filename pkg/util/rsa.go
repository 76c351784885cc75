package util

import (
	"crypto/rsa"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptyPEM = errors.New("empty PEM input")

// InitRSAPrivateKey parses a PKCS#1 or PKCS#8 PEM encoded RSA private key.
func InitRSAPrivateKey(pemString string) (*rsa.PrivateKey, error) {
	if strings.TrimSpace(pemString) == "" {
		return nil, ErrEmptyPEM
	}
	return jwt.ParseRSAPrivateKeyFromPEM([]byte(pemString))
}

// PEMToRSAPublicKey parses a PEM encoded RSA public key or certificate.
func PEMToRSAPublicKey(pemString string) (*rsa.PublicKey, error) {
	if strings.TrimSpace(pemString) == "" {
		return nil, ErrEmptyPEM
	}
	return jwt.ParseRSAPublicKeyFromPEM([]byte(pemString))
}
