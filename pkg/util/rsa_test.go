package util

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSAKeyParsing(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	parsed, err := InitRSAPrivateKey(string(privPEM))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(key))

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	pub, err := PEMToRSAPublicKey(string(pubPEM))
	require.NoError(t, err)
	assert.True(t, pub.Equal(&key.PublicKey))

	_, err = InitRSAPrivateKey("  ")
	assert.ErrorIs(t, err, ErrEmptyPEM)
	_, err = PEMToRSAPublicKey("not a key")
	assert.Error(t, err)
}
