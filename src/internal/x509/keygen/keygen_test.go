// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package keygen_test

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/cr8cert/src/internal/x509/keygen"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy source unavailable") }

func TestGenerate_SignVerify(t *testing.T) {
	for _, bits := range []int{2048, 3072} {
		t.Run(rsaName(bits), func(t *testing.T) {
			key, err := keygen.Generate(bits)
			require.NoError(t, err)
			assert.Equal(t, bits, key.N.BitLen())

			digest := sha256.Sum256([]byte("cr8cert"))
			sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
			require.NoError(t, err)

			assert.NoError(t, rsa.VerifyPKCS1v15(&key.PublicKey, crypto.SHA256, digest[:], sig))
		})
	}
}

func TestGenerate_FreshKeys(t *testing.T) {
	a, err := keygen.Generate(keygen.DefaultBits)
	require.NoError(t, err)
	b, err := keygen.Generate(keygen.DefaultBits)
	require.NoError(t, err)

	assert.False(t, a.Equal(b), "two calls must not return the same key")
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		gen  *keygen.Generator
		bits int
	}{
		{name: "Unsupported size", gen: keygen.New(), bits: 1024},
		{name: "Zero size", gen: keygen.New(), bits: 0},
		{name: "Entropy failure", gen: keygen.NewWithReader(failingReader{}), bits: 2048},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := tt.gen.Generate(tt.bits)
			assert.Nil(t, key)
			assert.ErrorIs(t, err, keygen.ErrKeyGeneration)
		})
	}
}

func TestIsSupported(t *testing.T) {
	assert.True(t, keygen.IsSupported(2048))
	assert.True(t, keygen.IsSupported(3072))
	assert.True(t, keygen.IsSupported(4096))
	assert.False(t, keygen.IsSupported(512))
}

func rsaName(bits int) string {
	switch bits {
	case 2048:
		return "RSA-2048"
	case 3072:
		return "RSA-3072"
	default:
		return "RSA"
	}
}
