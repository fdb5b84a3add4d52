// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package keygen

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"io"
	"slices"
)

// ErrKeyGeneration indicates that a key pair could not be produced, either because
// the bit length is unsupported or because the entropy source failed.
var ErrKeyGeneration = errors.New("keygen: key generation failed")

// DefaultBits is the RSA modulus size used when none is configured.
const DefaultBits = 2048

// SupportedBits lists the RSA modulus sizes accepted by [Generate].
var SupportedBits = []int{2048, 3072, 4096}

// Generator produces RSA key pairs from an entropy source.
type Generator struct {
	rand io.Reader
}

// New returns a Generator reading from [crypto/rand.Reader].
func New() *Generator { return &Generator{rand: rand.Reader} }

// NewWithReader returns a Generator that reads entropy from r.
// It exists so tests can simulate an unavailable entropy source.
func NewWithReader(r io.Reader) *Generator { return &Generator{rand: r} }

// IsSupported reports whether bits is an accepted RSA modulus size.
func IsSupported(bits int) bool { return slices.Contains(SupportedBits, bits) }

// Generate returns a new RSA private key of the given size.
func (g *Generator) Generate(bits int) (*rsa.PrivateKey, error) {
	if !IsSupported(bits) {
		return nil, fmt.Errorf("%w: unsupported RSA key size %d (supported: %v)", ErrKeyGeneration, bits, SupportedBits)
	}

	key, err := rsa.GenerateKey(g.rand, bits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyGeneration, err)
	}
	return key, nil
}

// Generate is shorthand for New().Generate(bits).
func Generate(bits int) (*rsa.PrivateKey, error) { return New().Generate(bits) }
