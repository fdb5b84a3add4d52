// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package builder

import (
	"crypto"
	"crypto/rand"
	"crypto/sha1"
	"crypto/x509"
	"encoding/asn1"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	casn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// SerialBits is the width of generated serial numbers. The top bit may be zero.
const SerialBits = 159

var serialLimit = new(big.Int).Lsh(big.NewInt(1), SerialBits)

// NewSerialNumber draws a uniformly random serial number in [0, 2^159).
func NewSerialNumber(r io.Reader) (*big.Int, error) {
	if r == nil {
		r = rand.Reader
	}
	sn, err := rand.Int(r, serialLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: serial number: %w", ErrEncoding, err)
	}
	return sn, nil
}

// SubjectKeyID derives a key identifier from pub using method 1 of RFC 5280
// section 4.2.1.2: the SHA-1 hash of the subjectPublicKey BIT STRING.
func SubjectKeyID(pub crypto.PublicKey) ([]byte, error) {
	spki, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: public key: %w", ErrEncoding, err)
	}

	var (
		input = cryptobyte.String(spki)
		seq   cryptobyte.String
		algo  cryptobyte.String
		bits  asn1.BitString
	)
	if !input.ReadASN1(&seq, casn1.SEQUENCE) ||
		!seq.ReadASN1(&algo, casn1.SEQUENCE) ||
		!seq.ReadASN1BitString(&bits) {
		return nil, fmt.Errorf("%w: malformed subjectPublicKeyInfo", ErrEncoding)
	}

	sum := sha1.Sum(bits.Bytes)
	return sum[:], nil
}
