// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package builder

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrEncoding indicates that a name, key or extension could not be encoded.
	// With valid inputs this points at a programming defect.
	ErrEncoding = errors.New("builder: encoding failed")

	// ErrSigning indicates that the signing key cannot produce the certificate signature,
	// for example because it is not an RSA key or does not belong to the issuer.
	ErrSigning = errors.New("builder: signing failed")
)

// SignatureAlgorithm is used for every certificate this package signs.
const SignatureAlgorithm = x509.SHA256WithRSA

// Builder signs certificate requests.
type Builder struct {
	rand io.Reader
}

// New returns a Builder drawing randomness from [crypto/rand.Reader].
func New() *Builder { return &Builder{rand: rand.Reader} }

// BuildAndSign assembles the certificate described by req and signs it with signingKey.
// For a root CA the signing key must match req.PublicKey; for a leaf it must match
// the public key of req.Issuer.
func (b *Builder) BuildAndSign(req Request, signingKey crypto.Signer) (*x509.Certificate, error) {
	if signingKey == nil {
		return nil, fmt.Errorf("%w: no signing key", ErrSigning)
	}
	if _, ok := signingKey.Public().(*rsa.PublicKey); !ok {
		return nil, fmt.Errorf("%w: signing key must be RSA for %s, got %T", ErrSigning, SignatureAlgorithm, signingKey.Public())
	}
	if _, ok := req.PublicKey.(*rsa.PublicKey); !ok {
		return nil, fmt.Errorf("%w: certificate key must be RSA, got %T", ErrEncoding, req.PublicKey)
	}
	if !req.NotAfter.After(req.NotBefore) {
		return nil, fmt.Errorf("%w: not-after %s is not after not-before %s", ErrEncoding, req.NotAfter, req.NotBefore)
	}

	template, err := b.template(req)
	if err != nil {
		return nil, err
	}

	parent := template
	switch req.Profile {
	case ProfileRootCA:
		if req.Issuer != nil {
			return nil, fmt.Errorf("%w: root CA request must not name an issuer", ErrEncoding)
		}
		if !publicKeysEqual(signingKey.Public(), req.PublicKey) {
			return nil, fmt.Errorf("%w: self-signed certificate requires the subject's own key", ErrSigning)
		}
	case ProfileLeaf:
		if req.Issuer == nil {
			return nil, fmt.Errorf("%w: leaf request has no issuer", ErrEncoding)
		}
		if !publicKeysEqual(signingKey.Public(), req.Issuer.PublicKey) {
			return nil, fmt.Errorf("%w: signing key does not belong to issuer %q", ErrSigning, req.Issuer.Subject.String())
		}
		parent = req.Issuer
	}

	der, err := x509.CreateCertificate(b.rand, template, parent, req.PublicKey, signingKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigning, err)
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("%w: signed certificate does not parse: %w", ErrEncoding, err)
	}
	return cert, nil
}

// template converts req into an x509 template carrying the profile's extensions.
func (b *Builder) template(req Request) (*x509.Certificate, error) {
	serial := req.SerialNumber
	if serial == nil {
		var err error
		if serial, err = NewSerialNumber(b.rand); err != nil {
			return nil, err
		}
	}
	if serial.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative serial number", ErrEncoding)
	}

	ski, err := SubjectKeyID(req.PublicKey)
	if err != nil {
		return nil, err
	}

	t := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               req.Subject,
		NotBefore:             req.NotBefore,
		NotAfter:              req.NotAfter,
		SignatureAlgorithm:    SignatureAlgorithm,
		BasicConstraintsValid: true,
		SubjectKeyId:          ski,
	}

	switch req.Profile {
	case ProfileRootCA:
		t.IsCA = true
		t.MaxPathLen = 0
		t.MaxPathLenZero = true
		t.KeyUsage = x509.KeyUsageCertSign | x509.KeyUsageCRLSign
	case ProfileLeaf:
		if len(req.Hosts) == 0 {
			return nil, fmt.Errorf("%w: leaf certificate needs at least one host", ErrEncoding)
		}
		if req.Issuer == nil {
			return nil, fmt.Errorf("%w: leaf request has no issuer", ErrEncoding)
		}

		san, err := marshalSubjectAltName(req.Hosts)
		if err != nil {
			return nil, err
		}

		aki := req.Issuer.SubjectKeyId
		if len(aki) == 0 {
			if aki, err = SubjectKeyID(req.Issuer.PublicKey); err != nil {
				return nil, err
			}
		}

		t.KeyUsage = x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment
		t.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth}
		t.AuthorityKeyId = aki
		t.ExtraExtensions = append(t.ExtraExtensions, san)
	default:
		return nil, fmt.Errorf("%w: unknown profile %d", ErrEncoding, req.Profile)
	}

	return t, nil
}

// publicKeysEqual reports whether a and b are the same public key.
func publicKeysEqual(a, b crypto.PublicKey) bool {
	k, ok := a.(interface{ Equal(crypto.PublicKey) bool })
	return ok && k.Equal(b)
}
