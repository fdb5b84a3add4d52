// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package builder

import (
	"crypto"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"time"
)

// Profile selects the extension set applied to a certificate.
type Profile int

const (
	// ProfileRootCA builds a self-signed certificate authority.
	ProfileRootCA Profile = iota
	// ProfileLeaf builds an end-entity server certificate.
	ProfileLeaf
)

// String returns a human readable profile name.
func (p Profile) String() string {
	switch p {
	case ProfileRootCA:
		return "root-ca"
	case ProfileLeaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// Request holds the parameters needed to build one certificate.
type Request struct {
	Profile Profile

	// Subject is the distinguished name of the new certificate.
	Subject pkix.Name

	// Issuer is the signing CA certificate. It must be nil for ProfileRootCA.
	Issuer *x509.Certificate

	// PublicKey is embedded in the certificate.
	PublicKey crypto.PublicKey

	NotBefore time.Time
	NotAfter  time.Time

	// SerialNumber is drawn at signing time when nil.
	SerialNumber *big.Int

	// Hosts become SubjectAlternativeName entries of a leaf certificate, in order.
	Hosts []string
}

// validityWindow returns the window starting at notBefore and lasting days.
func validityWindow(notBefore time.Time, days int) (time.Time, time.Time) {
	notBefore = notBefore.UTC()
	return notBefore, notBefore.AddDate(0, 0, days)
}

// NewRootRequest returns a request for a self-signed root CA valid for days from notBefore.
func NewRootRequest(subject pkix.Name, pub crypto.PublicKey, notBefore time.Time, days int) Request {
	nb, na := validityWindow(notBefore, days)
	return Request{
		Profile:   ProfileRootCA,
		Subject:   subject,
		PublicKey: pub,
		NotBefore: nb,
		NotAfter:  na,
	}
}

// NewLeafRequest returns a request for a leaf certificate covering hosts, signed by issuer
// and valid for days from notBefore.
func NewLeafRequest(subject pkix.Name, hosts []string, issuer *x509.Certificate, pub crypto.PublicKey, notBefore time.Time, days int) Request {
	nb, na := validityWindow(notBefore, days)
	return Request{
		Profile:   ProfileLeaf,
		Subject:   subject,
		Issuer:    issuer,
		PublicKey: pub,
		NotBefore: nb,
		NotAfter:  na,
		Hosts:     append([]string(nil), hosts...),
	}
}
