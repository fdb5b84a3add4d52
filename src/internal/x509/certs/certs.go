// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"errors"

	"github.com/H0llyW00dzZ/cr8cert/src/internal/helper/gc"
	"github.com/cloudflare/cfssl/crypto/pkcs7"
	"github.com/cloudflare/cfssl/helpers"
)

const (
	certBlockType = "CERTIFICATE"
	keyBlockType  = "PRIVATE KEY"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrInvalidBlockType indicates that the PEM block type is not the expected type.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")

	// ErrParsePrivateKey indicates a failure to parse a private key.
	ErrParsePrivateKey = errors.New("x509certs: failed to parse private key")

	// ErrMarshalPrivateKey indicates a failure to encode a private key as PKCS#8.
	ErrMarshalPrivateKey = errors.New("x509certs: failed to marshal private key")
)

// Certificate provides methods to decode and encode [X.509] certificates and keys.
//
// [X.509]: https://en.wikipedia.org/wiki/X.509
type Certificate struct {
	certBlockType string
	keyBlockType  string
}

// New creates a new Certificate with default settings.
func New() *Certificate {
	return &Certificate{
		certBlockType: certBlockType,
		keyBlockType:  keyBlockType,
	}
}

// IsPEM checks if the data is in PEM format.
func (c *Certificate) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// decodePEMBlock decodes a PEM block and checks its type.
func (c *Certificate) decodePEMBlock(data []byte, blockType string) (*pem.Block, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEMBlock
	}
	if block.Type != blockType {
		return nil, ErrInvalidBlockType
	}
	return block, nil
}

// Decode decodes a single certificate from PEM, DER or PKCS7 data.
func (c *Certificate) Decode(data []byte) (*x509.Certificate, error) {
	if c.IsPEM(data) {
		block, err := c.decodePEMBlock(data, c.certBlockType)
		if err != nil {
			return nil, err
		}

		data = block.Bytes
	}

	cert, err := x509.ParseCertificate(data)
	if err == nil {
		return cert, nil
	}

	// Attempt to parse as PKCS7 using Cloudflare's library
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, ErrParseCertificate
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}

	return p.Content.SignedData.Certificates[0], nil
}

// EncodePEM encodes a certificate to PEM format.
func (c *Certificate) EncodePEM(cert *x509.Certificate) []byte {
	return c.encodeBlock(&pem.Block{Type: c.certBlockType, Bytes: cert.Raw})
}

// EncodeDER encodes a certificate to DER format.
func (c *Certificate) EncodeDER(cert *x509.Certificate) []byte { return cert.Raw }

// EncodeKeyPEM encodes a private key as a PKCS#8 "PRIVATE KEY" PEM block.
func (c *Certificate) EncodeKeyPEM(key crypto.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, errors.Join(ErrMarshalPrivateKey, err)
	}
	return c.encodeBlock(&pem.Block{Type: c.keyBlockType, Bytes: der}), nil
}

// DecodePrivateKey decodes a PEM-encoded private key. PKCS#8 is what this package
// writes, but PKCS#1 and SEC 1 keys are accepted as well.
func (c *Certificate) DecodePrivateKey(data []byte) (crypto.Signer, error) {
	if !c.IsPEM(data) {
		return nil, ErrInvalidPEMBlock
	}

	key, err := helpers.ParsePrivateKeyPEM(data)
	if err != nil {
		return nil, errors.Join(ErrParsePrivateKey, err)
	}
	return key, nil
}

// encodeBlock PEM-encodes block using a pooled scratch buffer.
func (c *Certificate) encodeBlock(block *pem.Block) []byte {
	buf := gc.Default.Get()
	defer gc.Default.Put(buf)

	// Writes to a memory buffer only fail on invalid headers, which we never set.
	_ = pem.Encode(buf, block)
	return gc.Copy(buf)
}
