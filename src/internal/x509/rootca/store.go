// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package rootca

import (
	"crypto"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/H0llyW00dzZ/cr8cert/src/internal/helper/atomicfile"
	"github.com/H0llyW00dzZ/cr8cert/src/internal/x509/builder"
	x509certs "github.com/H0llyW00dzZ/cr8cert/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/cr8cert/src/internal/x509/keygen"
)

var (
	// ErrNotFound indicates that the root CA files do not both exist.
	ErrNotFound = errors.New("rootca: root CA not found")

	// ErrCorruptCA indicates that the root CA files exist but cannot be parsed.
	ErrCorruptCA = errors.New("rootca: root CA files are corrupt (uninstall and install again to regenerate)")

	// ErrFilesystem indicates an I/O failure while reading or writing the root CA directory.
	ErrFilesystem = errors.New("rootca: filesystem error")
)

const (
	certPerm = 0o644
	keyPerm  = 0o600
	dirPerm  = 0o755
)

// CA is a loaded root certificate authority.
type CA struct {
	Cert *x509.Certificate
	Key  crypto.Signer
}

// Options controls how a new root CA is generated.
type Options struct {
	// RSABits is the modulus size of the CA key. Zero means [keygen.DefaultBits].
	RSABits int
	// ValidityDays is the lifetime of the CA certificate. Zero means 365.
	ValidityDays int
	// Subject is the distinguished name of the CA certificate.
	Subject pkix.Name
	// Now returns the issuance time. Nil means time.Now.
	Now func() time.Time
}

// Store reads and writes the root CA in a directory.
type Store struct {
	dir     string
	opts    Options
	codec   *x509certs.Certificate
	keys    *keygen.Generator
	builder *builder.Builder
}

// New returns a Store rooted at dir.
func New(dir string, opts Options) *Store {
	if opts.RSABits == 0 {
		opts.RSABits = keygen.DefaultBits
	}
	if opts.ValidityDays == 0 {
		opts.ValidityDays = 365
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		dir:     filepath.Clean(dir),
		opts:    opts,
		codec:   x509certs.New(),
		keys:    keygen.New(),
		builder: builder.New(),
	}
}

// Dir returns the root CA directory.
func (s *Store) Dir() string { return s.dir }

// CertPath returns the path of rootCA.pem.
func (s *Store) CertPath() string { return filepath.Join(s.dir, CertFileName) }

// KeyPath returns the path of rootCA-key.pem.
func (s *Store) KeyPath() string { return filepath.Join(s.dir, KeyFileName) }

// lockPath returns the lock file guarding creation. It sits beside the directory
// so the directory itself only ever holds the two PEM files.
func (s *Store) lockPath() string { return s.dir + ".lock" }

// Exists reports whether both root CA files are present.
func (s *Store) Exists() (bool, error) {
	for _, p := range []string{s.CertPath(), s.KeyPath()} {
		_, err := os.Stat(p)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return false, nil
		case err != nil:
			return false, fmt.Errorf("%w: stat %s: %w", ErrFilesystem, p, err)
		}
	}
	return true, nil
}

// Load reads the existing root CA. It returns ErrNotFound if either file is missing.
func (s *Store) Load() (*CA, error) {
	ok, err := s.Exists()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w in %s", ErrNotFound, s.dir)
	}
	return s.read()
}

// LoadOrCreate returns the root CA in the store, generating and persisting a new one
// if either file is missing. created reports whether a new CA was written.
func (s *Store) LoadOrCreate() (ca *CA, created bool, err error) {
	if err := os.MkdirAll(filepath.Dir(s.dir), dirPerm); err != nil {
		return nil, false, fmt.Errorf("%w: create %s: %w", ErrFilesystem, filepath.Dir(s.dir), err)
	}

	lock := flock.New(s.lockPath())
	if err := lock.Lock(); err != nil {
		return nil, false, fmt.Errorf("%w: lock %s: %w", ErrFilesystem, s.lockPath(), err)
	}
	defer func() {
		if uerr := lock.Unlock(); uerr != nil && err == nil {
			err = fmt.Errorf("%w: unlock %s: %w", ErrFilesystem, s.lockPath(), uerr)
		}
	}()

	exists, err := s.Exists()
	if err != nil {
		return nil, false, err
	}
	if exists {
		ca, err := s.read()
		return ca, false, err
	}

	ca, err = s.generate()
	if err != nil {
		return nil, false, err
	}
	if err := s.write(ca); err != nil {
		return nil, false, err
	}
	return ca, true, nil
}

// Remove deletes the root CA directory and everything in it.
func (s *Store) Remove() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("%w: remove %s: %w", ErrFilesystem, s.dir, err)
	}
	if err := os.Remove(s.lockPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove %s: %w", ErrFilesystem, s.lockPath(), err)
	}
	return nil
}

func (s *Store) generate() (*CA, error) {
	key, err := s.keys.Generate(s.opts.RSABits)
	if err != nil {
		return nil, err
	}

	req := builder.NewRootRequest(s.opts.Subject, &key.PublicKey, s.opts.Now(), s.opts.ValidityDays)
	cert, err := s.builder.BuildAndSign(req, key)
	if err != nil {
		return nil, err
	}
	return &CA{Cert: cert, Key: key}, nil
}

func (s *Store) write(ca *CA) error {
	keyPEM, err := s.codec.EncodeKeyPEM(ca.Key)
	if err != nil {
		return fmt.Errorf("%w: %w", builder.ErrEncoding, err)
	}

	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrFilesystem, s.dir, err)
	}

	var batch atomicfile.Batch
	batch.Add(s.KeyPath(), keyPEM, keyPerm)
	batch.Add(s.CertPath(), s.codec.EncodePEM(ca.Cert), certPerm)
	if err := batch.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}
	return nil
}

func (s *Store) read() (*CA, error) {
	certPEM, err := os.ReadFile(s.CertPath())
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrFilesystem, s.CertPath(), err)
	}
	keyPEM, err := os.ReadFile(s.KeyPath())
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrFilesystem, s.KeyPath(), err)
	}

	if !s.codec.IsPEM(certPEM) {
		return nil, fmt.Errorf("%w: %s is not PEM encoded", ErrCorruptCA, s.CertPath())
	}
	cert, err := s.codec.Decode(certPEM)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptCA, s.CertPath(), err)
	}
	key, err := s.codec.DecodePrivateKey(keyPEM)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptCA, s.KeyPath(), err)
	}

	pub, ok := key.Public().(interface{ Equal(crypto.PublicKey) bool })
	if !ok || !pub.Equal(cert.PublicKey) {
		return nil, fmt.Errorf("%w: %s does not match %s", ErrCorruptCA, s.KeyPath(), s.CertPath())
	}
	if !cert.IsCA {
		return nil, fmt.Errorf("%w: %s is not a CA certificate", ErrCorruptCA, s.CertPath())
	}
	return &CA{Cert: cert, Key: key}, nil
}
