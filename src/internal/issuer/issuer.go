// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package issuer

import (
	"context"
	"crypto"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/cr8cert/src/config"
	"github.com/H0llyW00dzZ/cr8cert/src/internal/helper/atomicfile"
	"github.com/H0llyW00dzZ/cr8cert/src/internal/truststore"
	"github.com/H0llyW00dzZ/cr8cert/src/internal/x509/builder"
	x509certs "github.com/H0llyW00dzZ/cr8cert/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/cr8cert/src/internal/x509/keygen"
	"github.com/H0llyW00dzZ/cr8cert/src/internal/x509/rootca"
	"github.com/H0llyW00dzZ/cr8cert/src/logger"
)

var (
	// ErrInvalidRequest indicates a leaf request without any usable host.
	ErrInvalidRequest = errors.New("issuer: invalid request")

	// ErrCANotInstalled indicates that no root CA exists yet.
	ErrCANotInstalled = errors.New("issuer: root CA is not installed (run with --install first)")

	// ErrFilesystem indicates a failure writing the leaf certificate files.
	ErrFilesystem = errors.New("issuer: filesystem error")
)

// Leaf output file names.
const (
	CertFileName = "cert.pem"
	KeyFileName  = "key.pem"
)

const (
	certPerm = 0o644
	keyPerm  = 0o600
)

// Status reports what EnsureCAInstalled did.
type Status int

const (
	// StatusInstalled means a new root CA was created and registered.
	StatusInstalled Status = iota
	// StatusAlreadyInstalled means the root CA already existed and nothing changed.
	StatusAlreadyInstalled
)

func (s Status) String() string {
	switch s {
	case StatusInstalled:
		return "installed"
	case StatusAlreadyInstalled:
		return "already installed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// CAStore persists the root CA. [*rootca.Store] implements it.
type CAStore interface {
	LoadOrCreate() (*rootca.CA, bool, error)
	Load() (*rootca.CA, error)
	Exists() (bool, error)
	Remove() error
	CertPath() string
}

// Result describes a leaf certificate written by IssueToDir.
type Result struct {
	Cert     *x509.Certificate
	CA       *x509.Certificate
	CertPath string
	KeyPath  string
}

// Issuer creates the root CA and signs leaf certificates with it.
type Issuer struct {
	cfg     config.Config
	store   CAStore
	trust   truststore.Store
	log     logger.Logger
	keys    *keygen.Generator
	builder *builder.Builder
	codec   *x509certs.Certificate
	now     func() time.Time
}

// New returns an Issuer whose root CA lives in cfg.RootDir.
// A nil log discards messages.
func New(cfg *config.Config, trust truststore.Store, log logger.Logger) *Issuer {
	store := rootca.New(cfg.RootDir, rootca.Options{
		RSABits:      cfg.RSABits,
		ValidityDays: cfg.ValidityDays,
		Subject:      RootSubject(cfg.Organization),
	})
	return NewWithStore(cfg, store, trust, log)
}

// NewWithStore is like New but uses store for the root CA.
func NewWithStore(cfg *config.Config, store CAStore, trust truststore.Store, log logger.Logger) *Issuer {
	return &Issuer{
		cfg:     *cfg,
		store:   store,
		trust:   trust,
		log:     logger.OrDiscard(log),
		keys:    keygen.New(),
		builder: builder.New(),
		codec:   x509certs.New(),
		now:     time.Now,
	}
}

// RootSubject returns the distinguished name of a root CA for organization.
func RootSubject(organization string) pkix.Name {
	return pkix.Name{
		Country:      []string{"US"},
		Province:     []string{"TX"},
		Organization: []string{organization},
		CommonName:   organization + " root",
	}
}

// LeafSubject returns the distinguished name of a leaf certificate whose first host is commonName.
func LeafSubject(organization, commonName string) pkix.Name {
	return pkix.Name{
		Organization: []string{organization + " leaf"},
		CommonName:   commonName,
	}
}

// EnsureCAInstalled creates the root CA if it does not exist and registers it with
// the trust store. An existing CA is left untouched and not registered again.
//
// If registration of a newly created CA fails, the CA is removed again so the next
// call retries from scratch.
func (i *Issuer) EnsureCAInstalled(ctx context.Context) (Status, error) {
	ca, created, err := i.store.LoadOrCreate()
	if err != nil {
		return 0, err
	}
	if !created {
		i.log.Printf("The local CA %q is already installed at %s", ca.Cert.Subject.CommonName, i.store.CertPath())
		return StatusAlreadyInstalled, nil
	}

	i.log.Printf("Created a new local CA at %s", i.store.CertPath())
	if err := i.trust.Install(ctx, i.store.CertPath()); err != nil {
		if rerr := i.store.Remove(); rerr != nil {
			err = errors.Join(err, rerr)
		}
		return 0, err
	}
	i.log.Println("The local CA is now installed in the system trust store")
	return StatusInstalled, nil
}

// IssueLeaf signs a new leaf certificate for hosts with caCert and caKey.
// It performs no I/O.
func (i *Issuer) IssueLeaf(hosts []string, caCert *x509.Certificate, caKey crypto.Signer) (*x509.Certificate, *rsa.PrivateKey, error) {
	if err := validateHosts(hosts); err != nil {
		return nil, nil, err
	}

	key, err := i.keys.Generate(i.cfg.RSABits)
	if err != nil {
		return nil, nil, err
	}

	req := builder.NewLeafRequest(
		LeafSubject(i.cfg.Organization, hosts[0]),
		hosts, caCert, &key.PublicKey, i.now(), i.cfg.ValidityDays,
	)
	cert, err := i.builder.BuildAndSign(req, caKey)
	if err != nil {
		return nil, nil, err
	}
	return cert, key, nil
}

// IssueToDir signs a leaf certificate for hosts with the installed root CA and writes
// cert.pem and key.pem into the configured output directory. Either both files are
// written or neither is.
func (i *Issuer) IssueToDir(ctx context.Context, hosts []string) (*Result, error) {
	if err := validateHosts(hosts); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ca, err := i.store.Load()
	if errors.Is(err, rootca.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrCANotInstalled, err)
	}
	if err != nil {
		return nil, err
	}

	cert, key, err := i.IssueLeaf(hosts, ca.Cert, ca.Key)
	if err != nil {
		return nil, err
	}

	keyPEM, err := i.codec.EncodeKeyPEM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", builder.ErrEncoding, err)
	}

	res := &Result{
		Cert:     cert,
		CA:       ca.Cert,
		CertPath: filepath.Join(i.cfg.OutputDir, CertFileName),
		KeyPath:  filepath.Join(i.cfg.OutputDir, KeyFileName),
	}

	if err := os.MkdirAll(i.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrFilesystem, i.cfg.OutputDir, err)
	}

	var batch atomicfile.Batch
	batch.Add(res.CertPath, i.codec.EncodePEM(cert), certPerm)
	batch.Add(res.KeyPath, keyPEM, keyPerm)
	if err := batch.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFilesystem, err)
	}

	i.log.Printf("Created a new certificate valid for the following names: %s", strings.Join(hosts, ", "))
	i.log.Printf("The certificate is at %s and the key at %s", res.CertPath, res.KeyPath)
	return res, nil
}

// Uninstall removes the root CA from the trust store and then deletes its directory.
// Both steps are irreversible.
func (i *Issuer) Uninstall(ctx context.Context) error {
	ok, err := i.store.Exists()
	if err != nil {
		return err
	}
	if !ok {
		return ErrCANotInstalled
	}

	if err := i.trust.Uninstall(ctx, i.store.CertPath()); err != nil {
		return err
	}
	if err := i.store.Remove(); err != nil {
		return err
	}
	i.log.Println("The local CA was removed from the system trust store and deleted")
	return nil
}

// RootCA returns the installed root CA certificate.
func (i *Issuer) RootCA() (*x509.Certificate, error) {
	ca, err := i.store.Load()
	if errors.Is(err, rootca.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrCANotInstalled, err)
	}
	if err != nil {
		return nil, err
	}
	return ca.Cert, nil
}

func validateHosts(hosts []string) error {
	if len(hosts) == 0 {
		return fmt.Errorf("%w: at least one host is required", ErrInvalidRequest)
	}
	for n, h := range hosts {
		if strings.TrimSpace(h) == "" {
			return fmt.Errorf("%w: host %d is blank", ErrInvalidRequest, n+1)
		}
	}
	return nil
}
