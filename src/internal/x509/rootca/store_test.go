// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package rootca_test

import (
	"crypto"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/cr8cert/src/internal/x509/rootca"
)

var testOptions = rootca.Options{
	Subject: pkix.Name{Organization: []string{"cr8cert test"}, CommonName: "cr8cert test root"},
}

func newStore(t *testing.T) *rootca.Store {
	t.Helper()
	return rootca.New(filepath.Join(t.TempDir(), "cr8cert"), testOptions)
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestLoadOrCreate_Idempotent(t *testing.T) {
	store := newStore(t)

	first, created, err := store.LoadOrCreate()
	require.NoError(t, err)
	assert.True(t, created)
	assert.ElementsMatch(t, []string{rootca.CertFileName, rootca.KeyFileName}, dirEntries(t, store.Dir()))

	certBefore, err := os.ReadFile(store.CertPath())
	require.NoError(t, err)

	second, created, err := store.LoadOrCreate()
	require.NoError(t, err)
	assert.False(t, created)

	assert.Equal(t, first.Cert.SerialNumber, second.Cert.SerialNumber)
	assert.True(t, first.Cert.Equal(second.Cert))
	assert.True(t, first.Cert.PublicKey.(interface{ Equal(crypto.PublicKey) bool }).Equal(second.Cert.PublicKey))

	certAfter, err := os.ReadFile(store.CertPath())
	require.NoError(t, err)
	assert.Equal(t, certBefore, certAfter, "second call must not rewrite the CA")
}

func TestLoadOrCreate_PEMRoundTrip(t *testing.T) {
	store := newStore(t)

	ca, _, err := store.LoadOrCreate()
	require.NoError(t, err)

	certPEM, err := os.ReadFile(store.CertPath())
	require.NoError(t, err)
	block, _ := pem.Decode(certPEM)
	require.NotNil(t, block)
	assert.Equal(t, "CERTIFICATE", block.Type)
	assert.Equal(t, ca.Cert.Raw, block.Bytes)

	keyPEM, err := os.ReadFile(store.KeyPath())
	require.NoError(t, err)
	block, _ = pem.Decode(keyPEM)
	require.NotNil(t, block)
	assert.Equal(t, "PRIVATE KEY", block.Type)

	want, err := x509.MarshalPKCS8PrivateKey(ca.Key)
	require.NoError(t, err)
	assert.Equal(t, want, block.Bytes)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, ca.Cert.Raw, loaded.Cert.Raw)

	got, err := x509.MarshalPKCS8PrivateKey(loaded.Key)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadOrCreate_KeyPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permissions not available")
	}
	store := newStore(t)

	_, _, err := store.LoadOrCreate()
	require.NoError(t, err)

	info, err := os.Stat(store.KeyPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadOrCreate_RegeneratesWhenHalfMissing(t *testing.T) {
	store := newStore(t)

	first, _, err := store.LoadOrCreate()
	require.NoError(t, err)
	require.NoError(t, os.Remove(store.KeyPath()))

	second, created, err := store.LoadOrCreate()
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.Cert.SerialNumber, second.Cert.SerialNumber)
}

func TestLoadOrCreate_Concurrent(t *testing.T) {
	store := newStore(t)

	const workers = 4
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		serials = make(map[string]int)
		creates int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Each goroutine uses its own Store, as separate processes would.
			s := rootca.New(store.Dir(), testOptions)
			ca, created, err := s.LoadOrCreate()
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			serials[ca.Cert.SerialNumber.String()]++
			if created {
				creates++
			}
		}()
	}
	wg.Wait()

	assert.Len(t, serials, 1, "all callers must agree on one CA")
	assert.Equal(t, 1, creates)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(t *testing.T, s *rootca.Store)
		wantErr error
	}{
		{
			name:    "Missing",
			corrupt: func(t *testing.T, s *rootca.Store) { require.NoError(t, s.Remove()) },
			wantErr: rootca.ErrNotFound,
		},
		{
			name: "Certificate not PEM",
			corrupt: func(t *testing.T, s *rootca.Store) {
				require.NoError(t, os.WriteFile(s.CertPath(), []byte("garbage"), 0o644))
			},
			wantErr: rootca.ErrCorruptCA,
		},
		{
			name: "Certificate PEM with bad DER",
			corrupt: func(t *testing.T, s *rootca.Store) {
				bad := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte{0x30, 0x03, 0x02, 0x01, 0x01}})
				require.NoError(t, os.WriteFile(s.CertPath(), bad, 0o644))
			},
			wantErr: rootca.ErrCorruptCA,
		},
		{
			name: "Key not PEM",
			corrupt: func(t *testing.T, s *rootca.Store) {
				require.NoError(t, os.WriteFile(s.KeyPath(), []byte("garbage"), 0o600))
			},
			wantErr: rootca.ErrCorruptCA,
		},
		{
			name: "Key from another CA",
			corrupt: func(t *testing.T, s *rootca.Store) {
				other := rootca.New(filepath.Join(t.TempDir(), "other"), testOptions)
				_, _, err := other.LoadOrCreate()
				require.NoError(t, err)

				data, err := os.ReadFile(other.KeyPath())
				require.NoError(t, err)
				require.NoError(t, os.WriteFile(s.KeyPath(), data, 0o600))
			},
			wantErr: rootca.ErrCorruptCA,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			_, _, err := store.LoadOrCreate()
			require.NoError(t, err)

			tt.corrupt(t, store)

			_, err = store.Load()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadOrCreate_CorruptIsNotRegenerated(t *testing.T) {
	store := newStore(t)
	_, _, err := store.LoadOrCreate()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.CertPath(), []byte("garbage"), 0o644))

	_, created, err := store.LoadOrCreate()
	assert.ErrorIs(t, err, rootca.ErrCorruptCA)
	assert.False(t, created)

	data, err := os.ReadFile(store.CertPath())
	require.NoError(t, err)
	assert.Equal(t, "garbage", string(data), "corrupt files are reported, never overwritten")
}

func TestRemove(t *testing.T) {
	store := newStore(t)
	_, _, err := store.LoadOrCreate()
	require.NoError(t, err)

	require.NoError(t, store.Remove())
	assert.NoDirExists(t, store.Dir())
	assert.NoFileExists(t, store.Dir()+".lock")

	ok, err := store.Exists()
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing twice is not an error.
	assert.NoError(t, store.Remove())
}
