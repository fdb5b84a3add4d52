// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/cr8cert/src/cli"
	"github.com/H0llyW00dzZ/cr8cert/src/config"
	"github.com/H0llyW00dzZ/cr8cert/src/internal/issuer"
	"github.com/H0llyW00dzZ/cr8cert/src/internal/x509/rootca"
	"github.com/H0llyW00dzZ/cr8cert/src/logger"
)

const version = "1.3.3.7-testing"

type fakeTrustStore struct {
	installs, uninstalls int
}

func (f *fakeTrustStore) Install(context.Context, string) error   { f.installs++; return nil }
func (f *fakeTrustStore) Uninstall(context.Context, string) error { f.uninstalls++; return nil }

type harness struct {
	rootDir string
	outDir  string
	trust   *fakeTrustStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	base := t.TempDir()
	t.Setenv(config.EnvConfigFile, "")
	t.Setenv(rootca.EnvRootDir, filepath.Join(base, "ca"))
	return &harness{
		rootDir: filepath.Join(base, "ca"),
		outDir:  filepath.Join(base, "out"),
		trust:   &fakeTrustStore{},
	}
}

// run executes the root command with args and returns what it printed.
func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	log := logger.NewJSONLogger(&out, false)

	cmd := cli.NewRootCommand(version, log, cli.Options{TrustStore: h.trust})
	cmd.SetArgs(append([]string{"--output-dir", h.outDir}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoot_InstallCreateUninstall(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "--install")
	require.NoError(t, err)
	assert.Equal(t, 1, h.trust.installs)
	assert.FileExists(t, filepath.Join(h.rootDir, rootca.CertFileName))
	assert.FileExists(t, filepath.Join(h.rootDir, rootca.KeyFileName))

	out, err := h.run(t, "-i")
	require.NoError(t, err)
	assert.Equal(t, 1, h.trust.installs)
	assert.Contains(t, out, "already installed")

	_, err = h.run(t, "--create", "localhost", "127.0.0.1")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(h.outDir, issuer.CertFileName))
	assert.FileExists(t, filepath.Join(h.outDir, issuer.KeyFileName))

	_, err = h.run(t, "--uninstall")
	require.NoError(t, err)
	assert.Equal(t, 1, h.trust.uninstalls)
	assert.NoDirExists(t, h.rootDir)
}

func TestRoot_CreateWithoutInstall(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "-c", "localhost")
	assert.ErrorIs(t, err, issuer.ErrCANotInstalled)
	assert.NoFileExists(t, filepath.Join(h.outDir, issuer.CertFileName))
	assert.Zero(t, h.trust.installs)
}

func TestRoot_InstallAndCreateWithTable(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "-i", "-c", "dev.local,127.0.0.1", "--table", "--tree", "--bits", "3072", "--days", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "DNS:dev.local IP:127.0.0.1")
	assert.Contains(t, out, "3072-bit RSA")
	assert.Contains(t, out, "── [✓] dev.local (Leaf)")
	assert.Contains(t, out, "(Root CA)")
}

func TestRoot_TreeOfRootOnly(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "--install", "--tree")
	require.NoError(t, err)
	assert.Contains(t, out, "└── [✓] "+config.DefaultOrganization+" root (Root CA)")
}

func TestRoot_FlagErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "No operation", args: nil},
		{name: "Install and uninstall", args: []string{"-i", "-u"}},
		{name: "Uninstall and create", args: []string{"-u", "-c", "localhost"}},
		{name: "Hosts without create", args: []string{"-i", "localhost"}},
		{name: "Unsupported key size", args: []string{"-i", "--bits", "1024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			_, err := h.run(t, tt.args...)
			assert.Error(t, err)
			assert.Zero(t, h.trust.installs)
			assert.NoDirExists(t, h.rootDir)
		})
	}
}

func TestRoot_UninstallNothing(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "-u")
	assert.ErrorIs(t, err, issuer.ErrCANotInstalled)
	assert.Zero(t, h.trust.uninstalls)
}

func TestRoot_ConfigFile(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "cr8cert.yaml")
	require.NoError(t, os.WriteFile(path, []byte("organization: Acme\n"), 0o644))

	out, err := h.run(t, "--config", path, "-i", "--tree")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme root (Root CA)")
}

func TestRoot_Version(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}
