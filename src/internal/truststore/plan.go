// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package truststore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// step is one external command of a plan.
type step struct {
	name       string
	args       []string
	privileged bool
}

// linuxAnchors describes where a Linux distribution family keeps extra CA anchors.
type linuxAnchors struct {
	dir       string
	refresh   []string
	unrefresh []string
}

var (
	debianAnchors = linuxAnchors{
		dir:       "/usr/local/share/ca-certificates",
		refresh:   []string{"update-ca-certificates"},
		unrefresh: []string{"update-ca-certificates", "--fresh"},
	}
	redhatAnchors = linuxAnchors{
		dir:       "/etc/pki/ca-trust/source/anchors",
		refresh:   []string{"update-ca-trust", "extract"},
		unrefresh: []string{"update-ca-trust", "extract"},
	}
)

// anchorName is the file name the root CA is copied to on Linux.
const anchorName = "cr8cert-rootCA.crt"

const darwinKeychain = "/Library/Keychains/System.keychain"

func (s *CommandStore) installPlan(certPath string) ([]step, error) {
	switch s.goos {
	case "darwin":
		return []step{
			{name: "security", args: []string{"add-trusted-cert", "-d", "-k", darwinKeychain, certPath}, privileged: true},
		}, nil
	case "linux":
		a, err := s.linuxAnchors()
		if err != nil {
			return nil, err
		}
		return []step{
			{name: "install", args: []string{"-m", "0644", certPath, filepath.Join(a.dir, anchorName)}, privileged: true},
			{name: a.refresh[0], args: a.refresh[1:], privileged: true},
		}, nil
	case "windows":
		return []step{
			{name: "certutil", args: []string{"-addstore", "-f", "ROOT", certPath}},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, s.goos)
	}
}

func (s *CommandStore) uninstallPlan(certPath string) ([]step, error) {
	switch s.goos {
	case "darwin":
		return []step{
			{name: "security", args: []string{"remove-trusted-cert", "-d", certPath}, privileged: true},
		}, nil
	case "linux":
		a, err := s.linuxAnchors()
		if err != nil {
			return nil, err
		}
		return []step{
			{name: "rm", args: []string{"-f", filepath.Join(a.dir, anchorName)}, privileged: true},
			{name: a.unrefresh[0], args: a.unrefresh[1:], privileged: true},
		}, nil
	case "windows":
		serial, err := s.serialHex(certPath)
		if err != nil {
			return nil, err
		}
		return []step{
			{name: "certutil", args: []string{"-delstore", "ROOT", serial}},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, s.goos)
	}
}

// linuxAnchors picks the anchor layout from the refresh tool that is installed.
func (s *CommandStore) linuxAnchors() (linuxAnchors, error) {
	if _, err := s.lookPath("update-ca-certificates"); err == nil {
		return debianAnchors, nil
	}
	if _, err := s.lookPath("update-ca-trust"); err == nil {
		return redhatAnchors, nil
	}
	return linuxAnchors{}, fmt.Errorf("%w: neither update-ca-certificates nor update-ca-trust is installed", ErrUnsupportedPlatform)
}

// serialHex returns the certificate serial number as certutil expects it.
func (s *CommandStore) serialHex(certPath string) (string, error) {
	data, err := os.ReadFile(certPath)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", ErrTrustStore, certPath, err)
	}
	cert, err := s.codec.Decode(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrTrustStore, certPath, err)
	}
	return strings.ToLower(cert.SerialNumber.Text(16)), nil
}
