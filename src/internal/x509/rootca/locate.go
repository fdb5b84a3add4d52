// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package rootca

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// EnvRootDir overrides the root CA directory.
	EnvRootDir = "ROOTCA"

	// AppName is the directory name used under the per-OS data directory.
	AppName = "cr8cert"

	// CertFileName is the root CA certificate file name.
	CertFileName = "rootCA.pem"

	// KeyFileName is the root CA private key file name.
	KeyFileName = "rootCA-key.pem"
)

// ErrNoRootDir indicates that no root directory could be derived from the environment.
var ErrNoRootDir = errors.New("rootca: cannot determine root CA directory; set " + EnvRootDir)

// LocateRoot resolves the root CA directory for the running platform.
func LocateRoot() (string, error) {
	return locateRoot(runtime.GOOS, os.Getenv)
}

// locateRoot resolves the root directory from goos and getenv. It only reads
// the environment.
func locateRoot(goos string, getenv func(string) string) (string, error) {
	if dir := getenv(EnvRootDir); dir != "" {
		return filepath.Clean(dir), nil
	}

	switch goos {
	case "darwin":
		if home := getenv("HOME"); home != "" {
			return filepath.Join(home, "Library", "Application Support", AppName), nil
		}
	case "windows":
		if dir := getenv("LocalAppData"); dir != "" {
			return filepath.Join(dir, AppName), nil
		}
	default:
		if dir := getenv("XDG_DATA_HOME"); dir != "" {
			return filepath.Join(dir, AppName), nil
		}
		if home := getenv("HOME"); home != "" {
			return filepath.Join(home, ".local", "share", AppName), nil
		}
	}
	return "", ErrNoRootDir
}
