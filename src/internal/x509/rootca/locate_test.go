// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package rootca

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateRoot(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		env     map[string]string
		want    string
		wantErr error
	}{
		{
			name: "Override wins",
			goos: "darwin",
			env:  map[string]string{EnvRootDir: "/tmp/ca/", "HOME": "/Users/dev"},
			want: filepath.Clean("/tmp/ca"),
		},
		{
			name: "macOS application support",
			goos: "darwin",
			env:  map[string]string{"HOME": "/Users/dev"},
			want: filepath.Join("/Users/dev", "Library", "Application Support", AppName),
		},
		{
			name: "Windows local app data",
			goos: "windows",
			env:  map[string]string{"LocalAppData": "C:\\Users\\dev\\AppData\\Local"},
			want: filepath.Join("C:\\Users\\dev\\AppData\\Local", AppName),
		},
		{
			name: "Linux XDG data home",
			goos: "linux",
			env:  map[string]string{"XDG_DATA_HOME": "/home/dev/.data", "HOME": "/home/dev"},
			want: filepath.Join("/home/dev/.data", AppName),
		},
		{
			name: "Linux home fallback",
			goos: "linux",
			env:  map[string]string{"HOME": "/home/dev"},
			want: filepath.Join("/home/dev", ".local", "share", AppName),
		},
		{
			name:    "Nothing to go on",
			goos:    "linux",
			env:     map[string]string{},
			wantErr: ErrNoRootDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(k string) string { return tt.env[k] }

			got, err := locateRoot(tt.goos, getenv)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := locateRoot(tt.goos, getenv)
			require.NoError(t, err)
			assert.Equal(t, got, again, "resolution must be deterministic")
		})
	}
}

func TestLocateRoot_Env(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvRootDir, dir)

	got, err := LocateRoot()
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(dir), got)
}
