// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package atomicfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteFile atomically replaces path with data.
func WriteFile(path string, data []byte, perm fs.FileMode) error {
	var b Batch
	b.Add(path, data, perm)
	return b.Commit()
}

type entry struct {
	path string
	data []byte
	perm fs.FileMode
	tmp  string
}

// Batch commits a group of files together.
// The zero value is ready to use. A Batch must not be reused after Commit.
type Batch struct {
	entries []*entry
}

// Add queues data to be written to path with the given permissions.
func (b *Batch) Add(path string, data []byte, perm fs.FileMode) {
	b.entries = append(b.entries, &entry{path: path, data: data, perm: perm})
}

// Commit writes every queued file. Either all files end up in place or none of the
// files this batch created remain.
func (b *Batch) Commit() (err error) {
	defer b.cleanupTemps()

	for _, e := range b.entries {
		if e.tmp, err = writeTemp(e.path, e.data, e.perm); err != nil {
			return err
		}
	}

	for i, e := range b.entries {
		if err = rename(e.tmp, e.path); err != nil {
			for _, done := range b.entries[:i] {
				err = errors.Join(err, removeIfExists(done.path))
			}
			return err
		}
		e.tmp = ""
	}
	return nil
}

func (b *Batch) cleanupTemps() {
	for _, e := range b.entries {
		if e.tmp != "" {
			_ = os.Remove(e.tmp)
		}
	}
}

// writeTemp writes data into a temporary file next to path and returns its name.
func writeTemp(path string, data []byte, perm fs.FileMode) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp for %s: %w", path, err)
	}
	name := tmp.Name()

	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf("chmod temp for %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf("write temp for %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf("fsync temp for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("close temp for %s: %w", path, err)
	}
	return name, nil
}

// rename moves tmp over path. On Windows a rename onto an existing file can fail,
// so the destination is removed and the rename retried once.
func rename(tmp, path string) error {
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(path)
		if err2 := os.Rename(tmp, path); err2 != nil {
			return fmt.Errorf("rename %s: %v (after remove: %w)", path, err, err2)
		}
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
