// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package fs reads bundle inputs from the local filesystem.
package fs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Reader reads files below a base directory.
type Reader struct {
	base string
}

// NewReader creates a filesystem reader rooted at base.
func NewReader(base string) *Reader {
	return &Reader{base: base}
}

// Tree lists every regular file under root, relative to the base.
func (r *Reader) Tree(_ context.Context, root string) ([]string, error) {
	var files []string
	start := filepath.Join(r.base, root)
	err := filepath.WalkDir(start, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		relative, err := filepath.Rel(r.base, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(relative))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", start, err)
	}
	sort.Strings(files)
	return files, nil
}

// Read returns the content of the file at path, relative to the base.
func (r *Reader) Read(_ context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(filepath.Join(r.base, path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return content, nil
}
