// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package git reads bundle inputs from a git repository cloned in memory.
package git

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5/memfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"
	"k8s.io/klog/v2"
)

// Reader reads files from a single branch of a remote repository.
type Reader struct {
	worktree *gogit.Worktree
}

// NewReader clones the repository into memory and reads from its worktree.
// With branch empty the remote default branch is used.
func NewReader(ctx context.Context, url, branch string) (*Reader, error) {
	options := &gogit.CloneOptions{
		URL:   url,
		Depth: 1,
	}
	if branch != "" {
		options.ReferenceName = plumbing.NewBranchReferenceName(branch)
		options.SingleBranch = true
	}
	repository, err := gogit.CloneContext(ctx, memory.NewStorage(), memfs.New(), options)
	if err != nil {
		return nil, fmt.Errorf("failed to clone %s: %w", url, err)
	}
	worktree, err := repository.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree of %s: %w", url, err)
	}
	klog.V(6).Infof("cloned %s", url)
	return &Reader{worktree: worktree}, nil
}

// Tree lists every file under root.
func (r *Reader) Tree(_ context.Context, root string) ([]string, error) {
	var files []string
	var visit func(dir string) error
	visit = func(dir string) error {
		entries, err := r.worktree.Filesystem.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", dir, err)
		}
		for _, entry := range entries {
			path := strings.TrimPrefix(dir+"/"+entry.Name(), "./")
			path = strings.TrimPrefix(path, "/")
			if entry.IsDir() {
				if err := visit(path); err != nil {
					return err
				}
				continue
			}
			files = append(files, path)
		}
		return nil
	}
	if err := visit(root); err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Read returns the content of the file at path.
func (r *Reader) Read(_ context.Context, path string) ([]byte, error) {
	file, err := r.worktree.Filesystem.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return content, nil
}
