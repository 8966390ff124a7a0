// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package github reads bundle inputs from a GitHub repository tree with a
// transport level persistent cache.
package github

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/go-github/v43/github"
	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/peterbourgon/diskv"
	"golang.org/x/oauth2"
	"k8s.io/klog/v2"
)

// Repositories is the subset of the GitHub repositories API the reader
// needs, an interface for faking.
type Repositories interface {
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
}

// Reader reads files of one repository at one ref.
type Reader struct {
	repositories Repositories
	owner        string
	repo         string
	ref          string
}

// Options configure the reader's client.
type Options struct {
	// OAuthToken authenticates requests when set
	OAuthToken string
	// CacheDir backs the transport cache, empty disables persistence
	CacheDir string
	// Host is the API host, empty means github.com
	Host string
}

// NewReader builds a reader over owner/repo at ref.
func NewReader(ctx context.Context, owner, repo, ref string, options Options) (*Reader, error) {
	client, err := buildClient(ctx, options)
	if err != nil {
		return nil, err
	}
	return &Reader{repositories: client.Repositories, owner: owner, repo: repo, ref: ref}, nil
}

func buildClient(ctx context.Context, options Options) (*github.Client, error) {
	base := http.DefaultTransport
	if options.OAuthToken != "" {
		// if a token is provided replace the base RoundTripper
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: options.OAuthToken})
		base = oauth2.NewClient(ctx, ts).Transport
	}
	httpClient := http.DefaultClient
	if options.CacheDir != "" {
		flatTransform := func(s string) []string { return []string{} }
		d := diskv.New(diskv.Options{
			BasePath:     filepath.Join(options.CacheDir, "diskv"),
			Transform:    flatTransform,
			CacheSizeMax: 1024 * 1024 * 1024,
		})
		cacheTransport := &httpcache.Transport{
			Transport:           base,
			Cache:               diskcache.NewWithDiskv(d),
			MarkCachedResponses: true,
		}
		httpClient = cacheTransport.Client()
	} else if options.OAuthToken != "" {
		httpClient = &http.Client{Transport: base}
	}
	if options.Host == "" || options.Host == "https://github.com" {
		return github.NewClient(httpClient), nil
	}
	client, err := github.NewEnterpriseClient(options.Host, "", httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to build enterprise client for %s: %w", options.Host, err)
	}
	return client, nil
}

// Tree lists every file under root of the repository.
func (r *Reader) Tree(ctx context.Context, root string) ([]string, error) {
	var files []string
	var visit func(dir string) error
	visit = func(dir string) error {
		_, directory, _, err := r.repositories.GetContents(ctx, r.owner, r.repo, dir, r.contentOptions())
		if err != nil {
			return fmt.Errorf("failed to list %s in %s/%s: %w", dir, r.owner, r.repo, err)
		}
		for _, entry := range directory {
			switch entry.GetType() {
			case "dir":
				if err := visit(entry.GetPath()); err != nil {
					return err
				}
			case "file":
				files = append(files, entry.GetPath())
			}
		}
		return nil
	}
	if err := visit(strings.TrimPrefix(root, "/")); err != nil {
		return nil, err
	}
	sort.Strings(files)
	klog.V(6).Infof("listed %d files under %s in %s/%s", len(files), root, r.owner, r.repo)
	return files, nil
}

// Read returns the content of the file at path.
func (r *Reader) Read(ctx context.Context, path string) ([]byte, error) {
	fileContent, _, _, err := r.repositories.GetContents(ctx, r.owner, r.repo, path, r.contentOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to download %s from %s/%s: %w", path, r.owner, r.repo, err)
	}
	if fileContent == nil {
		return nil, fmt.Errorf("%s in %s/%s is not a file", path, r.owner, r.repo)
	}
	content, err := fileContent.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s from %s/%s: %w", path, r.owner, r.repo, err)
	}
	return []byte(content), nil
}

func (r *Reader) contentOptions() *github.RepositoryContentGetOptions {
	if r.ref == "" {
		return nil
	}
	return &github.RepositoryContentGetOptions{Ref: r.ref}
}
