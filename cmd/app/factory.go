// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"fmt"
	"strings"

	"k8s.io/klog/v2"

	"github.com/gardener/doclink/pkg/bundle"
	"github.com/gardener/doclink/pkg/hierarchy"
	"github.com/gardener/doclink/pkg/readers"
	"github.com/gardener/doclink/pkg/readers/fs"
	"github.com/gardener/doclink/pkg/readers/git"
	"github.com/gardener/doclink/pkg/readers/github"
	"github.com/gardener/doclink/pkg/resolver"
	"github.com/gardener/doclink/pkg/symbols"
)

// newReader picks the reader backend from the source notation: github://
// for the GitHub API, *.git or git:// for a clone, a directory otherwise.
func newReader(ctx context.Context, options *Options) (readers.Reader, error) {
	source := options.Source
	switch {
	case strings.HasPrefix(source, "github://"):
		location := strings.TrimPrefix(source, "github://")
		parts := strings.SplitN(location, "/", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("github source %q must be github://owner/repo", source)
		}
		return github.NewReader(ctx, parts[0], parts[1], options.Branch, github.Options{
			OAuthToken: options.GhOAuthToken,
			CacheDir:   options.CacheHomeDir,
			Host:       options.GhHost,
		})
	case strings.HasSuffix(source, ".git") || strings.HasPrefix(source, "git://"):
		return git.NewReader(ctx, source, options.Branch)
	default:
		return fs.NewReader(source), nil
	}
}

// buildResolver loads the symbol graphs and the bundle manifest through the
// reader and produces a frozen resolver over the resulting hierarchy.
func buildResolver(ctx context.Context, options *Options) (*resolver.Resolver, error) {
	reader, err := newReader(ctx, options)
	if err != nil {
		return nil, err
	}
	graphs, err := symbols.Load(ctx, reader, options.SymbolGraphDir)
	if err != nil {
		if options.FailFast {
			return nil, err
		}
		klog.Warningf("loading symbol graphs was partial: %v", err)
	}

	bundleID, displayName := "local", ""
	var manifest *bundle.Manifest
	if options.BundleManifest != "" {
		content, err := reader.Read(ctx, options.BundleManifest)
		if err != nil {
			return nil, err
		}
		if manifest, err = bundle.Parse(content); err != nil {
			return nil, err
		}
		bundleID, displayName = manifest.BundleID, manifest.DisplayName
	}

	h, err := hierarchy.Build(graphs, hierarchy.BuildOptions{
		BundleID:    bundleID,
		DisplayName: displayName,
	})
	if err != nil {
		if options.FailFast {
			return nil, err
		}
		klog.Warningf("hierarchy build was partial: %v", err)
	}
	if manifest != nil {
		if err := manifest.Graft(ctx, h, reader); err != nil {
			if options.FailFast {
				return nil, err
			}
			klog.Warningf("bundle grafting was partial: %v", err)
		}
	}
	return resolver.New(h), nil
}
