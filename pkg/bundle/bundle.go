// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package bundle reads a documentation bundle manifest and grafts its
// non-symbol pages onto a path hierarchy.
package bundle

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"

	"github.com/gardener/doclink/pkg/hierarchy"
)

// Manifest declares the non-symbol content of a documentation bundle.
type Manifest struct {
	// BundleID is the stable identifier of the bundle
	BundleID string `yaml:"bundleID"`
	// DisplayName names the bundle's page containers
	DisplayName string `yaml:"displayName,omitempty"`
	// Articles are markdown files with free form documentation
	Articles []string `yaml:"articles,omitempty"`
	// Tutorials are markdown files with step by step instructions
	Tutorials []string `yaml:"tutorials,omitempty"`
	// TutorialOverviews are landing pages over groups of tutorials
	TutorialOverviews []string `yaml:"tutorialOverviews,omitempty"`
	// Technologies are additional hierarchy roots with nested volumes
	Technologies []Technology `yaml:"technologies,omitempty"`
}

// Technology is a root with nested volumes and chapters.
type Technology struct {
	Name    string   `yaml:"name"`
	Volumes []Volume `yaml:"volumes,omitempty"`
}

// Volume groups chapters of a technology.
type Volume struct {
	Name     string   `yaml:"name"`
	Chapters []string `yaml:"chapters,omitempty"`
}

// FileSource reads the markdown files a manifest references.
type FileSource interface {
	Read(ctx context.Context, path string) ([]byte, error)
}

// Parse decodes a bundle manifest.
func Parse(content []byte) (*Manifest, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(content, &manifest); err != nil {
		return nil, fmt.Errorf("failed to decode bundle manifest: %w", err)
	}
	if manifest.BundleID == "" {
		return nil, fmt.Errorf("bundle manifest declares no bundleID")
	}
	return &manifest, nil
}

// Graft attaches every page of the manifest to the hierarchy: articles,
// tutorials and overviews under their containers, technologies as
// additional roots, and the pages' headings as anchor children. Call
// Freeze on the hierarchy (or construct the resolver) afterwards.
func (m *Manifest) Graft(ctx context.Context, h *hierarchy.Hierarchy, source FileSource) error {
	var errs *multierror.Error
	for _, file := range m.Articles {
		page, err := m.readPage(ctx, source, file)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		node := h.AddArticle(m.BundleID, page.Name)
		page.graftOnPageMarks(h, node)
	}
	for _, file := range m.Tutorials {
		page, err := m.readPage(ctx, source, file)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		node := h.AddTutorial(m.BundleID, page.Name)
		for _, landmark := range page.Landmarks {
			h.AddLandmark(node, landmark)
		}
		page.graftOnPageMarks(h, node)
	}
	for _, file := range m.TutorialOverviews {
		page, err := m.readPage(ctx, source, file)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		node := h.AddTutorialOverview(m.BundleID, page.Name)
		page.graftOnPageMarks(h, node)
	}
	for _, technology := range m.Technologies {
		root := h.AddTechnology(m.BundleID, technology.Name)
		for _, volume := range technology.Volumes {
			volumeNode := h.AddVolume(root, volume.Name)
			for _, chapter := range volume.Chapters {
				h.AddChapter(volumeNode, chapter)
			}
		}
	}
	return errs.ErrorOrNil()
}

func (m *Manifest) readPage(ctx context.Context, source FileSource, file string) (*Page, error) {
	content, err := source.Read(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("reading page %s failed: %w", file, err)
	}
	page, err := ScanPage(content)
	if err != nil {
		return nil, fmt.Errorf("scanning page %s failed: %w", file, err)
	}
	if page.Name == "" {
		page.Name = pageName(file)
	}
	klog.V(6).Infof("scanned page %s: %d anchors, %d task groups", page.Name, len(page.Anchors), len(page.TaskGroups))
	return page, nil
}

func (p *Page) graftOnPageMarks(h *hierarchy.Hierarchy, node *hierarchy.Node) {
	for _, anchor := range p.Anchors {
		h.AddAnchor(node, anchor)
	}
	for _, taskGroup := range p.TaskGroups {
		h.AddTaskGroup(node, taskGroup)
	}
}

// pageName derives a page name from its file name.
func pageName(file string) string {
	base := path.Base(file)
	return strings.TrimSuffix(strings.TrimSuffix(base, ".md"), ".tutorial")
}
