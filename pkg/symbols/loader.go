// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package symbols

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"k8s.io/klog/v2"
)

// GraphFileSuffix marks the files under a symbol graph directory that the
// loader consumes.
const GraphFileSuffix = ".symbols.json"

// Load reads every symbol graph under root, ordered so that builds over the
// same directory are repeatable: file names without an "@" come first, then
// names with one, ties broken lexicographically. The file without "@" for a
// module is its primary graph and owns module root creation downstream.
func Load(ctx context.Context, source GraphSource, root string) ([]*Graph, error) {
	files, err := source.Tree(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to list symbol graphs in %s: %w", root, err)
	}
	var graphFiles []string
	for _, file := range files {
		if strings.HasSuffix(file, GraphFileSuffix) {
			graphFiles = append(graphFiles, file)
		}
	}
	SortGraphFiles(graphFiles)

	var (
		graphs []*Graph
		errs   *multierror.Error
	)
	for _, file := range graphFiles {
		content, err := source.Read(ctx, file)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("reading symbol graph %s failed: %w", file, err))
			continue
		}
		graph, err := Decode(content)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("decoding symbol graph %s failed: %w", file, err))
			continue
		}
		klog.V(6).Infof("loaded symbol graph %s: module %s, %d symbols, %d relationships", file, graph.Module.Name, len(graph.Symbols), len(graph.Relationships))
		graphs = append(graphs, graph)
	}
	return graphs, errs.ErrorOrNil()
}

// SortGraphFiles orders symbol graph file names so that primary graphs
// (no "@" in the base name) precede extension graphs of the same module.
func SortGraphFiles(files []string) {
	sort.SliceStable(files, func(i, j int) bool {
		iExtension := strings.Contains(path.Base(files[i]), "@")
		jExtension := strings.Contains(path.Base(files[j]), "@")
		if iExtension != jExtension {
			return jExtension
		}
		return files[i] < files[j]
	})
}
