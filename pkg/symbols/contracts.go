// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package symbols

import "context"

// GraphSource is the subset of an input reader the loader needs
type GraphSource interface {
	// Tree lists the file paths under root
	Tree(ctx context.Context, root string) ([]string, error)
	// Read returns the content of the file at path
	Read(ctx context.Context, path string) ([]byte, error)
}
