// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package symbols

import (
	"hash/fnv"
	"strconv"
)

// StableHashLength is the number of characters of a stable hash.
const StableHashLength = 5

// StableHash derives the short disambiguation hash for a precise identifier.
// The result is stable across processes and matches ^[0-9a-z]{1,5}$.
func StableHash(precise string) string {
	h := fnv.New32a()
	// fnv never fails
	_, _ = h.Write([]byte(precise))
	encoded := strconv.FormatUint(uint64(h.Sum32()), 36)
	if len(encoded) > StableHashLength {
		encoded = encoded[len(encoded)-StableHashLength:]
	}
	return encoded
}

// StableHash is the short disambiguation hash of the symbol.
func (s *Symbol) StableHash() string {
	return StableHash(s.Identifier.Precise)
}
