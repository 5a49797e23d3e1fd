// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package identifier - monotonic id allocation
//
// each named sequence starts at one; the increment is staged in the
// caller's transaction so an allocation rolls back with the operation
// that made it and no two committed records ever share an id
package identifier

import (
	"github.com/bitmark-inc/registryd/storage"
)

// the allocator names in use
const (
	Asset   = "asset"
	Escrow  = "escrow"
	History = "history"
)

// New - allocate the next id from a named sequence
//
// must be inside a transaction
func New(name string) uint64 {
	key := []byte(name)
	n, _ := storage.Pool.Identifiers.GetN(key)
	n += 1
	storage.Pool.Identifiers.PutN(key, n)
	return n
}

// Current - the highest id allocated from a named sequence
//
// zero if the sequence was never used
func Current(name string) uint64 {
	n, _ := storage.Pool.Identifiers.GetN([]byte(name))
	return n
}
