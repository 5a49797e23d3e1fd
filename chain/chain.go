// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain - names of the supported ledgers
package chain

// names of all chains
const (
	Registry = "registry" // production
	Testing  = "testing"  // shared test network
	Local    = "local"    // local development
)

// Valid - check for one of the supported chains
func Valid(name string) bool {
	switch name {
	case Registry, Testing, Local:
		return true
	default:
		return false
	}
}
