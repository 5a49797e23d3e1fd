// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package gate - run mode gating shared by the RPC services
package gate

import (
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/mode"
)

// Query - refuse read calls once the daemon is stopped
func Query(is func(mode.Mode) bool) error {
	if is(mode.Stopped) {
		return fault.NotAvailableInStoppedMode
	}
	return nil
}

// Mutate - refuse state changing calls unless fully running
func Mutate(is func(mode.Mode) bool) error {
	if is(mode.Stopped) {
		return fault.NotAvailableInStoppedMode
	}
	if !is(mode.Normal) {
		return fault.NotAvailableWhenReadOnly
	}
	return nil
}
