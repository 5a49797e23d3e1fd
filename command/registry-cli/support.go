// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/registryd/command/registry-cli/rpccalls"
)

// open the RPC connection described by the global flags
func getClient(m *metadata) (*rpccalls.Client, error) {
	connect, err := checkConnect(m)
	if nil != err {
		return nil, err
	}
	return rpccalls.NewClient(m.testnet, connect, m.verbose, m.e)
}
