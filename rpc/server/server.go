// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/counter"
	"github.com/bitmark-inc/registryd/mode"
	"github.com/bitmark-inc/registryd/rpc/asset"
	"github.com/bitmark-inc/registryd/rpc/escrow"
	"github.com/bitmark-inc/registryd/rpc/funds"
	"github.com/bitmark-inc/registryd/rpc/node"
	"github.com/bitmark-inc/registryd/rpc/share"
	"github.com/bitmark-inc/registryd/rpc/verifier"
)

// Create - register all services onto a JSON-RPC server
func Create(log *logger.L, version string, connections *counter.Counter) *rpc.Server {

	start := time.Now().UTC()
	testnet := mode.IsTesting()

	server := rpc.NewServer()

	_ = server.Register(asset.New(log, mode.Is, testnet))
	_ = server.Register(share.New(log, mode.Is, testnet))
	_ = server.Register(escrow.New(log, mode.Is, testnet))
	_ = server.Register(verifier.New(log, mode.Is, testnet))
	_ = server.Register(funds.New(log, mode.Is, testnet))
	_ = server.Register(node.New(log, start, version, connections))

	return server
}
