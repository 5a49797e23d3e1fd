// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/clock"
	"github.com/bitmark-inc/registryd/counter"
	"github.com/bitmark-inc/registryd/identifier"
	"github.com/bitmark-inc/registryd/mode"
	"github.com/bitmark-inc/registryd/rpc/gate"
	"github.com/bitmark-inc/registryd/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Counter *counter.Counter
}

// New - create the node service
func New(log *logger.L, start time.Time, version string, connections *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		Counter: connections,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - daemon status summary
type InfoReply struct {
	Chain       string `json:"chain"`
	Mode        string `json:"mode"`
	Height      uint64 `json:"height"`
	Assets      uint64 `json:"assets"`
	Escrows     uint64 `json:"escrows"`
	Connections uint64 `json:"connections"`
	Version     string `json:"version"`
	Uptime      string `json:"uptime"`
}

// Info - report the node status
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}
	if err := gate.Query(mode.Is); nil != err {
		return err
	}

	if mode.Is(mode.Normal) {
		reply.Mode = "Normal"
	} else if mode.Is(mode.ReadOnly) {
		reply.Mode = "ReadOnly"
	} else {
		reply.Mode = "Stopped"
	}
	reply.Chain = mode.ChainName()
	reply.Height = clock.Height()
	reply.Assets = identifier.Current(identifier.Asset)
	reply.Escrows = identifier.Current(identifier.Escrow)
	reply.Connections = node.Counter.Uint64()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}
