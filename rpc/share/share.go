// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package share

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/mode"
	"github.com/bitmark-inc/registryd/rpc/auth"
	"github.com/bitmark-inc/registryd/rpc/gate"
	"github.com/bitmark-inc/registryd/rpc/ratelimit"
	"github.com/bitmark-inc/registryd/share"
)

const (
	rateLimitShare = 200
	rateBurstShare = 100
)

// Share - type for RPC
type Share struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Is      func(mode.Mode) bool
	Testnet bool
}

// New - create the share service
func New(log *logger.L, is func(mode.Mode) bool, testnet bool) *Share {
	return &Share{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitShare, rateBurstShare),
		Is:      is,
		Testnet: testnet,
	}
}

// Balance of one holder
// ---------------------

// BalanceArguments - balance selector
type BalanceArguments struct {
	AssetId uint64           `json:"assetId"`
	Owner   *account.Account `json:"owner"`
}

// BalanceReply - one holder's position
type BalanceReply struct {
	AssetId     uint64 `json:"assetId"`
	Shares      uint64 `json:"shares"`
	Outstanding uint64 `json:"outstanding"`
}

// Balance - shares of an asset held by an account
func (s *Share) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}
	if err := gate.Query(s.Is); nil != err {
		return err
	}
	if nil == arguments.Owner {
		return fault.MissingParameters
	}

	reply.AssetId = arguments.AssetId
	reply.Shares = share.BalanceOf(arguments.AssetId, arguments.Owner)
	reply.Outstanding = share.Outstanding(arguments.AssetId)
	return nil
}

// All holders of an asset
// -----------------------

// HoldersArguments - holder listing selector
type HoldersArguments struct {
	AssetId uint64 `json:"assetId"`
}

// HoldersReply - every live balance of an asset
type HoldersReply struct {
	AssetId     uint64                `json:"assetId"`
	Outstanding uint64                `json:"outstanding"`
	Balances    []share.BalanceRecord `json:"balances"`
}

// Holders - list all share positions of an asset
func (s *Share) Holders(arguments *HoldersArguments, reply *HoldersReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}
	if err := gate.Query(s.Is); nil != err {
		return err
	}

	balances, err := share.Balances(arguments.AssetId)
	if nil != err {
		return err
	}
	reply.AssetId = arguments.AssetId
	reply.Outstanding = share.Outstanding(arguments.AssetId)
	reply.Balances = balances
	return nil
}

// Transfer shares
// ---------------

// TransferArguments - signed share movement
type TransferArguments struct {
	Caller    *account.Account  `json:"caller"`
	Signature account.Signature `json:"signature"`
	AssetId   uint64            `json:"assetId"`
	Recipient *account.Account  `json:"recipient"`
	Count     uint64            `json:"count"`
}

// TransferReply - resulting balances of both parties
type TransferReply struct {
	AssetId          uint64 `json:"assetId"`
	SenderShares     uint64 `json:"senderShares"`
	RecipientShares  uint64 `json:"recipientShares"`
	OutstandingTotal uint64 `json:"outstandingTotal"`
}

// Transfer - move shares to another holder
func (s *Share) Transfer(arguments *TransferArguments, reply *TransferReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}
	if err := gate.Mutate(s.Is); nil != err {
		return err
	}
	if nil == arguments.Recipient {
		return fault.MissingParameters
	}
	message := auth.Message("Share.Transfer",
		auth.Uint(arguments.AssetId),
		arguments.Recipient.String(),
		auth.Uint(arguments.Count),
	)
	if err := auth.Verify(arguments.Caller, arguments.Signature, message, s.Testnet); nil != err {
		return err
	}

	s.Log.Infof("Share.Transfer: %d×%d to %s", arguments.Count, arguments.AssetId, arguments.Recipient)

	err := share.Transfer(arguments.Caller, arguments.AssetId, arguments.Recipient, arguments.Count)
	if nil != err {
		return err
	}
	reply.AssetId = arguments.AssetId
	reply.SenderShares = share.BalanceOf(arguments.AssetId, arguments.Caller)
	reply.RecipientShares = share.BalanceOf(arguments.AssetId, arguments.Recipient)
	reply.OutstandingTotal = share.Outstanding(arguments.AssetId)
	return nil
}
