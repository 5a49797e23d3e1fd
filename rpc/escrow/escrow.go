// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package escrow

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/escrow"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/mode"
	"github.com/bitmark-inc/registryd/record"
	"github.com/bitmark-inc/registryd/rpc/auth"
	"github.com/bitmark-inc/registryd/rpc/gate"
	"github.com/bitmark-inc/registryd/rpc/ratelimit"
)

const (
	rateLimitEscrow = 200
	rateBurstEscrow = 100
)

// Escrow - type for RPC
type Escrow struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Is      func(mode.Mode) bool
	Testnet bool
}

// New - create the escrow service
func New(log *logger.L, is func(mode.Mode) bool, testnet bool) *Escrow {
	return &Escrow{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitEscrow, rateBurstEscrow),
		Is:      is,
		Testnet: testnet,
	}
}

// Open a whole asset escrow
// -------------------------

// CreateAssetArguments - signed whole asset sale offer
type CreateAssetArguments struct {
	Caller           *account.Account  `json:"caller"`
	Signature        account.Signature `json:"signature"`
	AssetId          uint64            `json:"assetId"`
	Buyer            *account.Account  `json:"buyer"`
	Price            uint64            `json:"price"`
	ExpirationBlocks uint64            `json:"expirationBlocks"`
}

// CreateReply - the allocated escrow id
type CreateReply struct {
	EscrowId uint64 `json:"escrowId"`
}

// CreateAsset - open an escrow selling a whole asset, owner only
func (e *Escrow) CreateAsset(arguments *CreateAssetArguments, reply *CreateReply) error {
	if err := ratelimit.Limit(e.Limiter); nil != err {
		return err
	}
	if err := gate.Mutate(e.Is); nil != err {
		return err
	}
	if nil == arguments.Buyer {
		return fault.MissingParameters
	}
	message := auth.Message("Escrow.CreateAsset",
		auth.Uint(arguments.AssetId),
		arguments.Buyer.String(),
		auth.Uint(arguments.Price),
		auth.Uint(arguments.ExpirationBlocks),
	)
	if err := auth.Verify(arguments.Caller, arguments.Signature, message, e.Testnet); nil != err {
		return err
	}

	e.Log.Infof("Escrow.CreateAsset: %d to %s for %d", arguments.AssetId, arguments.Buyer, arguments.Price)

	escrowId, err := escrow.CreateAsset(arguments.Caller, arguments.AssetId, arguments.Buyer, arguments.Price, arguments.ExpirationBlocks)
	if nil != err {
		return err
	}
	reply.EscrowId = escrowId
	return nil
}

// Open a share escrow
// -------------------

// CreateSharesArguments - signed share sale offer
type CreateSharesArguments struct {
	Caller           *account.Account  `json:"caller"`
	Signature        account.Signature `json:"signature"`
	AssetId          uint64            `json:"assetId"`
	Buyer            *account.Account  `json:"buyer"`
	Shares           uint64            `json:"shares"`
	Price            uint64            `json:"price"`
	ExpirationBlocks uint64            `json:"expirationBlocks"`
}

// CreateShares - open an escrow selling shares of a fractional asset
func (e *Escrow) CreateShares(arguments *CreateSharesArguments, reply *CreateReply) error {
	if err := ratelimit.Limit(e.Limiter); nil != err {
		return err
	}
	if err := gate.Mutate(e.Is); nil != err {
		return err
	}
	if nil == arguments.Buyer {
		return fault.MissingParameters
	}
	message := auth.Message("Escrow.CreateShares",
		auth.Uint(arguments.AssetId),
		arguments.Buyer.String(),
		auth.Uint(arguments.Shares),
		auth.Uint(arguments.Price),
		auth.Uint(arguments.ExpirationBlocks),
	)
	if err := auth.Verify(arguments.Caller, arguments.Signature, message, e.Testnet); nil != err {
		return err
	}

	e.Log.Infof("Escrow.CreateShares: %d×%d to %s for %d", arguments.Shares, arguments.AssetId, arguments.Buyer, arguments.Price)

	escrowId, err := escrow.CreateShares(arguments.Caller, arguments.AssetId, arguments.Buyer, arguments.Shares, arguments.Price, arguments.ExpirationBlocks)
	if nil != err {
		return err
	}
	reply.EscrowId = escrowId
	return nil
}

// Complete or cancel
// ------------------

// ActionArguments - signed action on an open escrow
type ActionArguments struct {
	Caller    *account.Account  `json:"caller"`
	Signature account.Signature `json:"signature"`
	EscrowId  uint64            `json:"escrowId"`
}

// ActionReply - resulting escrow status
type ActionReply struct {
	EscrowId uint64              `json:"escrowId"`
	Status   record.EscrowStatus `json:"status"`
}

// Complete - buyer pays and takes delivery
func (e *Escrow) Complete(arguments *ActionArguments, reply *ActionReply) error {
	if err := ratelimit.Limit(e.Limiter); nil != err {
		return err
	}
	if err := gate.Mutate(e.Is); nil != err {
		return err
	}
	message := auth.Message("Escrow.Complete", auth.Uint(arguments.EscrowId))
	if err := auth.Verify(arguments.Caller, arguments.Signature, message, e.Testnet); nil != err {
		return err
	}

	e.Log.Infof("Escrow.Complete: %d by %s", arguments.EscrowId, arguments.Caller)

	err := escrow.Complete(arguments.Caller, arguments.EscrowId)
	if nil != err {
		return err
	}
	reply.EscrowId = arguments.EscrowId
	reply.Status = record.CompletedEscrow
	return nil
}

// Cancel - seller withdraws the offer
func (e *Escrow) Cancel(arguments *ActionArguments, reply *ActionReply) error {
	if err := ratelimit.Limit(e.Limiter); nil != err {
		return err
	}
	if err := gate.Mutate(e.Is); nil != err {
		return err
	}
	message := auth.Message("Escrow.Cancel", auth.Uint(arguments.EscrowId))
	if err := auth.Verify(arguments.Caller, arguments.Signature, message, e.Testnet); nil != err {
		return err
	}

	e.Log.Infof("Escrow.Cancel: %d by %s", arguments.EscrowId, arguments.Caller)

	err := escrow.Cancel(arguments.Caller, arguments.EscrowId)
	if nil != err {
		return err
	}
	reply.EscrowId = arguments.EscrowId
	reply.Status = record.CancelledEscrow
	return nil
}

// Read one escrow
// ---------------

// GetArguments - escrow selector
type GetArguments struct {
	EscrowId uint64 `json:"escrowId"`
}

// GetReply - the escrow record with derived expiry
type GetReply struct {
	EscrowId uint64         `json:"escrowId"`
	Escrow   *record.Escrow `json:"escrow"`
}

// Get - read one escrow, overdue Active records report Expired
func (e *Escrow) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(e.Limiter); nil != err {
		return err
	}
	if err := gate.Query(e.Is); nil != err {
		return err
	}

	rec, err := escrow.Get(arguments.EscrowId)
	if nil != err {
		return err
	}
	reply.EscrowId = arguments.EscrowId
	reply.Escrow = rec
	return nil
}
