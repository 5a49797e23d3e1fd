// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/rpc/auth"
	"github.com/bitmark-inc/registryd/rpc/escrow"
)

// SellAssetData - parameters for a whole asset sale offer
type SellAssetData struct {
	Seller           *account.PrivateKey
	AssetId          uint64
	Buyer            *account.Account
	Price            uint64
	ExpirationBlocks uint64
}

// CreateAssetEscrow - open an escrow selling a whole asset
func (client *Client) CreateAssetEscrow(sellConfig *SellAssetData) (*escrow.CreateReply, error) {

	message := auth.Message("Escrow.CreateAsset",
		auth.Uint(sellConfig.AssetId),
		sellConfig.Buyer.String(),
		auth.Uint(sellConfig.Price),
		auth.Uint(sellConfig.ExpirationBlocks),
	)

	createArgs := escrow.CreateAssetArguments{
		Caller:           sellConfig.Seller.Account(),
		Signature:        sellConfig.Seller.Sign(message),
		AssetId:          sellConfig.AssetId,
		Buyer:            sellConfig.Buyer,
		Price:            sellConfig.Price,
		ExpirationBlocks: sellConfig.ExpirationBlocks,
	}

	client.printJson("Escrow Request", createArgs)

	var reply escrow.CreateReply
	err := client.client.Call("Escrow.CreateAsset", &createArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Escrow Reply", reply)

	return &reply, nil
}

// SellSharesData - parameters for a share sale offer
type SellSharesData struct {
	Seller           *account.PrivateKey
	AssetId          uint64
	Buyer            *account.Account
	Shares           uint64
	Price            uint64
	ExpirationBlocks uint64
}

// CreateSharesEscrow - open an escrow selling shares of a fractional asset
func (client *Client) CreateSharesEscrow(sellConfig *SellSharesData) (*escrow.CreateReply, error) {

	message := auth.Message("Escrow.CreateShares",
		auth.Uint(sellConfig.AssetId),
		sellConfig.Buyer.String(),
		auth.Uint(sellConfig.Shares),
		auth.Uint(sellConfig.Price),
		auth.Uint(sellConfig.ExpirationBlocks),
	)

	createArgs := escrow.CreateSharesArguments{
		Caller:           sellConfig.Seller.Account(),
		Signature:        sellConfig.Seller.Sign(message),
		AssetId:          sellConfig.AssetId,
		Buyer:            sellConfig.Buyer,
		Shares:           sellConfig.Shares,
		Price:            sellConfig.Price,
		ExpirationBlocks: sellConfig.ExpirationBlocks,
	}

	client.printJson("Escrow Request", createArgs)

	var reply escrow.CreateReply
	err := client.client.Call("Escrow.CreateShares", &createArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Escrow Reply", reply)

	return &reply, nil
}

// EscrowActionData - parameters for a complete or cancel
type EscrowActionData struct {
	Caller   *account.PrivateKey
	EscrowId uint64
}

// CompleteEscrow - pay and take delivery, buyer only
func (client *Client) CompleteEscrow(actionConfig *EscrowActionData) (*escrow.ActionReply, error) {
	return client.escrowAction("Escrow.Complete", actionConfig)
}

// CancelEscrow - withdraw the offer, seller only
func (client *Client) CancelEscrow(actionConfig *EscrowActionData) (*escrow.ActionReply, error) {
	return client.escrowAction("Escrow.Cancel", actionConfig)
}

func (client *Client) escrowAction(method string, actionConfig *EscrowActionData) (*escrow.ActionReply, error) {

	message := auth.Message(method, auth.Uint(actionConfig.EscrowId))

	actionArgs := escrow.ActionArguments{
		Caller:    actionConfig.Caller.Account(),
		Signature: actionConfig.Caller.Sign(message),
		EscrowId:  actionConfig.EscrowId,
	}

	client.printJson("Escrow Request", actionArgs)

	var reply escrow.ActionReply
	err := client.client.Call(method, &actionArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Escrow Reply", reply)

	return &reply, nil
}

// GetEscrow - read one escrow record
func (client *Client) GetEscrow(escrowId uint64) (*escrow.GetReply, error) {

	getArgs := escrow.GetArguments{
		EscrowId: escrowId,
	}

	client.printJson("Escrow Request", getArgs)

	var reply escrow.GetReply
	err := client.client.Call("Escrow.Get", &getArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Escrow Reply", reply)

	return &reply, nil
}
