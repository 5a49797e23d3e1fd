// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/rpc/auth"
	"github.com/bitmark-inc/registryd/rpc/share"
)

// GetBalance - shares of an asset held by an account
func (client *Client) GetBalance(assetId uint64, owner *account.Account) (*share.BalanceReply, error) {

	balanceArgs := share.BalanceArguments{
		AssetId: assetId,
		Owner:   owner,
	}

	client.printJson("Balance Request", balanceArgs)

	var reply share.BalanceReply
	err := client.client.Call("Share.Balance", &balanceArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Balance Reply", reply)

	return &reply, nil
}

// GetHolders - every live share position of an asset
func (client *Client) GetHolders(assetId uint64) (*share.HoldersReply, error) {

	holdersArgs := share.HoldersArguments{
		AssetId: assetId,
	}

	client.printJson("Holders Request", holdersArgs)

	var reply share.HoldersReply
	err := client.client.Call("Share.Holders", &holdersArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Holders Reply", reply)

	return &reply, nil
}

// ShareTransferData - parameters for a share movement
type ShareTransferData struct {
	Owner    *account.PrivateKey
	AssetId  uint64
	NewOwner *account.Account
	Count    uint64
}

// TransferShares - move shares to another holder
func (client *Client) TransferShares(transferConfig *ShareTransferData) (*share.TransferReply, error) {

	message := auth.Message("Share.Transfer",
		auth.Uint(transferConfig.AssetId),
		transferConfig.NewOwner.String(),
		auth.Uint(transferConfig.Count),
	)

	transferArgs := share.TransferArguments{
		Caller:    transferConfig.Owner.Account(),
		Signature: transferConfig.Owner.Sign(message),
		AssetId:   transferConfig.AssetId,
		Recipient: transferConfig.NewOwner,
		Count:     transferConfig.Count,
	}

	client.printJson("Share Transfer Request", transferArgs)

	var reply share.TransferReply
	err := client.client.Call("Share.Transfer", &transferArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Share Transfer Reply", reply)

	return &reply, nil
}
