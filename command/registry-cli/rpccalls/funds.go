// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/rpc/auth"
	"github.com/bitmark-inc/registryd/rpc/funds"
)

// GetFunds - read the fund balance of an account
func (client *Client) GetFunds(acc *account.Account) (*funds.BalanceReply, error) {

	balanceArgs := funds.BalanceArguments{
		Account: acc,
	}

	client.printJson("Funds Request", balanceArgs)

	var reply funds.BalanceReply
	err := client.client.Call("Funds.Balance", &balanceArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Funds Reply", reply)

	return &reply, nil
}

// FundsMoveData - parameters for a deposit or withdrawal
type FundsMoveData struct {
	Owner  *account.PrivateKey
	Amount uint64
}

// Deposit - credit the caller's fund balance
func (client *Client) Deposit(moveConfig *FundsMoveData) (*funds.MoveReply, error) {
	return client.moveFunds("Funds.Deposit", moveConfig)
}

// Withdraw - return fund balance to the host ledger
func (client *Client) Withdraw(moveConfig *FundsMoveData) (*funds.MoveReply, error) {
	return client.moveFunds("Funds.Withdraw", moveConfig)
}

func (client *Client) moveFunds(method string, moveConfig *FundsMoveData) (*funds.MoveReply, error) {

	if 0 == moveConfig.Amount {
		return nil, fault.InvalidParameters
	}

	message := auth.Message(method, auth.Uint(moveConfig.Amount))

	moveArgs := funds.MoveArguments{
		Caller:    moveConfig.Owner.Account(),
		Signature: moveConfig.Owner.Sign(message),
		Amount:    moveConfig.Amount,
	}

	client.printJson("Funds Request", moveArgs)

	var reply funds.MoveReply
	err := client.client.Call(method, &moveArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Funds Reply", reply)

	return &reply, nil
}
