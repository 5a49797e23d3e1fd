// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package funds

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/mode"
	"github.com/bitmark-inc/registryd/payment"
	"github.com/bitmark-inc/registryd/rpc/auth"
	"github.com/bitmark-inc/registryd/rpc/gate"
	"github.com/bitmark-inc/registryd/rpc/ratelimit"
)

const (
	rateLimitFunds = 200
	rateBurstFunds = 100
)

// Funds - type for RPC
type Funds struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Is      func(mode.Mode) bool
	Testnet bool
}

// New - create the funds service
func New(log *logger.L, is func(mode.Mode) bool, testnet bool) *Funds {
	return &Funds{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitFunds, rateBurstFunds),
		Is:      is,
		Testnet: testnet,
	}
}

// BalanceArguments - balance selector
type BalanceArguments struct {
	Account *account.Account `json:"account"`
}

// BalanceReply - current fund balance
type BalanceReply struct {
	Account *account.Account `json:"account"`
	Balance uint64           `json:"balance"`
}

// Balance - read the fund balance of an account
func (f *Funds) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(f.Limiter); nil != err {
		return err
	}
	if err := gate.Query(f.Is); nil != err {
		return err
	}
	if nil == arguments.Account {
		return fault.MissingParameters
	}

	reply.Account = arguments.Account
	reply.Balance = payment.Balance(arguments.Account)
	return nil
}

// MoveArguments - signed deposit or withdrawal
type MoveArguments struct {
	Caller    *account.Account  `json:"caller"`
	Signature account.Signature `json:"signature"`
	Amount    uint64            `json:"amount"`
}

// MoveReply - resulting balance
type MoveReply struct {
	Account *account.Account `json:"account"`
	Balance uint64           `json:"balance"`
}

// Deposit - credit host ledger value to the caller's fund balance
func (f *Funds) Deposit(arguments *MoveArguments, reply *MoveReply) error {
	if err := ratelimit.Limit(f.Limiter); nil != err {
		return err
	}
	if err := gate.Mutate(f.Is); nil != err {
		return err
	}
	message := auth.Message("Funds.Deposit", auth.Uint(arguments.Amount))
	if err := auth.Verify(arguments.Caller, arguments.Signature, message, f.Testnet); nil != err {
		return err
	}

	f.Log.Infof("Funds.Deposit: %d for %s", arguments.Amount, arguments.Caller)

	balance, err := payment.Deposit(arguments.Caller, arguments.Amount)
	if nil != err {
		return err
	}
	reply.Account = arguments.Caller
	reply.Balance = balance
	return nil
}

// Withdraw - return fund balance to the host ledger
func (f *Funds) Withdraw(arguments *MoveArguments, reply *MoveReply) error {
	if err := ratelimit.Limit(f.Limiter); nil != err {
		return err
	}
	if err := gate.Mutate(f.Is); nil != err {
		return err
	}
	message := auth.Message("Funds.Withdraw", auth.Uint(arguments.Amount))
	if err := auth.Verify(arguments.Caller, arguments.Signature, message, f.Testnet); nil != err {
		return err
	}

	f.Log.Infof("Funds.Withdraw: %d for %s", arguments.Amount, arguments.Caller)

	balance, err := payment.Withdraw(arguments.Caller, arguments.Amount)
	if nil != err {
		return err
	}
	reply.Account = arguments.Caller
	reply.Balance = balance
	return nil
}
