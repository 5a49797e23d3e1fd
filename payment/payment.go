// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package payment - the internal fund ledger
//
// every account has a single uint64 balance held in the funds pool;
// escrow settlement moves value between balances inside the same
// transaction that mutates the asset records, so a failed disbursement
// rolls the whole operation back
package payment

import (
	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/storage"
)

// Balance - the current fund balance of an account
func Balance(acc *account.Account) uint64 {
	n, _ := storage.Pool.Funds.GetN(acc.Bytes())
	return n
}

// Deposit - add funds to an account
//
// this is the entry point for value from the host ledger, it owns its
// own transaction
func Deposit(acc *account.Account, amount uint64) (uint64, error) {
	if nil == acc || 0 == amount {
		return 0, fault.InvalidParameters
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}

	key := acc.Bytes()
	balance, _ := storage.Pool.Funds.GetN(key)
	balance += amount
	storage.Pool.Funds.PutN(key, balance)

	err = trx.Commit()
	if nil != err {
		trx.Abort()
		return 0, err
	}
	return balance, nil
}

// Pay - move funds between two accounts
//
// must be inside a transaction; a zero amount is a no-op so fee legs
// that round down to nothing do not create empty fund records
func Pay(from *account.Account, to *account.Account, amount uint64) error {
	if 0 == amount {
		return nil
	}

	fromKey := from.Bytes()
	balance, _ := storage.Pool.Funds.GetN(fromKey)
	if balance < amount {
		return fault.InsufficientFunds
	}
	storage.Pool.Funds.PutN(fromKey, balance-amount)

	toKey := to.Bytes()
	toBalance, _ := storage.Pool.Funds.GetN(toKey)
	storage.Pool.Funds.PutN(toKey, toBalance+amount)
	return nil
}

// Withdraw - remove funds from an account
//
// this is the exit point for value back to the host ledger, it owns
// its own transaction
func Withdraw(acc *account.Account, amount uint64) (uint64, error) {
	if nil == acc || 0 == amount {
		return 0, fault.InvalidParameters
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}

	key := acc.Bytes()
	balance, _ := storage.Pool.Funds.GetN(key)
	if balance < amount {
		trx.Abort()
		return 0, fault.InsufficientFunds
	}
	balance -= amount
	if 0 == balance {
		storage.Pool.Funds.Delete(key)
	} else {
		storage.Pool.Funds.PutN(key, balance)
	}

	err = trx.Commit()
	if nil != err {
		trx.Abort()
		return 0, err
	}
	return balance, nil
}
