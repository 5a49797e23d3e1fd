// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payment_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/payment"
	"github.com/bitmark-inc/registryd/storage"
)

func setup(t *testing.T) func() {
	t.Helper()

	dir, err := os.MkdirTemp("", "registryd-payment-test")
	if nil != err {
		t.Fatalf("cannot create temporary directory: %s", err)
	}

	_ = logger.Initialise(logger.Configuration{
		Directory: dir,
		File:      "test.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels:    map[string]string{logger.DefaultTag: "critical"},
	})

	err = storage.Initialise(filepath.Join(dir, "test.leveldb"), storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	return func() {
		storage.Finalise()
		logger.Finalise()
		os.RemoveAll(dir)
	}
}

func makeAccount(t *testing.T) *account.Account {
	t.Helper()
	acc, _, err := account.Generate(true)
	if nil != err {
		t.Fatalf("cannot generate account: %s", err)
	}
	return acc
}

func TestDepositAndBalance(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	alice := makeAccount(t)
	assert.Equal(t, uint64(0), payment.Balance(alice), "fresh account balance")

	balance, err := payment.Deposit(alice, 500)
	assert.NoError(t, err, "deposit")
	assert.Equal(t, uint64(500), balance, "returned balance")

	balance, err = payment.Deposit(alice, 250)
	assert.NoError(t, err, "second deposit")
	assert.Equal(t, uint64(750), balance, "accumulated balance")
	assert.Equal(t, uint64(750), payment.Balance(alice), "stored balance")

	_, err = payment.Deposit(alice, 0)
	assert.Equal(t, fault.InvalidParameters, err, "zero deposit accepted")
}

func TestPay(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	alice := makeAccount(t)
	bob := makeAccount(t)
	_, err := payment.Deposit(alice, 100)
	assert.NoError(t, err, "deposit")

	trx, _ := storage.NewDBTransaction()
	err = payment.Pay(alice, bob, 60)
	assert.NoError(t, err, "pay")
	assert.NoError(t, trx.Commit(), "commit")

	assert.Equal(t, uint64(40), payment.Balance(alice), "payer balance")
	assert.Equal(t, uint64(60), payment.Balance(bob), "payee balance")

	// over-payment fails and the abort leaves balances untouched
	trx, _ = storage.NewDBTransaction()
	err = payment.Pay(alice, bob, 41)
	assert.Equal(t, fault.InsufficientFunds, err, "overdraft allowed")
	trx.Abort()

	assert.Equal(t, uint64(40), payment.Balance(alice), "payer balance after abort")
	assert.Equal(t, uint64(60), payment.Balance(bob), "payee balance after abort")

	// a zero payment is a no-op
	trx, _ = storage.NewDBTransaction()
	assert.NoError(t, payment.Pay(alice, bob, 0), "zero payment")
	assert.NoError(t, trx.Commit(), "commit")
}

func TestWithdraw(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	alice := makeAccount(t)
	_, err := payment.Deposit(alice, 100)
	assert.NoError(t, err, "deposit")

	balance, err := payment.Withdraw(alice, 30)
	assert.NoError(t, err, "withdraw")
	assert.Equal(t, uint64(70), balance, "remaining balance")

	_, err = payment.Withdraw(alice, 71)
	assert.Equal(t, fault.InsufficientFunds, err, "over-withdrawal allowed")

	// withdrawing everything removes the fund record
	balance, err = payment.Withdraw(alice, 70)
	assert.NoError(t, err, "final withdraw")
	assert.Equal(t, uint64(0), balance, "emptied balance")
	assert.Equal(t, uint64(0), payment.Balance(alice), "stored balance")
}
