// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package share_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/clock"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/history"
	"github.com/bitmark-inc/registryd/record"
	"github.com/bitmark-inc/registryd/share"
	"github.com/bitmark-inc/registryd/storage"
)

func setup(t *testing.T) func() {
	t.Helper()

	dir, err := os.MkdirTemp("", "registryd-share-test")
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
	err = clock.Initialise(0)
	if nil != err {
		t.Fatalf("clock initialise error: %s", err)
	}

	return func() {
		clock.Finalise()
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

// store an asset and give its owner the full share amount
func makeFractionalAsset(t *testing.T, assetId uint64, owner *account.Account, totalShares uint64, locked bool) {
	t.Helper()
	trx, err := storage.NewDBTransaction()
	assert.NoError(t, err, "begin transaction")
	record.StoreAsset(assetId, &record.Asset{
		Owner:       owner,
		Description: "warehouse unit",
		AssetType:   "real-estate",
		Fractional:  true,
		TotalShares: totalShares,
		Locked:      locked,
	})
	share.Credit(assetId, owner, totalShares)
	share.SetOutstanding(assetId, totalShares)
	assert.NoError(t, trx.Commit(), "commit")
}

// sum of all balances for an asset
func totalHeld(t *testing.T, assetId uint64) uint64 {
	t.Helper()
	balances, err := share.Balances(assetId)
	assert.NoError(t, err, "balances")
	total := uint64(0)
	for _, b := range balances {
		total += b.Shares
	}
	return total
}

func TestTransfer(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	alice := makeAccount(t)
	bob := makeAccount(t)
	makeFractionalAsset(t, 1, alice, 1000, false)

	err := share.Transfer(alice, 1, bob, 300)
	assert.NoError(t, err, "transfer")

	assert.Equal(t, uint64(700), share.BalanceOf(1, alice), "sender balance")
	assert.Equal(t, uint64(300), share.BalanceOf(1, bob), "recipient balance")

	// conservation holds after the move
	assert.Equal(t, share.Outstanding(1), totalHeld(t, 1), "share conservation")

	// the move is in the audit trail with no amount
	entries, err := history.List(1, 0)
	assert.NoError(t, err, "history")
	assert.Equal(t, 1, len(entries), "history entry count")
	assert.Equal(t, record.Fractional, entries[0].TxType, "history type")
	assert.Equal(t, uint64(0), entries[0].Amount, "unpaid transfer amount")
}

func TestTransferEverything(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	alice := makeAccount(t)
	bob := makeAccount(t)
	makeFractionalAsset(t, 1, alice, 50, false)

	err := share.Transfer(alice, 1, bob, 50)
	assert.NoError(t, err, "transfer")

	// the emptied balance record is gone, not stored as zero
	assert.Equal(t, uint64(0), share.BalanceOf(1, alice), "sender balance")
	balances, err := share.Balances(1)
	assert.NoError(t, err, "balances")
	assert.Equal(t, 1, len(balances), "holder count")
	assert.True(t, balances[0].Owner.IsSame(bob), "remaining holder")
}

func TestTransferRefusals(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	alice := makeAccount(t)
	bob := makeAccount(t)
	makeFractionalAsset(t, 1, alice, 100, false)

	err := share.Transfer(alice, 9, bob, 10)
	assert.Equal(t, fault.AssetNotFound, err, "unknown asset")

	err = share.Transfer(alice, 1, bob, 0)
	assert.Equal(t, fault.InvalidParameters, err, "zero count")

	err = share.Transfer(alice, 1, alice, 10)
	assert.Equal(t, fault.InvalidParameters, err, "self transfer")

	err = share.Transfer(alice, 1, bob, 101)
	assert.Equal(t, fault.InsufficientShares, err, "overdraw")

	// a whole asset has no share ledger
	trx, _ := storage.NewDBTransaction()
	record.StoreAsset(2, &record.Asset{
		Owner:       alice,
		Description: "sculpture",
		AssetType:   "art",
		TotalShares: 1,
	})
	assert.NoError(t, trx.Commit(), "commit")
	err = share.Transfer(alice, 2, bob, 1)
	assert.Equal(t, fault.InvalidParameters, err, "whole asset share transfer")

	// a locked asset refuses share movement
	makeFractionalAsset(t, 3, alice, 100, true)
	err = share.Transfer(alice, 3, bob, 10)
	assert.Equal(t, fault.AssetLocked, err, "locked asset share transfer")

	// nothing moved in any refused case
	assert.Equal(t, uint64(100), share.BalanceOf(1, alice), "sender balance untouched")
	assert.Equal(t, uint64(0), share.BalanceOf(1, bob), "recipient balance untouched")
}
