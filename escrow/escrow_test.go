// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package escrow_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/chain"
	"github.com/bitmark-inc/registryd/clock"
	"github.com/bitmark-inc/registryd/escrow"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/fees"
	"github.com/bitmark-inc/registryd/history"
	"github.com/bitmark-inc/registryd/mode"
	"github.com/bitmark-inc/registryd/payment"
	"github.com/bitmark-inc/registryd/record"
	"github.com/bitmark-inc/registryd/registry"
	"github.com/bitmark-inc/registryd/share"
	"github.com/bitmark-inc/registryd/storage"
)

var platform *account.Account

func setup(t *testing.T) func() {
	t.Helper()

	dir, err := os.MkdirTemp("", "registryd-escrow-test")
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

	err = mode.Initialise(chain.Testing)
	if nil != err {
		t.Fatalf("mode initialise error: %s", err)
	}
	err = storage.Initialise(filepath.Join(dir, "test.leveldb"), storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	err = clock.Initialise(0)
	if nil != err {
		t.Fatalf("clock initialise error: %s", err)
	}

	platform = makeAccount(t)
	err = fees.Initialise(platform)
	if nil != err {
		t.Fatalf("fees initialise error: %s", err)
	}

	return func() {
		fees.Finalise()
		clock.Finalise()
		storage.Finalise()
		mode.Finalise()
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

func registerWhole(t *testing.T, owner *account.Account) uint64 {
	t.Helper()
	assetId, err := registry.Register(owner, registry.Registration{
		Description:    "beach front villa",
		AssetType:      "real-estate",
		Valuation:      100000,
		RoyaltyPercent: 10,
	})
	assert.NoError(t, err, "register")
	return assetId
}

func registerFractional(t *testing.T, owner *account.Account, shares uint64, royalty uint64) uint64 {
	t.Helper()
	assetId, err := registry.Register(owner, registry.Registration{
		Description:    "office tower",
		AssetType:      "real-estate",
		Valuation:      900000,
		Fractional:     true,
		TotalShares:    shares,
		RoyaltyPercent: royalty,
	})
	assert.NoError(t, err, "register")
	return assetId
}

// a whole asset sale: lock, pay, deliver, unlock
func TestWholeAssetSale(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	seller := makeAccount(t)
	buyer := makeAccount(t)
	assetId := registerWhole(t, seller)
	_, err := payment.Deposit(buyer, 2000)
	assert.NoError(t, err, "deposit")

	escrowId, err := escrow.CreateAsset(seller, assetId, buyer, 1000, 100)
	assert.NoError(t, err, "create")
	assert.Equal(t, uint64(1), escrowId, "first escrow id")

	// the asset is locked while the escrow is open
	asset, _ := registry.Get(assetId)
	assert.True(t, asset.Locked, "asset not locked")
	err = registry.Transfer(seller, assetId, buyer)
	assert.Equal(t, fault.AssetLocked, err, "locked asset transferred")

	// a second escrow against the same asset is refused
	_, err = escrow.CreateAsset(seller, assetId, buyer, 500, 100)
	assert.Equal(t, fault.AssetLocked, err, "double escrow accepted")

	err = escrow.Complete(buyer, escrowId)
	assert.NoError(t, err, "complete")

	asset, _ = registry.Get(assetId)
	assert.True(t, asset.Owner.IsSame(buyer), "ownership moved")
	assert.False(t, asset.Locked, "asset still locked")

	// seller is the recorded owner so no royalty leg is paid
	assert.Equal(t, uint64(50), payment.Balance(platform), "platform fee")
	assert.Equal(t, uint64(850), payment.Balance(seller), "seller proceeds")
	assert.Equal(t, uint64(1100), payment.Balance(buyer), "buyer change")

	rec, err := escrow.Get(escrowId)
	assert.NoError(t, err, "get")
	assert.Equal(t, record.CompletedEscrow, rec.Status, "status")

	// the paid transfer is in the provenance with its price
	entries, _ := history.List(assetId, 0)
	assert.Equal(t, 2, len(entries), "history entry count")
	assert.Equal(t, record.Transfer, entries[1].TxType, "history type")
	assert.Equal(t, uint64(1000), entries[1].Amount, "history amount")
}

// a share sale by a reseller pays royalty to the recorded owner
func TestShareSaleWithRoyalty(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	issuer := makeAccount(t)
	reseller := makeAccount(t)
	buyer := makeAccount(t)
	assetId := registerFractional(t, issuer, 1000, 10)

	assert.NoError(t, share.Transfer(issuer, assetId, reseller, 400), "spread shares")
	_, err := payment.Deposit(buyer, 1000)
	assert.NoError(t, err, "deposit")

	escrowId, err := escrow.CreateShares(reseller, assetId, buyer, 300, 1000, 50)
	assert.NoError(t, err, "create")

	err = escrow.Complete(buyer, escrowId)
	assert.NoError(t, err, "complete")

	assert.Equal(t, uint64(100), share.BalanceOf(assetId, reseller), "reseller shares")
	assert.Equal(t, uint64(300), share.BalanceOf(assetId, buyer), "buyer shares")
	assert.Equal(t, uint64(600), share.BalanceOf(assetId, issuer), "issuer shares")
	assert.Equal(t, share.Outstanding(assetId), uint64(1000), "outstanding unchanged")

	assert.Equal(t, uint64(50), payment.Balance(platform), "platform fee")
	assert.Equal(t, uint64(100), payment.Balance(issuer), "issuer royalty")
	assert.Equal(t, uint64(850), payment.Balance(reseller), "reseller proceeds")
	assert.Equal(t, uint64(0), payment.Balance(buyer), "buyer balance")
}

// shares are not reserved, a seller can oversell and the late
// completion fails with nothing changed
func TestShareOversell(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	issuer := makeAccount(t)
	buyer := makeAccount(t)
	other := makeAccount(t)
	assetId := registerFractional(t, issuer, 100, 0)
	_, err := payment.Deposit(buyer, 1000)
	assert.NoError(t, err, "deposit")

	escrowId, err := escrow.CreateShares(issuer, assetId, buyer, 80, 500, 50)
	assert.NoError(t, err, "create")

	// the escrowed shares walk away in the meantime
	assert.NoError(t, share.Transfer(issuer, assetId, other, 60), "drain shares")

	err = escrow.Complete(buyer, escrowId)
	assert.Equal(t, fault.InsufficientShares, err, "oversold completion accepted")

	// the failed completion left everything alone
	assert.Equal(t, uint64(40), share.BalanceOf(assetId, issuer), "issuer shares")
	assert.Equal(t, uint64(0), share.BalanceOf(assetId, buyer), "buyer shares")
	assert.Equal(t, uint64(1000), payment.Balance(buyer), "buyer balance")
	assert.Equal(t, uint64(0), payment.Balance(platform), "platform balance")
	rec, _ := escrow.Get(escrowId)
	assert.Equal(t, record.ActiveEscrow, rec.Status, "status")
}

// only the buyer of a live escrow may complete
func TestCompleteAuthorization(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	seller := makeAccount(t)
	buyer := makeAccount(t)
	intruder := makeAccount(t)
	assetId := registerWhole(t, seller)
	_, err := payment.Deposit(buyer, 2000)
	assert.NoError(t, err, "deposit")

	escrowId, err := escrow.CreateAsset(seller, assetId, buyer, 1000, 100)
	assert.NoError(t, err, "create")

	err = escrow.Complete(buyer, 99)
	assert.Equal(t, fault.EscrowNotFound, err, "completed unknown escrow")

	err = escrow.Complete(intruder, escrowId)
	assert.Equal(t, fault.NotAuthorized, err, "stranger completed")
	err = escrow.Complete(seller, escrowId)
	assert.Equal(t, fault.NotAuthorized, err, "seller completed")

	assert.NoError(t, escrow.Complete(buyer, escrowId), "complete")

	// terminal states stay terminal
	err = escrow.Complete(buyer, escrowId)
	assert.Equal(t, fault.NotAuthorized, err, "completed twice")
	err = escrow.Cancel(seller, escrowId)
	assert.Equal(t, fault.NotAuthorized, err, "cancelled after completion")
}

// completion is refused at and after the expiration height but the
// lock survives until the seller cancels
func TestExpiry(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	seller := makeAccount(t)
	buyer := makeAccount(t)
	assetId := registerWhole(t, seller)
	_, err := payment.Deposit(buyer, 2000)
	assert.NoError(t, err, "deposit")

	escrowId, err := escrow.CreateAsset(seller, assetId, buyer, 1000, 5)
	assert.NoError(t, err, "create")

	assert.NoError(t, clock.Set(4), "set height")
	rec, _ := escrow.Get(escrowId)
	assert.Equal(t, record.ActiveEscrow, rec.Status, "status before expiry")

	assert.NoError(t, clock.Set(5), "set height")
	rec, _ = escrow.Get(escrowId)
	assert.Equal(t, record.ExpiredEscrow, rec.Status, "status at expiry")

	err = escrow.Complete(buyer, escrowId)
	assert.Equal(t, fault.NotAuthorized, err, "expired escrow completed")

	// still locked, nobody was paid
	asset, _ := registry.Get(assetId)
	assert.True(t, asset.Locked, "expired escrow released the lock")
	assert.Equal(t, uint64(2000), payment.Balance(buyer), "buyer balance")

	// the seller's cancel is the release path
	assert.NoError(t, escrow.Cancel(seller, escrowId), "cancel")
	asset, _ = registry.Get(assetId)
	assert.False(t, asset.Locked, "cancelled escrow kept the lock")
	rec, _ = escrow.Get(escrowId)
	assert.Equal(t, record.CancelledEscrow, rec.Status, "status after cancel")
}

// the seller may withdraw an open escrow, nobody else
func TestCancel(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	seller := makeAccount(t)
	buyer := makeAccount(t)
	assetId := registerWhole(t, seller)

	escrowId, err := escrow.CreateAsset(seller, assetId, buyer, 1000, 100)
	assert.NoError(t, err, "create")

	err = escrow.Cancel(buyer, escrowId)
	assert.Equal(t, fault.NotAuthorized, err, "buyer cancelled")
	err = escrow.Cancel(seller, 99)
	assert.Equal(t, fault.EscrowNotFound, err, "cancelled unknown escrow")

	assert.NoError(t, escrow.Cancel(seller, escrowId), "cancel")

	asset, _ := registry.Get(assetId)
	assert.False(t, asset.Locked, "cancelled escrow kept the lock")

	err = escrow.Cancel(seller, escrowId)
	assert.Equal(t, fault.NotAuthorized, err, "cancelled twice")
}

// a broke buyer aborts the whole completion
func TestPaymentFailureAtomicity(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	seller := makeAccount(t)
	buyer := makeAccount(t)
	assetId := registerWhole(t, seller)
	_, err := payment.Deposit(buyer, 100) // well short of the price
	assert.NoError(t, err, "deposit")

	escrowId, err := escrow.CreateAsset(seller, assetId, buyer, 1000, 100)
	assert.NoError(t, err, "create")

	err = escrow.Complete(buyer, escrowId)
	assert.Equal(t, fault.PaymentFailed, err, "unfunded completion accepted")

	// no partial effects: still locked, still active, balances intact
	asset, _ := registry.Get(assetId)
	assert.True(t, asset.Owner.IsSame(seller), "ownership moved")
	assert.True(t, asset.Locked, "lock released")
	rec, _ := escrow.Get(escrowId)
	assert.Equal(t, record.ActiveEscrow, rec.Status, "status")
	assert.Equal(t, uint64(100), payment.Balance(buyer), "buyer balance")
	assert.Equal(t, uint64(0), payment.Balance(seller), "seller balance")

	// after funding the same escrow completes
	_, err = payment.Deposit(buyer, 900)
	assert.NoError(t, err, "top up")
	assert.NoError(t, escrow.Complete(buyer, escrowId), "complete")
}

// creation refusals
func TestCreateRefusals(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	seller := makeAccount(t)
	buyer := makeAccount(t)
	wholeId := registerWhole(t, seller)
	fractionalId := registerFractional(t, seller, 100, 0)

	_, err := escrow.CreateAsset(buyer, wholeId, seller, 100, 10)
	assert.Equal(t, fault.NotOwner, err, "non-owner escrowed")

	_, err = escrow.CreateAsset(seller, 99, buyer, 100, 10)
	assert.Equal(t, fault.AssetNotFound, err, "escrowed unknown asset")

	_, err = escrow.CreateAsset(seller, fractionalId, buyer, 100, 10)
	assert.Equal(t, fault.InvalidParameters, err, "whole escrow on fractional asset")

	_, err = escrow.CreateAsset(seller, wholeId, buyer, 100, 0)
	assert.Equal(t, fault.InvalidParameters, err, "zero expiry accepted")

	_, err = escrow.CreateAsset(seller, wholeId, seller, 100, 10)
	assert.Equal(t, fault.InvalidParameters, err, "self sale accepted")

	_, err = escrow.CreateShares(seller, wholeId, buyer, 10, 100, 10)
	assert.Equal(t, fault.InvalidParameters, err, "share escrow on whole asset")

	_, err = escrow.CreateShares(seller, fractionalId, buyer, 0, 100, 10)
	assert.Equal(t, fault.InvalidParameters, err, "zero share escrow accepted")

	_, err = escrow.CreateShares(seller, fractionalId, buyer, 101, 100, 10)
	assert.Equal(t, fault.InsufficientShares, err, "oversize share escrow accepted")
}
