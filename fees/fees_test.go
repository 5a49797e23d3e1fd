// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fees_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/fees"
	"github.com/bitmark-inc/registryd/payment"
	"github.com/bitmark-inc/registryd/record"
	"github.com/bitmark-inc/registryd/storage"
)

var platform *account.Account

func setup(t *testing.T) func() {
	t.Helper()

	dir, err := os.MkdirTemp("", "registryd-fees-test")
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

	platform = makeAccount(t)
	err = fees.Initialise(platform)
	if nil != err {
		t.Fatalf("fees initialise error: %s", err)
	}

	return func() {
		fees.Finalise()
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

// the split always sums back to the price, fees round down
func TestSplit(t *testing.T) {
	items := []struct {
		amount   uint64
		royalty  uint64
		platform uint64
		fee      uint64
		seller   uint64
	}{
		{amount: 1000, royalty: 10, platform: 50, fee: 100, seller: 850},
		{amount: 1000, royalty: 0, platform: 50, fee: 0, seller: 950},
		{amount: 999, royalty: 10, platform: 49, fee: 99, seller: 851},
		{amount: 19, royalty: 10, platform: 0, fee: 1, seller: 18},
		{amount: 1, royalty: 50, platform: 0, fee: 0, seller: 1},
		{amount: 0, royalty: 50, platform: 0, fee: 0, seller: 0},
		{amount: 1000, royalty: 50, platform: 50, fee: 500, seller: 450},
		// large valuations must not overflow the fee arithmetic
		{
			amount:   1 << 63,
			royalty:  10,
			platform: 461168601842738790,
			fee:      922337203685477580,
			seller:   7839866231326559438,
		},
	}
	for i, item := range items {
		d := fees.Split(item.amount, item.royalty)
		assert.Equal(t, item.platform, d.PlatformFee, "%d: platform fee", i)
		assert.Equal(t, item.fee, d.RoyaltyFee, "%d: royalty fee", i)
		assert.Equal(t, item.seller, d.SellerAmount, "%d: seller amount", i)
		assert.Equal(t, item.amount, d.PlatformFee+d.RoyaltyFee+d.SellerAmount, "%d: conservation", i)
	}
}

// the royalty goes to the recorded owner when the seller is a reseller
func TestSettleWithRoyalty(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	issuer := makeAccount(t)
	seller := makeAccount(t)
	buyer := makeAccount(t)
	_, err := payment.Deposit(buyer, 1000)
	assert.NoError(t, err, "deposit")

	asset := &record.Asset{Owner: issuer, RoyaltyPercent: 10}

	trx, _ := storage.NewDBTransaction()
	d, err := fees.Settle(buyer, seller, 1000, asset)
	assert.NoError(t, err, "settle")
	assert.NoError(t, trx.Commit(), "commit")

	assert.Equal(t, uint64(50), d.PlatformFee, "platform fee")
	assert.Equal(t, uint64(100), d.RoyaltyFee, "royalty fee")
	assert.Equal(t, uint64(50), payment.Balance(platform), "platform balance")
	assert.Equal(t, uint64(100), payment.Balance(issuer), "issuer balance")
	assert.Equal(t, uint64(850), payment.Balance(seller), "seller balance")
	assert.Equal(t, uint64(0), payment.Balance(buyer), "buyer balance")
}

// no royalty leg when the recorded owner is selling
func TestSettleSelfRoyaltySkipped(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	seller := makeAccount(t)
	buyer := makeAccount(t)
	_, err := payment.Deposit(buyer, 1000)
	assert.NoError(t, err, "deposit")

	asset := &record.Asset{Owner: seller, RoyaltyPercent: 10}

	trx, _ := storage.NewDBTransaction()
	d, err := fees.Settle(buyer, seller, 1000, asset)
	assert.NoError(t, err, "settle")
	assert.NoError(t, trx.Commit(), "commit")

	// the buyer pays only the platform and seller legs
	assert.Equal(t, uint64(100), d.RoyaltyFee, "computed royalty")
	assert.Equal(t, uint64(50), payment.Balance(platform), "platform balance")
	assert.Equal(t, uint64(850), payment.Balance(seller), "seller balance")
	assert.Equal(t, uint64(100), payment.Balance(buyer), "buyer keeps royalty leg")
}

// a failing leg surfaces as a payment failure with nothing disbursed
func TestSettlePaymentFailure(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	issuer := makeAccount(t)
	seller := makeAccount(t)
	buyer := makeAccount(t)
	_, err := payment.Deposit(buyer, 100) // not enough for the seller leg
	assert.NoError(t, err, "deposit")

	asset := &record.Asset{Owner: issuer, RoyaltyPercent: 10}

	trx, _ := storage.NewDBTransaction()
	_, err = fees.Settle(buyer, seller, 1000, asset)
	assert.Equal(t, fault.PaymentFailed, err, "short settlement accepted")
	trx.Abort()

	assert.Equal(t, uint64(100), payment.Balance(buyer), "buyer balance after abort")
	assert.Equal(t, uint64(0), payment.Balance(platform), "platform balance after abort")
	assert.Equal(t, uint64(0), payment.Balance(issuer), "issuer balance after abort")
	assert.Equal(t, uint64(0), payment.Balance(seller), "seller balance after abort")
}
