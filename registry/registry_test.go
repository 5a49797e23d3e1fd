// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/clock"
	"github.com/bitmark-inc/registryd/constants"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/history"
	"github.com/bitmark-inc/registryd/record"
	"github.com/bitmark-inc/registryd/registry"
	"github.com/bitmark-inc/registryd/share"
	"github.com/bitmark-inc/registryd/storage"
	"github.com/bitmark-inc/registryd/verifier"
)

var operator *account.Account

func setup(t *testing.T) func() {
	t.Helper()

	dir, err := os.MkdirTemp("", "registryd-registry-test")
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

	operator = makeAccount(t)
	err = verifier.Initialise(operator)
	if nil != err {
		t.Fatalf("verifier initialise error: %s", err)
	}

	return func() {
		verifier.Finalise()
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

func TestRegisterWhole(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	alice := makeAccount(t)

	assetId, err := registry.Register(alice, registry.Registration{
		Description: "signed first edition",
		AssetType:   "collectible",
		Location:    "vault 7",
		Valuation:   1200,
		MetadataURL: "https://example.com/book.json",
	})
	assert.NoError(t, err, "register")
	assert.Equal(t, uint64(1), assetId, "first asset id")

	asset, err := registry.Get(assetId)
	assert.NoError(t, err, "get")
	assert.True(t, asset.Owner.IsSame(alice), "owner")
	assert.False(t, asset.Verified, "new asset verified")
	assert.False(t, asset.Locked, "new asset locked")
	assert.False(t, asset.Fractional, "whole asset fractional")
	assert.Equal(t, uint64(1), asset.TotalShares, "whole asset share total")

	entries, err := history.List(assetId, 0)
	assert.NoError(t, err, "history")
	assert.Equal(t, 1, len(entries), "history entry count")
	assert.Equal(t, record.Creation, entries[0].TxType, "history type")
	assert.Nil(t, entries[0].PreviousOwner, "creation previous owner")
}

func TestRegisterFractional(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	alice := makeAccount(t)

	assetId, err := registry.Register(alice, registry.Registration{
		Description:    "office tower",
		AssetType:      "real-estate",
		Valuation:      9000000,
		Fractional:     true,
		TotalShares:    10000,
		RoyaltyPercent: 5,
	})
	assert.NoError(t, err, "register")

	assert.Equal(t, uint64(10000), share.BalanceOf(assetId, alice), "issuer balance")
	assert.Equal(t, uint64(10000), share.Outstanding(assetId), "outstanding shares")
}

func TestRegisterRefusals(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	alice := makeAccount(t)

	_, err := registry.Register(alice, registry.Registration{
		Description:    "painting",
		AssetType:      "art",
		RoyaltyPercent: constants.MaximumRoyaltyPercent + 1,
	})
	assert.Equal(t, fault.InvalidParameters, err, "excessive royalty accepted")

	_, err = registry.Register(alice, registry.Registration{
		Description: "painting",
		AssetType:   "art",
		Fractional:  true,
		TotalShares: 0,
	})
	assert.Equal(t, fault.InvalidParameters, err, "zero share fractional accepted")

	_, err = registry.Register(alice, registry.Registration{
		Description: "painting",
		AssetType:   "art",
		Fractional:  true,
		TotalShares: constants.MaximumSharesPerAsset + 1,
	})
	assert.Equal(t, fault.InvalidParameters, err, "oversize share total accepted")

	_, err = registry.Register(alice, registry.Registration{
		AssetType: "art",
	})
	assert.Equal(t, fault.InvalidParameters, err, "empty description accepted")
}

func TestVerify(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	alice := makeAccount(t)
	appraiser := makeAccount(t)
	_, err := verifier.Add(operator, appraiser, "Veritas Appraisals", "art")
	assert.NoError(t, err, "add verifier")

	assetId, err := registry.Register(alice, registry.Registration{
		Description: "painting",
		AssetType:   "art",
	})
	assert.NoError(t, err, "register")

	// only an active verifier may attest
	err = registry.Verify(alice, assetId)
	assert.Equal(t, fault.NotAuthorized, err, "owner verified own asset")

	err = registry.Verify(appraiser, 99)
	assert.Equal(t, fault.AssetNotFound, err, "verified unknown asset")

	// the asset is checked before the caller, so probing an unknown
	// asset reports it missing even for a non-verifier
	err = registry.Verify(alice, 99)
	assert.Equal(t, fault.AssetNotFound, err, "unknown asset error precedence")

	err = registry.Verify(appraiser, assetId)
	assert.NoError(t, err, "verify")

	asset, _ := registry.Get(assetId)
	assert.True(t, asset.Verified, "asset not verified")
	assert.True(t, asset.Verifier.IsSame(appraiser), "verifier identity")

	// verified once, forever
	err = registry.Verify(appraiser, assetId)
	assert.Equal(t, fault.AlreadyRegistered, err, "double verification accepted")

	// a deactivated verifier can no longer attest
	assetId2, _ := registry.Register(alice, registry.Registration{
		Description: "another painting",
		AssetType:   "art",
	})
	assert.NoError(t, verifier.Deactivate(operator, appraiser), "deactivate")
	err = registry.Verify(appraiser, assetId2)
	assert.Equal(t, fault.NotAuthorized, err, "deactivated verifier attested")
}

func TestUpdateMetadata(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	alice := makeAccount(t)
	bob := makeAccount(t)

	assetId, _ := registry.Register(alice, registry.Registration{
		Description:    "farm land",
		AssetType:      "real-estate",
		Location:       "plot 4",
		Valuation:      10000,
		RoyaltyPercent: 7,
	})

	err := registry.UpdateMetadata(bob, assetId, registry.Update{Description: "my farm"})
	assert.Equal(t, fault.NotOwner, err, "non-owner updated metadata")

	err = registry.UpdateMetadata(alice, assetId, registry.Update{
		Description: "irrigated farm land",
		Location:    "plot 4, north field",
		Valuation:   15000,
		MetadataURL: "https://example.com/farm.json",
	})
	assert.NoError(t, err, "update")

	asset, _ := registry.Get(assetId)
	assert.Equal(t, "irrigated farm land", asset.Description, "description")
	assert.Equal(t, uint64(15000), asset.Valuation, "valuation")
	// immutable fields survive the update
	assert.Equal(t, "real-estate", asset.AssetType, "asset type changed")
	assert.Equal(t, uint64(7), asset.RoyaltyPercent, "royalty changed")
}

func TestTransferWhole(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	alice := makeAccount(t)
	bob := makeAccount(t)

	assetId, _ := registry.Register(alice, registry.Registration{
		Description: "sculpture",
		AssetType:   "art",
	})

	err := registry.Transfer(bob, assetId, alice)
	assert.Equal(t, fault.NotOwner, err, "non-owner transferred")

	err = registry.Transfer(alice, assetId, bob)
	assert.NoError(t, err, "transfer")

	asset, _ := registry.Get(assetId)
	assert.True(t, asset.Owner.IsSame(bob), "new owner")

	entries, _ := history.List(assetId, 0)
	assert.Equal(t, 2, len(entries), "history entry count")
	assert.Equal(t, record.Transfer, entries[1].TxType, "history type")
	assert.Equal(t, uint64(0), entries[1].Amount, "unpaid transfer amount")

	// a fractional asset cannot move as a whole
	fractionalId, _ := registry.Register(alice, registry.Registration{
		Description: "office tower",
		AssetType:   "real-estate",
		Fractional:  true,
		TotalShares: 100,
	})
	err = registry.Transfer(alice, fractionalId, bob)
	assert.Equal(t, fault.InvalidParameters, err, "fractional asset transferred whole")
}

func TestRetireWhole(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	alice := makeAccount(t)
	bob := makeAccount(t)

	assetId, _ := registry.Register(alice, registry.Registration{
		Description: "sculpture",
		AssetType:   "art",
	})

	err := registry.Retire(alice, assetId)
	assert.NoError(t, err, "retire")

	asset, _ := registry.Get(assetId)
	assert.True(t, asset.Locked, "retired asset unlocked")

	// retirement is forever
	err = registry.Transfer(alice, assetId, bob)
	assert.Equal(t, fault.AssetLocked, err, "retired asset transferred")
	err = registry.Retire(alice, assetId)
	assert.Equal(t, fault.AssetLocked, err, "retired asset retired again")
}

func TestRetireFractional(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	alice := makeAccount(t)
	bob := makeAccount(t)

	assetId, _ := registry.Register(alice, registry.Registration{
		Description: "office tower",
		AssetType:   "real-estate",
		Fractional:  true,
		TotalShares: 100,
	})

	// cannot retire while someone else holds shares
	assert.NoError(t, share.Transfer(alice, assetId, bob, 40), "spread shares")
	err := registry.Retire(alice, assetId)
	assert.Equal(t, fault.SharesOutstanding, err, "retired with shares outstanding")

	// buy back to 100% and try again
	assert.NoError(t, share.Transfer(bob, assetId, alice, 40), "buy back")
	err = registry.Retire(alice, assetId)
	assert.NoError(t, err, "retire")

	assert.Equal(t, uint64(0), share.BalanceOf(assetId, alice), "burned balance")
	assert.Equal(t, uint64(0), share.Outstanding(assetId), "burned outstanding")
	asset, _ := registry.Get(assetId)
	assert.True(t, asset.Locked, "retired asset unlocked")
}
