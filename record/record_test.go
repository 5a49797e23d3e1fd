// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/record"
)

func makeAccount(t *testing.T) *account.Account {
	t.Helper()
	acc, _, err := account.Generate(true)
	if nil != err {
		t.Fatalf("cannot generate account: %s", err)
	}
	return acc
}

// a fully populated asset must survive pack and unpack
func TestAssetPackUnpack(t *testing.T) {

	owner := makeAccount(t)
	verifier := makeAccount(t)

	asset := &record.Asset{
		Owner:          owner,
		Description:    "beach front villa",
		AssetType:      "real-estate",
		Location:       "12 Ocean Drive",
		Valuation:      2500000,
		CreatedAt:      105,
		Verified:       true,
		Verifier:       verifier,
		VerifiedAt:     150,
		Fractional:     true,
		TotalShares:    1000,
		RoyaltyPercent: 10,
		MetadataURL:    "https://example.com/villa.json",
		Locked:         false,
	}

	unpacked, err := record.UnpackAsset(asset.Pack())
	assert.NoError(t, err, "unpack")
	assert.Equal(t, asset, unpacked, "asset record changed in round trip")
}

// a nil verifier must stay nil through the round trip
func TestAssetPackUnpackUnverified(t *testing.T) {

	asset := &record.Asset{
		Owner:       makeAccount(t),
		Description: "gold bar",
		AssetType:   "commodity",
		TotalShares: 1,
	}

	unpacked, err := record.UnpackAsset(asset.Pack())
	assert.NoError(t, err, "unpack")
	assert.Nil(t, unpacked.Verifier, "verifier not nil")
	assert.Equal(t, asset, unpacked, "asset record changed in round trip")
}

// truncated buffers must be refused, never panic
func TestAssetUnpackTruncated(t *testing.T) {

	asset := &record.Asset{
		Owner:       makeAccount(t),
		Description: "painting",
		AssetType:   "art",
		TotalShares: 1,
	}
	packed := asset.Pack()

	for _, n := range []int{0, 1, len(packed) / 2, len(packed) - 1} {
		_, err := record.UnpackAsset(packed[:n])
		assert.Error(t, err, "truncated unpack at %d accepted", n)
	}

	// trailing garbage is also corrupt
	_, err := record.UnpackAsset(append(packed, 0x00))
	assert.Error(t, err, "oversize unpack accepted")
}

// escrow round trip including status byte
func TestEscrowPackUnpack(t *testing.T) {

	escrow := &record.Escrow{
		AssetId:    7,
		Seller:     makeAccount(t),
		Buyer:      makeAccount(t),
		Price:      200,
		Fractional: true,
		Shares:     400,
		CreatedAt:  10,
		ExpiresAt:  110,
		Status:     record.ActiveEscrow,
	}

	unpacked, err := record.UnpackEscrow(escrow.Pack())
	assert.NoError(t, err, "unpack")
	assert.Equal(t, escrow, unpacked, "escrow record changed in round trip")
}

// verifier and history entry round trips
func TestOtherRecords(t *testing.T) {

	verifier := &record.Verifier{
		Name:       "Veritas Appraisals",
		Specialty:  "fine-art",
		ApprovedAt: 42,
		Active:     true,
	}
	unpackedVerifier, err := record.UnpackVerifier(verifier.Pack())
	assert.NoError(t, err, "unpack verifier")
	assert.Equal(t, verifier, unpackedVerifier, "verifier record changed in round trip")

	entry := &record.HistoryEntry{
		AssetId:       3,
		Sequence:      17,
		PreviousOwner: makeAccount(t),
		NewOwner:      makeAccount(t),
		Timestamp:     99,
		TxType:        record.Transfer,
		Amount:        200,
	}
	unpackedEntry, err := record.UnpackHistoryEntry(3, 17, entry.Pack())
	assert.NoError(t, err, "unpack history entry")
	assert.Equal(t, entry, unpackedEntry, "history entry changed in round trip")

	// creation entries carry no previous owner
	creation := &record.HistoryEntry{
		AssetId:   4,
		Sequence:  18,
		NewOwner:  makeAccount(t),
		Timestamp: 100,
		TxType:    record.Creation,
	}
	unpackedCreation, err := record.UnpackHistoryEntry(4, 18, creation.Pack())
	assert.NoError(t, err, "unpack creation entry")
	assert.Nil(t, unpackedCreation.PreviousOwner, "previous owner not nil")
}

// status and type text forms used by RPC replies
func TestTextForms(t *testing.T) {
	assert.Equal(t, "Active", record.ActiveEscrow.String())
	assert.Equal(t, "Completed", record.CompletedEscrow.String())
	assert.Equal(t, "Cancelled", record.CancelledEscrow.String())
	assert.Equal(t, "Expired", record.ExpiredEscrow.String())
	assert.Equal(t, "Creation", record.Creation.String())
	assert.Equal(t, "Transfer", record.Transfer.String())
	assert.Equal(t, "Fractional", record.Fractional.String())
}
