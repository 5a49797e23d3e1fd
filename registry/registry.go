// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - the canonical asset records and their lifecycle
//
// an asset is never deleted: retirement locks the record permanently
// and burns any share state, the provenance stays readable
package registry

import (
	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/clock"
	"github.com/bitmark-inc/registryd/constants"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/history"
	"github.com/bitmark-inc/registryd/identifier"
	"github.com/bitmark-inc/registryd/record"
	"github.com/bitmark-inc/registryd/share"
	"github.com/bitmark-inc/registryd/storage"
	"github.com/bitmark-inc/registryd/verifier"
)

// Registration - the caller supplied fields of a new asset
type Registration struct {
	Description    string
	AssetType      string
	Location       string
	Valuation      uint64
	Fractional     bool
	TotalShares    uint64
	RoyaltyPercent uint64
	MetadataURL    string
}

// Register - create a new asset owned by the caller
//
// a fractional asset starts with its whole share total credited to
// the caller
func Register(caller *account.Account, r Registration) (uint64, error) {
	if nil == caller || "" == r.Description {
		return 0, fault.InvalidParameters
	}
	if r.RoyaltyPercent > constants.MaximumRoyaltyPercent {
		return 0, fault.InvalidParameters
	}
	if r.Fractional {
		if r.TotalShares < 1 || r.TotalShares > constants.MaximumSharesPerAsset {
			return 0, fault.InvalidParameters
		}
	} else {
		r.TotalShares = 1
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}

	assetId := identifier.New(identifier.Asset)
	asset := &record.Asset{
		Owner:          caller,
		Description:    r.Description,
		AssetType:      r.AssetType,
		Location:       r.Location,
		Valuation:      r.Valuation,
		CreatedAt:      clock.Height(),
		Fractional:     r.Fractional,
		TotalShares:    r.TotalShares,
		RoyaltyPercent: r.RoyaltyPercent,
		MetadataURL:    r.MetadataURL,
	}
	record.StoreAsset(assetId, asset)

	if r.Fractional {
		share.Credit(assetId, caller, r.TotalShares)
		share.SetOutstanding(assetId, r.TotalShares)
	}
	history.Append(assetId, nil, caller, record.Creation, 0)

	err = trx.Commit()
	if nil != err {
		trx.Abort()
		return 0, err
	}
	return assetId, nil
}

// Verify - attest an asset, once
//
// only an active verifier may attest and a verified asset stays
// verified by that identity forever
func Verify(caller *account.Account, assetId uint64) error {

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	asset, err := record.FetchAsset(assetId)
	if nil != err {
		trx.Abort()
		return err
	}

	// checked under the transaction so a concurrent deactivation
	// cannot slip between the check and the commit
	if !verifier.IsActive(caller) {
		trx.Abort()
		return fault.NotAuthorized
	}
	if asset.Verified {
		trx.Abort()
		return fault.AlreadyRegistered
	}

	asset.Verified = true
	asset.Verifier = caller
	asset.VerifiedAt = clock.Height()
	record.StoreAsset(assetId, asset)

	err = trx.Commit()
	if nil != err {
		trx.Abort()
		return err
	}
	return nil
}

// Update - the mutable descriptive fields of an asset
type Update struct {
	Description string
	Location    string
	Valuation   uint64
	MetadataURL string
}

// UpdateMetadata - overwrite the descriptive fields
//
// type, royalty and the fractional flag are fixed at registration
func UpdateMetadata(caller *account.Account, assetId uint64, u Update) error {

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	asset, err := record.FetchAsset(assetId)
	if nil != err {
		trx.Abort()
		return err
	}
	if !asset.Owner.IsSame(caller) {
		trx.Abort()
		return fault.NotOwner
	}
	if asset.Locked {
		trx.Abort()
		return fault.AssetLocked
	}

	asset.Description = u.Description
	asset.Location = u.Location
	asset.Valuation = u.Valuation
	asset.MetadataURL = u.MetadataURL
	record.StoreAsset(assetId, asset)

	err = trx.Commit()
	if nil != err {
		trx.Abort()
		return err
	}
	return nil
}

// Transfer - direct unpaid transfer of a whole asset
//
// fractional ownership moves through the share ledger instead
func Transfer(caller *account.Account, assetId uint64, recipient *account.Account) error {
	if nil == recipient {
		return fault.InvalidParameters
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	asset, err := record.FetchAsset(assetId)
	if nil != err {
		trx.Abort()
		return err
	}
	if !asset.Owner.IsSame(caller) {
		trx.Abort()
		return fault.NotOwner
	}
	if asset.Fractional {
		trx.Abort()
		return fault.InvalidParameters
	}
	if asset.Locked {
		trx.Abort()
		return fault.AssetLocked
	}

	asset.Owner = recipient
	record.StoreAsset(assetId, asset)
	history.Append(assetId, caller, recipient, record.Transfer, 0)

	err = trx.Commit()
	if nil != err {
		trx.Abort()
		return err
	}
	return nil
}

// Retire - permanently take an asset out of circulation
//
// a fractional asset can only be retired by a caller holding all of
// its outstanding shares, which are burned; the lock is never released
func Retire(caller *account.Account, assetId uint64) error {

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	asset, err := record.FetchAsset(assetId)
	if nil != err {
		trx.Abort()
		return err
	}
	if !asset.Owner.IsSame(caller) {
		trx.Abort()
		return fault.NotOwner
	}
	if asset.Locked {
		trx.Abort()
		return fault.AssetLocked
	}

	if asset.Fractional {
		outstanding := share.Outstanding(assetId)
		if share.BalanceOf(assetId, caller) != outstanding {
			trx.Abort()
			return fault.SharesOutstanding
		}
		err = share.Debit(assetId, caller, outstanding)
		if nil != err {
			trx.Abort()
			return err
		}
		share.BurnOutstanding(assetId)
	}

	asset.Locked = true
	record.StoreAsset(assetId, asset)

	err = trx.Commit()
	if nil != err {
		trx.Abort()
		return err
	}
	return nil
}

// Get - the stored record of one asset
func Get(assetId uint64) (*record.Asset, error) {
	return record.FetchAsset(assetId)
}
