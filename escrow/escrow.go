// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package escrow - bilateral sale agreements
//
// a whole asset escrow locks the asset for its lifetime; a share
// escrow holds no lock and reserves nothing, the seller's balance is
// only re-checked at completion so a seller can oversell by moving
// shares while the escrow is open and the completion then fails with
// insufficient shares
//
// expiry is implicit: there is no sweep, an overdue Active record is
// reported as Expired on read and refuses completion, and an expired
// whole asset escrow keeps its lock until the seller cancels
package escrow

import (
	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/clock"
	"github.com/bitmark-inc/registryd/constants"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/fees"
	"github.com/bitmark-inc/registryd/history"
	"github.com/bitmark-inc/registryd/identifier"
	"github.com/bitmark-inc/registryd/record"
	"github.com/bitmark-inc/registryd/share"
	"github.com/bitmark-inc/registryd/storage"
)

// IsExpired - true when an Active escrow can no longer be completed
func IsExpired(escrow *record.Escrow, height uint64) bool {
	return record.ActiveEscrow == escrow.Status && height >= escrow.ExpiresAt
}

// CreateAsset - open an escrow selling a whole asset
//
// the asset is locked until the escrow completes or is cancelled
func CreateAsset(caller *account.Account, assetId uint64, buyer *account.Account, price uint64, expirationBlocks uint64) (uint64, error) {
	if nil == caller || nil == buyer || caller.IsSame(buyer) {
		return 0, fault.InvalidParameters
	}
	if expirationBlocks < constants.MinimumEscrowBlocks {
		return 0, fault.InvalidParameters
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}

	asset, err := record.FetchAsset(assetId)
	if nil != err {
		trx.Abort()
		return 0, err
	}
	if !asset.Owner.IsSame(caller) {
		trx.Abort()
		return 0, fault.NotOwner
	}
	if asset.Fractional {
		trx.Abort()
		return 0, fault.InvalidParameters
	}
	if asset.Locked {
		trx.Abort()
		return 0, fault.AssetLocked
	}

	asset.Locked = true
	record.StoreAsset(assetId, asset)

	escrowId := identifier.New(identifier.Escrow)
	height := clock.Height()
	record.StoreEscrow(escrowId, &record.Escrow{
		AssetId:   assetId,
		Seller:    caller,
		Buyer:     buyer,
		Price:     price,
		CreatedAt: height,
		ExpiresAt: height + expirationBlocks,
		Status:    record.ActiveEscrow,
	})

	err = trx.Commit()
	if nil != err {
		trx.Abort()
		return 0, err
	}
	return escrowId, nil
}

// CreateShares - open an escrow selling part of a fractional asset
//
// the seller's balance is checked now but not reserved
func CreateShares(caller *account.Account, assetId uint64, buyer *account.Account, shares uint64, price uint64, expirationBlocks uint64) (uint64, error) {
	if nil == caller || nil == buyer || caller.IsSame(buyer) {
		return 0, fault.InvalidParameters
	}
	if shares < 1 || expirationBlocks < constants.MinimumEscrowBlocks {
		return 0, fault.InvalidParameters
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}

	asset, err := record.FetchAsset(assetId)
	if nil != err {
		trx.Abort()
		return 0, err
	}
	if !asset.Fractional {
		trx.Abort()
		return 0, fault.InvalidParameters
	}
	if share.BalanceOf(assetId, caller) < shares {
		trx.Abort()
		return 0, fault.InsufficientShares
	}

	escrowId := identifier.New(identifier.Escrow)
	height := clock.Height()
	record.StoreEscrow(escrowId, &record.Escrow{
		AssetId:    assetId,
		Seller:     caller,
		Buyer:      buyer,
		Price:      price,
		Fractional: true,
		Shares:     shares,
		CreatedAt:  height,
		ExpiresAt:  height + expirationBlocks,
		Status:     record.ActiveEscrow,
	})

	err = trx.Commit()
	if nil != err {
		trx.Abort()
		return 0, err
	}
	return escrowId, nil
}

// Complete - the buyer pays and takes delivery
//
// only the buyer of a still Active, unexpired escrow may complete;
// the price is settled before ownership moves so a failed payment or
// an overcommitted share seller aborts with nothing changed
func Complete(caller *account.Account, escrowId uint64) error {
	if nil == caller {
		return fault.InvalidParameters
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	escrow, err := record.FetchEscrow(escrowId)
	if nil != err {
		trx.Abort()
		return err
	}
	height := clock.Height()
	if !escrow.Buyer.IsSame(caller) || record.ActiveEscrow != escrow.Status || IsExpired(escrow, height) {
		trx.Abort()
		return fault.NotAuthorized
	}

	asset, err := record.FetchAsset(escrow.AssetId)
	if nil != err {
		trx.Abort()
		return err
	}

	_, err = fees.Settle(caller, escrow.Seller, escrow.Price, asset)
	if nil != err {
		trx.Abort()
		return err
	}

	if escrow.Fractional {
		err = share.Debit(escrow.AssetId, escrow.Seller, escrow.Shares)
		if nil != err {
			trx.Abort()
			return err
		}
		share.Credit(escrow.AssetId, escrow.Buyer, escrow.Shares)
		history.Append(escrow.AssetId, escrow.Seller, escrow.Buyer, record.Fractional, escrow.Price)
	} else {
		asset.Owner = escrow.Buyer
		asset.Locked = false
		record.StoreAsset(escrow.AssetId, asset)
		history.Append(escrow.AssetId, escrow.Seller, escrow.Buyer, record.Transfer, escrow.Price)
	}

	escrow.Status = record.CompletedEscrow
	record.StoreEscrow(escrowId, escrow)

	err = trx.Commit()
	if nil != err {
		trx.Abort()
		return err
	}
	return nil
}

// Cancel - the seller withdraws an Active escrow
//
// this is also the only way to release the lock of an expired whole
// asset escrow
func Cancel(caller *account.Account, escrowId uint64) error {
	if nil == caller {
		return fault.InvalidParameters
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	escrow, err := record.FetchEscrow(escrowId)
	if nil != err {
		trx.Abort()
		return err
	}
	if !escrow.Seller.IsSame(caller) || record.ActiveEscrow != escrow.Status {
		trx.Abort()
		return fault.NotAuthorized
	}

	if !escrow.Fractional {
		asset, err := record.FetchAsset(escrow.AssetId)
		if nil != err {
			trx.Abort()
			return err
		}
		asset.Locked = false
		record.StoreAsset(escrow.AssetId, asset)
	}

	escrow.Status = record.CancelledEscrow
	record.StoreEscrow(escrowId, escrow)

	err = trx.Commit()
	if nil != err {
		trx.Abort()
		return err
	}
	return nil
}

// Get - the record of one escrow
//
// an overdue Active record is reported as Expired, the stored form is
// not rewritten
func Get(escrowId uint64) (*record.Escrow, error) {
	escrow, err := record.FetchEscrow(escrowId)
	if nil != err {
		return nil, err
	}
	if IsExpired(escrow, clock.Height()) {
		escrow.Status = record.ExpiredEscrow
	}
	return escrow, nil
}
