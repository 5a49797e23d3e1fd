// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package share - fractional unit balances
//
// balances are keyed by asset id then holder account; a zero balance
// is deleted rather than stored so the balance scan for an asset only
// visits real holders
package share

import (
	"bytes"
	"encoding/binary"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/history"
	"github.com/bitmark-inc/registryd/record"
	"github.com/bitmark-inc/registryd/storage"
)

// BalanceRecord - one holder's position in one asset
type BalanceRecord struct {
	AssetId uint64           `json:"assetId"`
	Owner   *account.Account `json:"owner"`
	Shares  uint64           `json:"shares"`
}

// storage key for one balance: asset id ++ holder account
func balanceKey(assetId uint64, acc *account.Account) []byte {
	accountBytes := acc.Bytes()
	key := make([]byte, 8, 8+len(accountBytes))
	binary.BigEndian.PutUint64(key, assetId)
	return append(key, accountBytes...)
}

// BalanceOf - shares of one asset held by one account
func BalanceOf(assetId uint64, acc *account.Account) uint64 {
	n, _ := storage.Pool.Shares.GetN(balanceKey(assetId, acc))
	return n
}

// Outstanding - total shares in circulation for one asset
func Outstanding(assetId uint64) uint64 {
	n, _ := storage.Pool.Outstanding.GetN(record.Uint64Key(assetId))
	return n
}

// Credit - add shares to a balance
//
// must be inside a transaction
func Credit(assetId uint64, acc *account.Account, count uint64) {
	if 0 == count {
		return
	}
	key := balanceKey(assetId, acc)
	n, _ := storage.Pool.Shares.GetN(key)
	storage.Pool.Shares.PutN(key, n+count)
}

// Debit - remove shares from a balance, deleting it when empty
//
// must be inside a transaction
func Debit(assetId uint64, acc *account.Account, count uint64) error {
	key := balanceKey(assetId, acc)
	n, _ := storage.Pool.Shares.GetN(key)
	if n < count {
		return fault.InsufficientShares
	}
	if n == count {
		storage.Pool.Shares.Delete(key)
	} else {
		storage.Pool.Shares.PutN(key, n-count)
	}
	return nil
}

// SetOutstanding - record the circulating total for one asset
//
// must be inside a transaction
func SetOutstanding(assetId uint64, count uint64) {
	storage.Pool.Outstanding.PutN(record.Uint64Key(assetId), count)
}

// BurnOutstanding - remove the circulating total for one asset
//
// must be inside a transaction
func BurnOutstanding(assetId uint64) {
	storage.Pool.Outstanding.Delete(record.Uint64Key(assetId))
}

// Transfer - move shares between two holders
//
// the asset must be fractional and not locked by an open escrow
func Transfer(from *account.Account, assetId uint64, to *account.Account, count uint64) error {
	if nil == from || nil == to || count < 1 {
		return fault.InvalidParameters
	}
	if from.IsSame(to) {
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
	if !asset.Fractional {
		trx.Abort()
		return fault.InvalidParameters
	}
	if asset.Locked {
		trx.Abort()
		return fault.AssetLocked
	}

	err = Debit(assetId, from, count)
	if nil != err {
		trx.Abort()
		return err
	}
	Credit(assetId, to, count)
	history.Append(assetId, from, to, record.Fractional, 0)

	err = trx.Commit()
	if nil != err {
		trx.Abort()
		return err
	}
	return nil
}

// Balances - all holders of one asset
func Balances(assetId uint64) ([]BalanceRecord, error) {

	prefix := make([]byte, 8)
	binary.BigEndian.PutUint64(prefix, assetId)

	balances := []BalanceRecord{}
	cursor := storage.Pool.Shares.NewFetchCursor().Seek(prefix)
	err := cursor.Map(func(key []byte, value []byte) error {
		if !bytes.HasPrefix(key, prefix) {
			return endOfAsset
		}
		owner, err := account.AccountFromBytes(key[8:])
		if nil != err {
			return err
		}
		shares, n := recordUint64(value)
		if !n {
			return fault.RecordCorrupted
		}
		balances = append(balances, BalanceRecord{
			AssetId: assetId,
			Owner:   owner,
			Shares:  shares,
		})
		return nil
	})
	if nil != err && endOfAsset != err {
		return nil, err
	}
	return balances, nil
}

// decode a PutN value
func recordUint64(value []byte) (uint64, bool) {
	if 8 != len(value) {
		return 0, false
	}
	return binary.BigEndian.Uint64(value), true
}

// sentinel to stop the range scan at the end of one asset's holders
var endOfAsset = scanStop{}

type scanStop struct{}

func (scanStop) Error() string { return "end of asset" }
