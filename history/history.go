// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package history - the append only provenance log
//
// entries are keyed by asset id then allocation sequence so a range
// scan over one asset id prefix walks its provenance oldest first;
// entries are written once and never modified or deleted
package history

import (
	"bytes"
	"encoding/binary"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/clock"
	"github.com/bitmark-inc/registryd/identifier"
	"github.com/bitmark-inc/registryd/record"
	"github.com/bitmark-inc/registryd/storage"
)

// storage key for one entry: asset id ++ sequence, both big endian
func historyKey(assetId uint64, sequence uint64) []byte {
	key := make([]byte, 16)
	binary.BigEndian.PutUint64(key[:8], assetId)
	binary.BigEndian.PutUint64(key[8:], sequence)
	return key
}

// Append - record one ownership changing event
//
// must be inside a transaction
func Append(assetId uint64, previousOwner *account.Account, newOwner *account.Account, txType record.TransactionType, amount uint64) *record.HistoryEntry {

	entry := &record.HistoryEntry{
		AssetId:       assetId,
		Sequence:      identifier.New(identifier.History),
		PreviousOwner: previousOwner,
		NewOwner:      newOwner,
		Timestamp:     clock.Height(),
		TxType:        txType,
		Amount:        amount,
	}
	storage.Pool.History.Put(historyKey(assetId, entry.Sequence), entry.Pack())
	return entry
}

// List - the provenance of one asset, oldest first
//
// count limits the reply, zero or negative means everything
func List(assetId uint64, count int) ([]*record.HistoryEntry, error) {

	prefix := make([]byte, 8)
	binary.BigEndian.PutUint64(prefix, assetId)

	entries := []*record.HistoryEntry{}
	cursor := storage.Pool.History.NewFetchCursor().Seek(prefix)
	err := cursor.Map(func(key []byte, value []byte) error {
		if !bytes.HasPrefix(key, prefix) {
			return endOfAsset
		}
		entry, err := record.UnpackHistoryEntry(assetId, binary.BigEndian.Uint64(key[8:]), value)
		if nil != err {
			return err
		}
		entries = append(entries, entry)
		if count > 0 && len(entries) >= count {
			return endOfAsset
		}
		return nil
	})
	if nil != err && endOfAsset != err {
		return nil, err
	}
	return entries, nil
}

// sentinel to stop the range scan at the end of one asset's entries
var endOfAsset = scanStop{}

type scanStop struct{}

func (scanStop) Error() string { return "end of asset" }
