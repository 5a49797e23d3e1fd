// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/storage"
)

// Uint64Key - an 8 byte big endian storage key
func Uint64Key(n uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, n)
	return key
}

// KeyUint64 - decode an 8 byte big endian storage key
func KeyUint64(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}

// FetchAsset - read an asset record from its pool
func FetchAsset(assetId uint64) (*Asset, error) {
	packed := storage.Pool.Assets.Get(Uint64Key(assetId))
	if nil == packed {
		return nil, fault.AssetNotFound
	}
	asset, err := UnpackAsset(packed)
	// a corrupt stored record is fatal
	logger.PanicIfError("record.FetchAsset", err)
	return asset, nil
}

// StoreAsset - write an asset record to its pool
//
// must be inside a transaction
func StoreAsset(assetId uint64, asset *Asset) {
	storage.Pool.Assets.Put(Uint64Key(assetId), asset.Pack())
}

// FetchEscrow - read an escrow record from its pool
func FetchEscrow(escrowId uint64) (*Escrow, error) {
	packed := storage.Pool.Escrows.Get(Uint64Key(escrowId))
	if nil == packed {
		return nil, fault.EscrowNotFound
	}
	escrow, err := UnpackEscrow(packed)
	logger.PanicIfError("record.FetchEscrow", err)
	return escrow, nil
}

// StoreEscrow - write an escrow record to its pool
//
// must be inside a transaction
func StoreEscrow(escrowId uint64, escrow *Escrow) {
	storage.Pool.Escrows.Put(Uint64Key(escrowId), escrow.Pack())
}

// FetchVerifier - read a verifier record from its pool
func FetchVerifier(acc *account.Account) (*Verifier, error) {
	packed := storage.Pool.Verifiers.Get(acc.Bytes())
	if nil == packed {
		return nil, fault.InvalidVerifier
	}
	verifier, err := UnpackVerifier(packed)
	logger.PanicIfError("record.FetchVerifier", err)
	return verifier, nil
}

// StoreVerifier - write a verifier record to its pool
//
// must be inside a transaction
func StoreVerifier(acc *account.Account, verifier *Verifier) {
	storage.Pool.Verifiers.Put(acc.Bytes(), verifier.Pack())
}
