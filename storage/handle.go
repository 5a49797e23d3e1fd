// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"
)

// Handle - the interface of a pool
type Handle interface {
	Put(key []byte, value []byte)
	PutN(key []byte, value uint64)
	Delete(key []byte)
	Get(key []byte) []byte
	GetN(key []byte) (uint64, bool)
	Has(key []byte) bool
	NewFetchCursor() *FetchCursor
}

// PoolHandle - handle for a pool of records with a common key prefix
type PoolHandle struct {
	prefix     byte
	limit      []byte
	dataAccess DataAccess
}

// Element - a binary key/value pair
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value pair
//
// must be inside a transaction
func (p *PoolHandle) Put(key []byte, value []byte) {
	if nil == p.dataAccess {
		logger.Panic("pool.Put nil data access")
		return
	}
	if !p.dataAccess.InUse() {
		logger.Panicf("pool.Put outside transaction for key: %x", key)
		return
	}
	p.dataAccess.Put(p.prefixKey(key), value)
}

// PutN - store a uint64 as an 8 byte big endian record
//
// must be inside a transaction
func (p *PoolHandle) PutN(key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	p.Put(key, buffer)
}

// Delete - remove a key from the pool
//
// must be inside a transaction
func (p *PoolHandle) Delete(key []byte) {
	if nil == p.dataAccess {
		logger.Panic("pool.Delete nil data access")
		return
	}
	if !p.dataAccess.InUse() {
		logger.Panicf("pool.Delete outside transaction for key: %x", key)
		return
	}
	p.dataAccess.Delete(p.prefixKey(key))
}

// Get - read a value for a given key
//
// returns nil if the key does not exist
func (p *PoolHandle) Get(key []byte) []byte {
	if nil == p.dataAccess {
		return nil
	}
	value, err := p.dataAccess.Get(p.prefixKey(key))
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("pool.Get", err)
	return value
}

// GetN - read a record and decode as a big endian uint64
//
// second return is false if the record was not found
// panics if the record is not exactly 8 bytes
func (p *PoolHandle) GetN(key []byte) (uint64, bool) {
	buffer := p.Get(key)
	if nil == buffer {
		return 0, false
	}
	if 8 != len(buffer) {
		logger.Panicf("pool.GetN truncated record for: %x: %x", key, buffer)
	}
	return binary.BigEndian.Uint64(buffer), true
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	if nil == p.dataAccess {
		return false
	}
	value, err := p.dataAccess.Has(p.prefixKey(key))
	logger.PanicIfError("pool.Has", err)
	return value
}
