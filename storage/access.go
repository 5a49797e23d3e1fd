// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/registryd/fault"
)

// DataAccess - database access with a staged batch of writes
type DataAccess interface {
	Begin() error
	Put(key []byte, value []byte)
	Delete(key []byte)
	Commit() error
	Abort()
	InUse() bool
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Iterator(searchRange *ldb_util.Range) iterator.Iterator
}

type dataAccess struct {
	sync.Mutex
	db    *leveldb.DB
	batch *leveldb.Batch
	cache Cache
	inUse bool
}

func newDataAccess(db *leveldb.DB, cache Cache) DataAccess {
	return &dataAccess{
		db:    db,
		batch: new(leveldb.Batch),
		cache: cache,
	}
}

// Begin - mark the staging area in use
func (d *dataAccess) Begin() error {
	d.Lock()
	defer d.Unlock()

	if d.inUse {
		return fault.TransactionInUse
	}
	d.inUse = true
	return nil
}

// Put - stage a write
func (d *dataAccess) Put(key []byte, value []byte) {
	d.cache.Set(dbPut, string(key), value)
	d.batch.Put(key, value)
}

// Delete - stage a delete
func (d *dataAccess) Delete(key []byte) {
	d.cache.Set(dbDelete, string(key), nil)
	d.batch.Delete(key)
}

// Commit - write the staged batch atomically
func (d *dataAccess) Commit() error {
	d.Lock()
	defer d.Unlock()

	err := d.db.Write(d.batch, nil)
	d.reset()
	return err
}

// Abort - discard all staged writes
func (d *dataAccess) Abort() {
	d.Lock()
	defer d.Unlock()

	d.reset()
}

func (d *dataAccess) reset() {
	d.batch.Reset()
	d.cache.Clear()
	d.inUse = false
}

// InUse - check if a transaction is active
func (d *dataAccess) InUse() bool {
	d.Lock()
	defer d.Unlock()
	return d.inUse
}

// Get - read a value, observing any staged write or delete
func (d *dataAccess) Get(key []byte) ([]byte, error) {
	if value, op, found := d.cache.Get(string(key)); found {
		if dbDelete == op {
			return nil, leveldb.ErrNotFound
		}
		return value, nil
	}
	return d.db.Get(key, nil)
}

// Has - check a key exists, observing any staged write or delete
func (d *dataAccess) Has(key []byte) (bool, error) {
	if _, op, found := d.cache.Get(string(key)); found {
		return dbPut == op, nil
	}
	return d.db.Has(key, nil)
}

// Iterator - iterate committed records in a key range
//
// staged writes are not visible through the iterator
func (d *dataAccess) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return d.db.NewIterator(searchRange, nil)
}
