// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// operations recorded in the cache so that reads inside an open
// transaction observe staged writes and deletes
const (
	dbPut = iota
	dbDelete
)

const (
	defaultTimeout    = 1 * time.Minute
	defaultExpiration = 2 * time.Minute
)

// Cache - stores staged writes for read-back during a transaction
type Cache interface {
	Get(key string) ([]byte, int, bool)
	Set(op int, key string, value []byte)
	Clear()
}

type cachedData struct {
	op    int
	value []byte
}

type dbCache struct {
	cache *cache.Cache
}

func newCache() Cache {
	return &dbCache{
		cache: cache.New(defaultTimeout, defaultExpiration),
	}
}

// Get - fetch a staged value and its operation
//
// a found delete marker must be honoured by the caller, not treated
// as an absent cache entry
func (c *dbCache) Get(key string) ([]byte, int, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, 0, false
	}

	data := obj.(cachedData)
	return data.value, data.op, true
}

// Set - stage a write or delete
func (c *dbCache) Set(op int, key string, value []byte) {
	c.cache.Set(key, cachedData{op: op, value: value}, defaultExpiration)
}

// Clear - drop all staged entries
func (c *dbCache) Clear() {
	c.cache.Flush()
}
