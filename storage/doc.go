// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintains a single leveldb database containing a number of pools,
// each pool being distinguished by a one byte prefix on its keys
//
// all mutations are buffered in a batch guarded by a store wide lock:
// a transaction either commits atomically or aborts leaving the
// database untouched, matching the all-or-nothing execution model of
// the registry operations
//
//	                  +----------------+
//	                  | PoolHandle     |
//	                  +----------------+
//	                  | - prefix       |
//	                  | - limit        |
//	                  +----------------+
//	                  | + Get()        |
//	                  | + Put()        |
//	                  | + Delete()     |
//	                  +-------+--------+
//	                          |
//	                  +-------v--------+
//	                  | DataAccess     |
//	                  +----------------+
//	                  | - batch        |
//	                  | - cache        |
//	                  | - leveldb      |
//	                  +----------------+
package storage
