// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - persisted record types for the registry
//
// each record has a compact binary form used for the on-disk pools:
// unsigned values are Varint64, strings and accounts are length
// prefixed byte runs, booleans are a single 0x00 or 0x01 byte
//
// the JSON tags give the forms used in RPC replies
package record
