// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/util"
)

// append a Varint64 encoded value
func appendUint64(buffer []byte, value uint64) []byte {
	return append(buffer, util.ToVarint64(value)...)
}

// append a length prefixed string
func appendString(buffer []byte, s string) []byte {
	buffer = appendUint64(buffer, uint64(len(s)))
	return append(buffer, s...)
}

// append a length prefixed account, zero length marks a nil account
func appendAccount(buffer []byte, acc *account.Account) []byte {
	if nil == acc {
		return appendUint64(buffer, 0)
	}
	accountBytes := acc.Bytes()
	buffer = appendUint64(buffer, uint64(len(accountBytes)))
	return append(buffer, accountBytes...)
}

// append a single boolean byte
func appendBool(buffer []byte, b bool) []byte {
	if b {
		return append(buffer, 0x01)
	}
	return append(buffer, 0x00)
}

// sequential field reader for the binary stored forms
//
// the first failure sticks: all later reads return zero values and
// done() reports the error
type unpacker struct {
	buffer []byte
	err    error
}

func (u *unpacker) uint64() uint64 {
	if nil != u.err {
		return 0
	}
	value, count := util.FromVarint64(u.buffer)
	if 0 == count {
		u.err = fault.RecordCorrupted
		return 0
	}
	u.buffer = u.buffer[count:]
	return value
}

func (u *unpacker) take(n uint64) []byte {
	if nil != u.err {
		return nil
	}
	if uint64(len(u.buffer)) < n {
		u.err = fault.RecordCorrupted
		return nil
	}
	data := u.buffer[:n]
	u.buffer = u.buffer[n:]
	return data
}

func (u *unpacker) text() string {
	length := u.uint64()
	return string(u.take(length))
}

func (u *unpacker) account() *account.Account {
	length := u.uint64()
	if nil != u.err || 0 == length {
		return nil
	}
	acc, err := account.AccountFromBytes(u.take(length))
	if nil != err {
		u.err = fault.RecordCorrupted
		return nil
	}
	return acc
}

func (u *unpacker) boolean() bool {
	data := u.take(1)
	if nil == data {
		return false
	}
	return 0 != data[0]
}

func (u *unpacker) byte() byte {
	data := u.take(1)
	if nil == data {
		return 0
	}
	return data[0]
}

func (u *unpacker) done() error {
	if nil != u.err {
		return u.err
	}
	if 0 != len(u.buffer) {
		return fault.RecordCorrupted
	}
	return nil
}
