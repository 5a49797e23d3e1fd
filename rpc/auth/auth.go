// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package auth - request authentication for mutating calls
//
// every state changing call carries the caller account and an ed25519
// signature over a canonical message: the method name and its
// arguments in call order, joined by newlines; the client builds the
// identical message when signing
package auth

import (
	"strconv"
	"strings"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/fault"
)

// Message - the canonical signing message of one call
func Message(method string, arguments ...string) []byte {
	return []byte(method + "\n" + strings.Join(arguments, "\n"))
}

// Uint - canonical text form of a numeric argument
func Uint(n uint64) string {
	return strconv.FormatUint(n, 10)
}

// Verify - check a signature over the canonical message
//
// also refuses accounts from the wrong network
func Verify(caller *account.Account, signature account.Signature, message []byte, testnet bool) error {
	if nil == caller {
		return fault.MissingParameters
	}
	if caller.IsTesting() != testnet {
		return fault.WrongNetworkForPublicKey
	}
	return caller.CheckSignature(message, signature)
}
