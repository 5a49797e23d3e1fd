// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - identities for all registry operations
//
// an account is an ed25519 public key tagged with the network it
// belongs to; the text form is Base58 over key variant + public key +
// a 4 byte SHA3-256 checksum
package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/registryd/fault"
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key variant starting from LSB
	publicKeyCode = 0x01
	testKeyCode   = 0x02

	algorithmShift = 4 // shift to get algorithm

	// the only supported algorithm
	ed25519Algorithm = 0x01
)

// Account - the public identity used by all registry operations
type Account struct {
	Test      bool
	PublicKey []byte
}

// AccountFromBase58 - convert a Base58 encoded string to an account
func AccountFromBase58(accountBase58Encoded string) (*Account, error) {

	accountDecoded, err := base58.Decode(accountBase58Encoded)
	if nil != err {
		return nil, fault.CannotDecodeAccount
	}

	if len(accountDecoded) != 1+ed25519.PublicKeySize+checksumLength {
		return nil, fault.InvalidKeyLength
	}

	// verify checksum
	checksumStart := len(accountDecoded) - checksumLength
	checksum := sha3.Sum256(accountDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], accountDecoded[checksumStart:]) {
		return nil, fault.ChecksumMismatch
	}

	keyVariant := accountDecoded[0]
	if publicKeyCode != keyVariant&publicKeyCode {
		return nil, fault.NotPublicKey
	}
	if ed25519Algorithm != keyVariant>>algorithmShift {
		return nil, fault.InvalidKeyLength
	}

	publicKey := make([]byte, ed25519.PublicKeySize)
	copy(publicKey, accountDecoded[1:checksumStart])

	return &Account{
		Test:      0 != keyVariant&testKeyCode,
		PublicKey: publicKey,
	}, nil
}

// Bytes - the account as a byte slice for storage keys and packing
//
// byte 0 is the key variant, the rest is the public key
func (account *Account) Bytes() []byte {
	keyVariant := byte(ed25519Algorithm<<algorithmShift) | publicKeyCode
	if account.Test {
		keyVariant |= testKeyCode
	}
	return append([]byte{keyVariant}, account.PublicKey...)
}

// AccountFromBytes - rebuild an account from its Bytes form
func AccountFromBytes(buffer []byte) (*Account, error) {
	if 1+ed25519.PublicKeySize != len(buffer) {
		return nil, fault.InvalidKeyLength
	}
	keyVariant := buffer[0]
	if publicKeyCode != keyVariant&publicKeyCode {
		return nil, fault.NotPublicKey
	}
	publicKey := make([]byte, ed25519.PublicKeySize)
	copy(publicKey, buffer[1:])
	return &Account{
		Test:      0 != keyVariant&testKeyCode,
		PublicKey: publicKey,
	}, nil
}

// String - Base58 encoding including check bytes
func (account *Account) String() string {
	buffer := account.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - convert an account to its Base58 JSON form
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert the Base58 JSON form back to an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	account.Test = a.Test
	account.PublicKey = a.PublicKey
	return nil
}

// CheckSignature - verify an ed25519 signature over a message
func (account *Account) CheckSignature(message []byte, signature Signature) error {

	if ed25519.SignatureSize != len(signature) {
		return fault.InvalidSignature
	}

	if !ed25519.Verify(account.PublicKey, message, []byte(signature)) {
		return fault.InvalidSignature
	}
	return nil
}

// IsTesting - whether the account belongs to a test network
func (account *Account) IsTesting() bool {
	return account.Test
}

// IsSame - compare two accounts for the same identity
func (account *Account) IsSame(other *Account) bool {
	if nil == account || nil == other {
		return false
	}
	return account.Test == other.Test && bytes.Equal(account.PublicKey, other.PublicKey)
}
