// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/rand"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/registryd/fault"
)

// PrivateKey - the signing half of an account
type PrivateKey struct {
	Test       bool
	PrivateKey ed25519.PrivateKey
}

// Generate - create a new key pair for the given network
func Generate(test bool) (*Account, *PrivateKey, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, nil, err
	}

	account := &Account{
		Test:      test,
		PublicKey: publicKey,
	}
	private := &PrivateKey{
		Test:       test,
		PrivateKey: privateKey,
	}
	return account, private, nil
}

// Account - the public identity for this private key
func (private *PrivateKey) Account() *Account {
	publicKey := make([]byte, ed25519.PublicKeySize)
	copy(publicKey, private.PrivateKey[ed25519.PublicKeySize:])
	return &Account{
		Test:      private.Test,
		PublicKey: publicKey,
	}
}

// Sign - sign a message
func (private *PrivateKey) Sign(message []byte) Signature {
	return Signature(ed25519.Sign(private.PrivateKey, message))
}

// Bytes - the private key as a byte slice
//
// byte 0 is the key variant without the public key bit
func (private *PrivateKey) Bytes() []byte {
	keyVariant := byte(ed25519Algorithm << algorithmShift)
	if private.Test {
		keyVariant |= testKeyCode
	}
	return append([]byte{keyVariant}, private.PrivateKey...)
}

// String - Base58 encoding including check bytes
func (private *PrivateKey) String() string {
	buffer := private.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// PrivateKeyFromBase58 - convert a Base58 encoded string to a private key
func PrivateKeyFromBase58(privateKeyBase58Encoded string) (*PrivateKey, error) {

	privateKeyDecoded, err := base58.Decode(privateKeyBase58Encoded)
	if nil != err {
		return nil, fault.InvalidPrivateKey
	}

	if len(privateKeyDecoded) != 1+ed25519.PrivateKeySize+checksumLength {
		return nil, fault.InvalidKeyLength
	}

	// verify checksum
	checksumStart := len(privateKeyDecoded) - checksumLength
	checksum := sha3.Sum256(privateKeyDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], privateKeyDecoded[checksumStart:]) {
		return nil, fault.ChecksumMismatch
	}

	keyVariant := privateKeyDecoded[0]
	if 0 != keyVariant&publicKeyCode {
		return nil, fault.InvalidPrivateKey
	}
	if ed25519Algorithm != keyVariant>>algorithmShift {
		return nil, fault.InvalidPrivateKey
	}

	privateKey := make([]byte, ed25519.PrivateKeySize)
	copy(privateKey, privateKeyDecoded[1:checksumStart])

	return &PrivateKey{
		Test:       0 != keyVariant&testKeyCode,
		PrivateKey: privateKey,
	}, nil
}
