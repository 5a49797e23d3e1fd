// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bitmark-inc/registryd/account"
)

// connect is required for every network command
func checkConnect(m *metadata) (string, error) {
	if "" == m.connect {
		return "", fmt.Errorf("connect is required, use: --connect=HOST:PORT")
	}
	return m.connect, nil
}

// read and decode the signing key, refusing keys for the wrong network
func checkIdentity(m *metadata) (*account.PrivateKey, error) {
	if "" == m.identityFile {
		return nil, fmt.Errorf("identity is required, use: --identity=FILE")
	}
	data, err := os.ReadFile(m.identityFile)
	if nil != err {
		return nil, err
	}
	privateKey, err := account.PrivateKeyFromBase58(strings.TrimSpace(string(data)))
	if nil != err {
		return nil, fmt.Errorf("identity: %q error: %s", m.identityFile, err)
	}
	if privateKey.Account().IsTesting() != m.testnet {
		return nil, fmt.Errorf("identity: %q is for the wrong network", m.identityFile)
	}
	return privateKey, nil
}

// decode an account argument, refusing accounts for the wrong network
func checkAccount(name string, accountBase58 string, m *metadata) (*account.Account, error) {
	if "" == accountBase58 {
		return nil, fmt.Errorf("%s is required", name)
	}
	acc, err := account.AccountFromBase58(accountBase58)
	if nil != err {
		return nil, fmt.Errorf("%s: %q error: %s", name, accountBase58, err)
	}
	if acc.IsTesting() != m.testnet {
		return nil, fmt.Errorf("%s: %q is for the wrong network", name, accountBase58)
	}
	return acc, nil
}

// record identifiers are allocated from one, so zero means not supplied
func checkId(name string, id uint64) (uint64, error) {
	if 0 == id {
		return 0, fmt.Errorf("%s id is required", name)
	}
	return id, nil
}
