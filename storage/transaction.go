// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/registryd/fault"
)

// Transaction - a set of pool writes that commit atomically
//
// the store wide lock is held from NewDBTransaction until Commit or
// Abort, so operations execute serially exactly like transactions on
// the host ledger
type Transaction interface {
	Commit() error
	Abort()
}

type transaction struct {
	access DataAccess
}

// NewDBTransaction - begin a transaction
//
// blocks until any other transaction has completed
func NewDBTransaction() (Transaction, error) {
	poolData.Lock()
	access := poolData.access
	poolData.Unlock()

	if nil == access {
		return nil, fault.NotInitialised
	}

	poolData.trx.Lock()

	if err := access.Begin(); nil != err {
		poolData.trx.Unlock()
		return nil, err
	}

	return &transaction{access: access}, nil
}

// Commit - atomically write all staged changes
func (t *transaction) Commit() error {
	err := t.access.Commit()
	poolData.trx.Unlock()
	return err
}

// Abort - discard all staged changes
func (t *transaction) Abort() {
	t.access.Abort()
	poolData.trx.Unlock()
}
