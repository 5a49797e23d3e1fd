// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package verifier - the authorised attestation identities
//
// only the operator account may admit or deactivate verifiers;
// deactivation is permanent, a retired identity cannot be admitted
// again under the same account
package verifier

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/clock"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/record"
	"github.com/bitmark-inc/registryd/storage"
)

// globals for this module
type verifierData struct {
	sync.RWMutex // to allow locking

	log      *logger.L
	operator *account.Account

	// set once during initialise
	initialised bool
}

// global data
var globalData verifierData

// Initialise - setup the verifier registry
//
// the operator account is the only identity allowed to change the
// verifier set
func Initialise(operator *account.Account) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	if nil == operator {
		return fault.InvalidParameters
	}

	globalData.log = logger.New("verifier")
	globalData.log.Info("starting…")
	globalData.operator = operator
	globalData.initialised = true

	return nil
}

// Finalise - shut down the verifier registry
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("finished")
	globalData.log.Flush()
	globalData.initialised = false
	return nil
}

// isOperator - check the caller against the configured operator
func isOperator(caller *account.Account) bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return nil != globalData.operator && globalData.operator.IsSame(caller)
}

// Add - admit a new verifier
//
// fails if the account was ever admitted before, including accounts
// that have since been deactivated
func Add(caller *account.Account, verifierAccount *account.Account, name string, specialty string) (*record.Verifier, error) {
	if !isOperator(caller) {
		return nil, fault.NotAuthorized
	}
	if nil == verifierAccount || "" == name {
		return nil, fault.InvalidParameters
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return nil, err
	}

	if storage.Pool.Verifiers.Has(verifierAccount.Bytes()) {
		trx.Abort()
		return nil, fault.AlreadyRegistered
	}

	v := &record.Verifier{
		Name:       name,
		Specialty:  specialty,
		ApprovedAt: clock.Height(),
		Active:     true,
	}
	record.StoreVerifier(verifierAccount, v)

	err = trx.Commit()
	if nil != err {
		trx.Abort()
		return nil, err
	}
	globalData.log.Infof("admitted: %s  name: %q", verifierAccount, name)
	return v, nil
}

// Deactivate - permanently retire a verifier
//
// the record is kept so attestations already made stay attributable
func Deactivate(caller *account.Account, verifierAccount *account.Account) error {
	if !isOperator(caller) {
		return fault.NotAuthorized
	}
	if nil == verifierAccount {
		return fault.InvalidParameters
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	v, err := record.FetchVerifier(verifierAccount)
	if nil != err {
		trx.Abort()
		return err
	}
	// flipping an already inactive record is a no-op, not an error
	v.Active = false
	record.StoreVerifier(verifierAccount, v)

	err = trx.Commit()
	if nil != err {
		trx.Abort()
		return err
	}
	globalData.log.Infof("deactivated: %s", verifierAccount)
	return nil
}

// IsActive - true only for an admitted and still active verifier
func IsActive(verifierAccount *account.Account) bool {
	if nil == verifierAccount {
		return false
	}
	v, err := record.FetchVerifier(verifierAccount)
	if nil != err {
		return false
	}
	return v.Active
}

// Info - the stored record of a verifier
func Info(verifierAccount *account.Account) (*record.Verifier, error) {
	if nil == verifierAccount {
		return nil, fault.InvalidParameters
	}
	return record.FetchVerifier(verifierAccount)
}
