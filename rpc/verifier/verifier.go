// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verifier

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/mode"
	"github.com/bitmark-inc/registryd/record"
	"github.com/bitmark-inc/registryd/rpc/auth"
	"github.com/bitmark-inc/registryd/rpc/gate"
	"github.com/bitmark-inc/registryd/rpc/ratelimit"
	"github.com/bitmark-inc/registryd/verifier"
)

const (
	rateLimitVerifier = 200
	rateBurstVerifier = 100
)

// Verifier - type for RPC
type Verifier struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Is      func(mode.Mode) bool
	Testnet bool
}

// New - create the verifier service
func New(log *logger.L, is func(mode.Mode) bool, testnet bool) *Verifier {
	return &Verifier{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitVerifier, rateBurstVerifier),
		Is:      is,
		Testnet: testnet,
	}
}

// Admit a verifier
// ----------------

// AddArguments - signed admission, operator only
type AddArguments struct {
	Caller    *account.Account  `json:"caller"`
	Signature account.Signature `json:"signature"`
	Account   *account.Account  `json:"account"`
	Name      string            `json:"name"`
	Specialty string            `json:"specialty"`
}

// AddReply - the stored verifier record
type AddReply struct {
	Account  *account.Account `json:"account"`
	Verifier *record.Verifier `json:"verifier"`
}

// Add - admit a new verifier
func (v *Verifier) Add(arguments *AddArguments, reply *AddReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}
	if err := gate.Mutate(v.Is); nil != err {
		return err
	}
	if nil == arguments.Account {
		return fault.MissingParameters
	}
	message := auth.Message("Verifier.Add",
		arguments.Account.String(),
		arguments.Name,
		arguments.Specialty,
	)
	if err := auth.Verify(arguments.Caller, arguments.Signature, message, v.Testnet); nil != err {
		return err
	}

	v.Log.Infof("Verifier.Add: %s  name: %q", arguments.Account, arguments.Name)

	rec, err := verifier.Add(arguments.Caller, arguments.Account, arguments.Name, arguments.Specialty)
	if nil != err {
		return err
	}
	reply.Account = arguments.Account
	reply.Verifier = rec
	return nil
}

// Retire a verifier
// -----------------

// DeactivateArguments - signed deactivation, operator only
type DeactivateArguments struct {
	Caller    *account.Account  `json:"caller"`
	Signature account.Signature `json:"signature"`
	Account   *account.Account  `json:"account"`
}

// DeactivateReply - deactivation confirmation
type DeactivateReply struct {
	Account *account.Account `json:"account"`
	Active  bool             `json:"active"`
}

// Deactivate - permanently retire a verifier
func (v *Verifier) Deactivate(arguments *DeactivateArguments, reply *DeactivateReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}
	if err := gate.Mutate(v.Is); nil != err {
		return err
	}
	if nil == arguments.Account {
		return fault.MissingParameters
	}
	message := auth.Message("Verifier.Deactivate", arguments.Account.String())
	if err := auth.Verify(arguments.Caller, arguments.Signature, message, v.Testnet); nil != err {
		return err
	}

	v.Log.Infof("Verifier.Deactivate: %s", arguments.Account)

	err := verifier.Deactivate(arguments.Caller, arguments.Account)
	if nil != err {
		return err
	}
	reply.Account = arguments.Account
	reply.Active = false
	return nil
}

// Read one verifier
// -----------------

// InfoArguments - verifier selector
type InfoArguments struct {
	Account *account.Account `json:"account"`
}

// InfoReply - the stored verifier record
type InfoReply struct {
	Account  *account.Account `json:"account"`
	Verifier *record.Verifier `json:"verifier"`
}

// Info - read one verifier record
func (v *Verifier) Info(arguments *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}
	if err := gate.Query(v.Is); nil != err {
		return err
	}

	rec, err := verifier.Info(arguments.Account)
	if nil != err {
		return err
	}
	reply.Account = arguments.Account
	reply.Verifier = rec
	return nil
}
