// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/rpc/auth"
	"github.com/bitmark-inc/registryd/rpc/verifier"
)

// VerifierAddData - parameters for a verifier admission
type VerifierAddData struct {
	Operator  *account.PrivateKey
	Account   *account.Account
	Name      string
	Specialty string
}

// AddVerifier - admit a new verifier, operator only
func (client *Client) AddVerifier(addConfig *VerifierAddData) (*verifier.AddReply, error) {

	message := auth.Message("Verifier.Add",
		addConfig.Account.String(),
		addConfig.Name,
		addConfig.Specialty,
	)

	addArgs := verifier.AddArguments{
		Caller:    addConfig.Operator.Account(),
		Signature: addConfig.Operator.Sign(message),
		Account:   addConfig.Account,
		Name:      addConfig.Name,
		Specialty: addConfig.Specialty,
	}

	client.printJson("Verifier Request", addArgs)

	var reply verifier.AddReply
	err := client.client.Call("Verifier.Add", &addArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Verifier Reply", reply)

	return &reply, nil
}

// VerifierDeactivateData - parameters for a verifier retirement
type VerifierDeactivateData struct {
	Operator *account.PrivateKey
	Account  *account.Account
}

// DeactivateVerifier - permanently retire a verifier, operator only
func (client *Client) DeactivateVerifier(deactivateConfig *VerifierDeactivateData) (*verifier.DeactivateReply, error) {

	message := auth.Message("Verifier.Deactivate", deactivateConfig.Account.String())

	deactivateArgs := verifier.DeactivateArguments{
		Caller:    deactivateConfig.Operator.Account(),
		Signature: deactivateConfig.Operator.Sign(message),
		Account:   deactivateConfig.Account,
	}

	client.printJson("Verifier Request", deactivateArgs)

	var reply verifier.DeactivateReply
	err := client.client.Call("Verifier.Deactivate", &deactivateArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Verifier Reply", reply)

	return &reply, nil
}

// GetVerifier - read one verifier record
func (client *Client) GetVerifier(acc *account.Account) (*verifier.InfoReply, error) {

	infoArgs := verifier.InfoArguments{
		Account: acc,
	}

	client.printJson("Verifier Request", infoArgs)

	var reply verifier.InfoReply
	err := client.client.Call("Verifier.Info", &infoArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Verifier Reply", reply)

	return &reply, nil
}
