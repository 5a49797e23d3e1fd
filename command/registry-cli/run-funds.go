// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/command/registry-cli/rpccalls"
)

func runFunds(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	// explicit owner, or fall back to the identity account
	var owner *account.Account
	var err error
	if ownerBase58 := c.String("owner"); "" != ownerBase58 {
		owner, err = checkAccount("owner", ownerBase58, m)
		if nil != err {
			return err
		}
	} else {
		identity, err := checkIdentity(m)
		if nil != err {
			return err
		}
		owner = identity.Account()
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetFunds(owner)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runDeposit(c *cli.Context) error {
	return runMoveFunds(c, "deposit")
}

func runWithdraw(c *cli.Context) error {
	return runMoveFunds(c, "withdraw")
}

func runMoveFunds(c *cli.Context, direction string) error {

	m := c.App.Metadata["config"].(*metadata)

	amount := c.Uint64("amount")
	if 0 == amount {
		return fmt.Errorf("amount is required")
	}

	owner, err := checkIdentity(m)
	if nil != err {
		return err
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	moveConfig := &rpccalls.FundsMoveData{
		Owner:  owner,
		Amount: amount,
	}

	var response interface{}
	if "deposit" == direction {
		response, err = client.Deposit(moveConfig)
	} else {
		response, err = client.Withdraw(moveConfig)
	}
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
