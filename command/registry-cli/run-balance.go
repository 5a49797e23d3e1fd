// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/registryd/account"
)

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	assetId, err := checkId("asset", c.Uint64("asset"))
	if nil != err {
		return err
	}

	// explicit owner, or fall back to the identity account
	var owner *account.Account
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

	response, err := client.GetBalance(assetId, owner)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
