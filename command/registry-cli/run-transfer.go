// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/registryd/command/registry-cli/rpccalls"
)

func runTransfer(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	assetId, err := checkId("asset", c.Uint64("asset"))
	if nil != err {
		return err
	}

	recipient, err := checkAccount("receiver", c.String("receiver"), m)
	if nil != err {
		return err
	}

	owner, err := checkIdentity(m)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "asset: %d\n", assetId)
		fmt.Fprintf(m.e, "receiver: %s\n", recipient)
		fmt.Fprintf(m.e, "sender: %s\n", owner.Account())
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.TransferAsset(&rpccalls.TransferData{
		Owner:    owner,
		AssetId:  assetId,
		NewOwner: recipient,
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
