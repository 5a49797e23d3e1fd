// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/registryd/command/registry-cli/rpccalls"
)

func runRetire(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	assetId, err := checkId("asset", c.Uint64("asset"))
	if nil != err {
		return err
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

	response, err := client.RetireAsset(&rpccalls.RetireData{
		Owner:   owner,
		AssetId: assetId,
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
