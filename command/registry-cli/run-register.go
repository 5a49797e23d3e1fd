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

func runRegister(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	description := c.String("description")
	if "" == description {
		return fmt.Errorf("description is required")
	}

	owner, err := checkIdentity(m)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "description: %q\n", description)
		fmt.Fprintf(m.e, "owner: %s\n", owner.Account())
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.RegisterAsset(&rpccalls.RegisterData{
		Owner:          owner,
		Description:    description,
		AssetType:      c.String("type"),
		Location:       c.String("location"),
		Valuation:      c.Uint64("valuation"),
		Fractional:     c.Bool("fractional"),
		TotalShares:    c.Uint64("quantity"),
		RoyaltyPercent: c.Uint64("royalty"),
		MetadataURL:    c.String("metadata"),
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
