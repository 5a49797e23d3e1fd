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

func runSell(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	assetId, err := checkId("asset", c.Uint64("asset"))
	if nil != err {
		return err
	}

	buyer, err := checkAccount("buyer", c.String("buyer"), m)
	if nil != err {
		return err
	}

	price := c.Uint64("price")
	if 0 == price {
		return fmt.Errorf("price is required")
	}

	seller, err := checkIdentity(m)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "asset: %d\n", assetId)
		fmt.Fprintf(m.e, "buyer: %s\n", buyer)
		fmt.Fprintf(m.e, "seller: %s\n", seller.Account())
		fmt.Fprintf(m.e, "price: %d\n", price)
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.CreateAssetEscrow(&rpccalls.SellAssetData{
		Seller:           seller,
		AssetId:          assetId,
		Buyer:            buyer,
		Price:            price,
		ExpirationBlocks: c.Uint64("expiration"),
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
