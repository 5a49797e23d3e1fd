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

func runSellShares(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	assetId, err := checkId("asset", c.Uint64("asset"))
	if nil != err {
		return err
	}

	buyer, err := checkAccount("buyer", c.String("buyer"), m)
	if nil != err {
		return err
	}

	quantity := c.Uint64("quantity")
	if 0 == quantity {
		return fmt.Errorf("quantity is required")
	}

	price := c.Uint64("price")
	if 0 == price {
		return fmt.Errorf("price is required")
	}

	seller, err := checkIdentity(m)
	if nil != err {
		return err
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.CreateSharesEscrow(&rpccalls.SellSharesData{
		Seller:           seller,
		AssetId:          assetId,
		Buyer:            buyer,
		Shares:           quantity,
		Price:            price,
		ExpirationBlocks: c.Uint64("expiration"),
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
