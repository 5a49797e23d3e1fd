// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/registryd/account"
)

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	acc, privateKey, err := account.Generate(m.testnet)
	if nil != err {
		return err
	}

	printJson(m.w, map[string]string{
		"account":    acc.String(),
		"privateKey": privateKey.String(),
	})
	return nil
}
