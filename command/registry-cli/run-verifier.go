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

func runAddVerifier(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	acc, err := checkAccount("account", c.String("account"), m)
	if nil != err {
		return err
	}

	name := c.String("name")
	if "" == name {
		return fmt.Errorf("name is required")
	}

	operator, err := checkIdentity(m)
	if nil != err {
		return err
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.AddVerifier(&rpccalls.VerifierAddData{
		Operator:  operator,
		Account:   acc,
		Name:      name,
		Specialty: c.String("specialty"),
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runDeactivateVerifier(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	acc, err := checkAccount("account", c.String("account"), m)
	if nil != err {
		return err
	}

	operator, err := checkIdentity(m)
	if nil != err {
		return err
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.DeactivateVerifier(&rpccalls.VerifierDeactivateData{
		Operator: operator,
		Account:  acc,
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runVerifierInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	acc, err := checkAccount("account", c.String("account"), m)
	if nil != err {
		return err
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetVerifier(acc)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
