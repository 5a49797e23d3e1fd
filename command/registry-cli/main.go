// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/registryd/chain"
)

// connection details and the identity used for signing
type metadata struct {
	connect      string
	identityFile string
	testnet      bool
	verbose      bool
	e            io.Writer
	w            io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "registry-cli"
	app.Usage = "connect to a registryd and submit signed requests"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: "",
			Usage: "*registryd host and port, `HOST:PORT`",
		},
		cli.StringFlag{
			Name:  "network, n",
			Value: chain.Testing,
			Usage: " connect to registry `NETWORK` [registry|testing|local]",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " private key `FILE` for signing",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "generate",
			Usage:  "generate an account key pair, output only",
			Action: runGenerate,
		},
		{
			Name:      "register",
			Usage:     "register a new asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*asset description `STRING`",
				},
				cli.StringFlag{
					Name:  "type, t",
					Value: "",
					Usage: " asset type `STRING`",
				},
				cli.StringFlag{
					Name:  "location, l",
					Value: "",
					Usage: " asset location `STRING`",
				},
				cli.Uint64Flag{
					Name:  "valuation, u",
					Usage: " asset valuation `UNITS`",
				},
				cli.BoolFlag{
					Name:  "fractional, f",
					Usage: " divide ownership into shares",
				},
				cli.Uint64Flag{
					Name:  "quantity, q",
					Usage: " total shares for a fractional asset `COUNT`",
				},
				cli.Uint64Flag{
					Name:  "royalty, r",
					Usage: " royalty on resales `PERCENT`",
				},
				cli.StringFlag{
					Name:  "metadata, m",
					Value: "",
					Usage: " external metadata `URL`",
				},
			},
			Action: runRegister,
		},
		{
			Name:      "assetinfo",
			Usage:     "display one asset record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "asset, a",
					Usage: "*asset id `NUMBER`",
				},
			},
			Action: runAssetInfo,
		},
		{
			Name:      "verify",
			Usage:     "attest an asset, the identity must be an active verifier",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "asset, a",
					Usage: "*asset id `NUMBER`",
				},
			},
			Action: runVerify,
		},
		{
			Name:      "update",
			Usage:     "overwrite the mutable fields of an asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "asset, a",
					Usage: "*asset id `NUMBER`",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*asset description `STRING`",
				},
				cli.StringFlag{
					Name:  "location, l",
					Value: "",
					Usage: " asset location `STRING`",
				},
				cli.Uint64Flag{
					Name:  "valuation, u",
					Usage: " asset valuation `UNITS`",
				},
				cli.StringFlag{
					Name:  "metadata, m",
					Value: "",
					Usage: " external metadata `URL`",
				},
			},
			Action: runUpdate,
		},
		{
			Name:      "transfer",
			Usage:     "transfer a whole asset without payment",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "asset, a",
					Usage: "*asset id `NUMBER`",
				},
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*receiving `ACCOUNT`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "retire",
			Usage:     "permanently lock an asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "asset, a",
					Usage: "*asset id `NUMBER`",
				},
			},
			Action: runRetire,
		},
		{
			Name:      "provenance",
			Usage:     "list the ownership history of an asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "asset, a",
					Usage: "*asset id `NUMBER`",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runProvenance,
		},
		{
			Name:      "balance",
			Usage:     "display the share balance of one holder",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "asset, a",
					Usage: "*asset id `NUMBER`",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " holding `ACCOUNT` [default identity]",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "holders",
			Usage:     "list all share positions of an asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "asset, a",
					Usage: "*asset id `NUMBER`",
				},
			},
			Action: runHolders,
		},
		{
			Name:      "share",
			Usage:     "move shares to another holder",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "asset, a",
					Usage: "*asset id `NUMBER`",
				},
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*receiving `ACCOUNT`",
				},
				cli.Uint64Flag{
					Name:  "quantity, q",
					Usage: "*shares to move `COUNT`",
				},
			},
			Action: runShare,
		},
		{
			Name:      "sell",
			Usage:     "open an escrow selling a whole asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "asset, a",
					Usage: "*asset id `NUMBER`",
				},
				cli.StringFlag{
					Name:  "buyer, b",
					Value: "",
					Usage: "*buying `ACCOUNT`",
				},
				cli.Uint64Flag{
					Name:  "price, p",
					Usage: "*sale price `UNITS`",
				},
				cli.Uint64Flag{
					Name:  "expiration, e",
					Value: 100,
					Usage: " blocks until the offer expires `COUNT`",
				},
			},
			Action: runSell,
		},
		{
			Name:      "sellshares",
			Usage:     "open an escrow selling shares of a fractional asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "asset, a",
					Usage: "*asset id `NUMBER`",
				},
				cli.StringFlag{
					Name:  "buyer, b",
					Value: "",
					Usage: "*buying `ACCOUNT`",
				},
				cli.Uint64Flag{
					Name:  "quantity, q",
					Usage: "*shares to sell `COUNT`",
				},
				cli.Uint64Flag{
					Name:  "price, p",
					Usage: "*sale price `UNITS`",
				},
				cli.Uint64Flag{
					Name:  "expiration, e",
					Value: 100,
					Usage: " blocks until the offer expires `COUNT`",
				},
			},
			Action: runSellShares,
		},
		{
			Name:      "complete",
			Usage:     "pay and take delivery, buyer only",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "escrow, e",
					Usage: "*escrow id `NUMBER`",
				},
			},
			Action: runComplete,
		},
		{
			Name:      "cancel",
			Usage:     "withdraw an open escrow, seller only",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "escrow, e",
					Usage: "*escrow id `NUMBER`",
				},
			},
			Action: runCancel,
		},
		{
			Name:      "escrowinfo",
			Usage:     "display one escrow record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "escrow, e",
					Usage: "*escrow id `NUMBER`",
				},
			},
			Action: runEscrowInfo,
		},
		{
			Name:      "addverifier",
			Usage:     "admit a new verifier, operator only",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "*verifier `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "name, m",
					Value: "",
					Usage: "*verifier name `STRING`",
				},
				cli.StringFlag{
					Name:  "specialty, s",
					Value: "",
					Usage: " verifier specialty `STRING`",
				},
			},
			Action: runAddVerifier,
		},
		{
			Name:      "deactivateverifier",
			Usage:     "permanently retire a verifier, operator only",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "*verifier `ACCOUNT`",
				},
			},
			Action: runDeactivateVerifier,
		},
		{
			Name:      "verifierinfo",
			Usage:     "display one verifier record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "*verifier `ACCOUNT`",
				},
			},
			Action: runVerifierInfo,
		},
		{
			Name:      "funds",
			Usage:     "display the fund balance of an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " holding `ACCOUNT` [default identity]",
				},
			},
			Action: runFunds,
		},
		{
			Name:      "deposit",
			Usage:     "credit the identity's fund balance",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "amount, a",
					Usage: "*units to deposit `UNITS`",
				},
			},
			Action: runDeposit,
		},
		{
			Name:      "withdraw",
			Usage:     "return fund balance to the host ledger",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "amount, a",
					Usage: "*units to withdraw `UNITS`",
				},
			},
			Action: runWithdraw,
		},
		{
			Name:   "registrydinfo",
			Usage:  "display the daemon status summary",
			Action: runRegistrydInfo,
		},
		{
			Name:  "version",
			Usage: "display registry-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// collect the global flags
	app.Before = func(c *cli.Context) error {

		command := c.Args().Get(0)
		if "version" == command {
			return nil
		}

		network := c.GlobalString("network")
		if !chain.Valid(network) {
			return fmt.Errorf("network: %q can only be registry/testing/local", network)
		}

		c.App.Metadata["config"] = &metadata{
			connect:      c.GlobalString("connect"),
			identityFile: c.GlobalString("identity"),
			testnet:      chain.Registry != network,
			verbose:      c.GlobalBool("verbose"),
			e:            c.App.ErrWriter,
			w:            c.App.Writer,
		}

		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
