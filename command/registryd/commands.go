// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/chain"
	"github.com/bitmark-inc/registryd/util"
)

const (
	rpcCertificateFilename = "rpc.crt"
	rpcPrivateKeyFilename  = "rpc.key"

	identityFilename = "identity.private"
)

// setup command handler
//
// these commands run before the configuration file is read and
// cannot access the database
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "gen-identity", "identity":
		privateKeyFilename := getFilenameWithDirectory(arguments, identityFilename)
		testnet := len(arguments) >= 2 && chain.Registry != arguments[1]

		if util.EnsureFileExists(privateKeyFilename) {
			fmt.Printf("generate identity: %q error: %s\n", privateKeyFilename, "file already exists")
			exitwithstatus.Exit(1)
		}

		acc, privateKey, err := account.Generate(testnet)
		if nil != err {
			fmt.Printf("generate identity error: %s\n", err)
			exitwithstatus.Exit(1)
		}

		if err := os.WriteFile(privateKeyFilename, []byte(privateKey.String()+"\n"), 0600); nil != err {
			os.Remove(privateKeyFilename)
			fmt.Printf("generate identity: %q error: %s\n", privateKeyFilename, err)
			exitwithstatus.Exit(1)
		}

		fmt.Printf("generated identity: %q\n", privateKeyFilename)
		fmt.Printf("account: %s\n", acc)

	case "start", "run":
		return false // continue to main daemon

	case "version":
		fmt.Println(version)

	default:
		switch command {
		case "help", "h", "?":
		default:
			fmt.Printf("error: no such command: %s\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)
		fmt.Println()
		fmt.Println("commands:")
		fmt.Println("  gen-rpc-cert [DIR [HOSTS...]]    generate the client RPC certificate and key")
		fmt.Println("  gen-identity [DIR [CHAIN]]       generate an account key pair")
		fmt.Println("  start                            run the daemon (default)")
		fmt.Println("  version                          display the version string")
		exitwithstatus.Exit(1)
	}

	return true
}

// get the directory argument and join with a default file name
func getFilenameWithDirectory(arguments []string, name string) string {
	directory := "."
	if len(arguments) >= 1 && "" != arguments[0] {
		directory = arguments[0]
	}
	return filepath.Join(directory, name)
}
