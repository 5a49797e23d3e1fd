// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/clock"
	"github.com/bitmark-inc/registryd/fees"
	"github.com/bitmark-inc/registryd/mode"
	"github.com/bitmark-inc/registryd/rpc"
	"github.com/bitmark-inc/registryd/storage"
	"github.com/bitmark-inc/registryd/verifier"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// the privileged accounts must parse before anything starts
	operator, err := account.AccountFromBase58(theConfiguration.Operator)
	if nil != err {
		exitwithstatus.Message("%s: invalid operator account: %q  error: %s", program, theConfiguration.Operator, err)
	}
	platform, err := account.AccountFromBase58(theConfiguration.Platform)
	if nil != err {
		exitwithstatus.Message("%s: invalid platform account: %q  error: %s", program, theConfiguration.Platform, err)
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if nil != err {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.Chain)
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// general info
	log.Infof("test mode: %v", mode.IsTesting())
	log.Infof("database: %q", theConfiguration.Database)
	log.Infof("operator: %s", operator)
	log.Infof("platform: %s", platform)

	// the accounts must match the configured network
	if operator.IsTesting() != mode.IsTesting() {
		exitwithstatus.Message("%s: operator account is for the wrong network", program)
	}
	if platform.IsTesting() != mode.IsTesting() {
		exitwithstatus.Message("%s: platform account is for the wrong network", program)
	}

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// start the logical block clock
	log.Info("initialise clock")
	err = clock.Initialise(time.Duration(theConfiguration.BlockInterval) * time.Second)
	if nil != err {
		log.Criticalf("clock initialise error: %s", err)
		exitwithstatus.Message("clock initialise error: %s", err)
	}
	defer clock.Finalise()

	// verifier registry with its privileged operator
	log.Info("initialise verifier")
	err = verifier.Initialise(operator)
	if nil != err {
		log.Criticalf("verifier initialise error: %s", err)
		exitwithstatus.Message("verifier initialise error: %s", err)
	}
	defer verifier.Finalise()

	// fee settlement with the platform collection account
	log.Info("initialise fees")
	err = fees.Initialise(platform)
	if nil != err {
		log.Criticalf("fees initialise error: %s", err)
		exitwithstatus.Message("fees initialise error: %s", err)
	}
	defer fees.Finalise()

	// start the client RPC listener
	log.Info("initialise rpc")
	err = rpc.Initialise(&theConfiguration.ClientRPC, version)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// wait for CTRL-C or terminate signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)

	// stop accepting mutations while the deferred finalisers run
	mode.Set(mode.Stopped)
	log.Info("shutting down…")
}
