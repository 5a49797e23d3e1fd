// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/chain"
	"github.com/bitmark-inc/registryd/configuration"
	"github.com/bitmark-inc/registryd/rpc/listeners"
	"github.com/bitmark-inc/registryd/util"
)

// basic defaults (directories and files are relative to the
// "DataDirectory" from the configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultLevelDBDirectory = "data"

	defaultLogDirectory = "log"
	defaultLogFile      = "registryd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients    = 10
	defaultBlockInterval = 15 // seconds per logical block
)

// DatabaseType - location of the leveldb store
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// Configuration - the daemon configuration
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Chain         string       `gluamapper:"chain" json:"chain"`
	BlockInterval int          `gluamapper:"block_interval" json:"block_interval"`
	Operator      string       `gluamapper:"operator" json:"operator"`
	Platform      string       `gluamapper:"platform" json:"platform"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	ClientRPC listeners.RPCConfiguration `gluamapper:"client_rpc" json:"client_rpc"`
	Logging   logger.Configuration       `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Chain:         chain.Registry,
		BlockInterval: defaultBlockInterval,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      chain.Registry + ".leveldb",
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// if any test mode and the database file was not specified
	// switch to use the testing database
	if chain.Registry != options.Chain && chain.Registry+".leveldb" == options.Database.Name {
		options.Database.Name = options.Chain + ".leveldb"
	}

	// ensure absolute data directory
	options.DataDirectory = util.EnsureAbsolute(dataDirectory, options.DataDirectory)

	// this directory and its files are relative to DataDirectory
	options.Database.Directory = util.EnsureAbsolute(options.DataDirectory, options.Database.Directory)
	options.Database.Name = util.EnsureAbsolute(options.Database.Directory, options.Database.Name)

	// optional pid file
	if "" != options.PidFile {
		options.PidFile = util.EnsureAbsolute(options.DataDirectory, options.PidFile)
	}

	// RPC certificate and key files
	options.ClientRPC.Certificate = util.EnsureAbsolute(options.DataDirectory, options.ClientRPC.Certificate)
	options.ClientRPC.PrivateKey = util.EnsureAbsolute(options.DataDirectory, options.ClientRPC.PrivateKey)

	// log directory
	options.Logging.Directory = util.EnsureAbsolute(options.DataDirectory, options.Logging.Directory)

	return options, nil
}
