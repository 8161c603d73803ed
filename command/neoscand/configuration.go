// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/famecoin/neo-scan/chain"
	"github.com/famecoin/neo-scan/configuration"
	"github.com/famecoin/neo-scan/fault"
	"github.com/famecoin/neo-scan/ingest"
	"github.com/famecoin/neo-scan/ledger"
	"github.com/famecoin/neo-scan/storage"
)

// basic defaults (directories and files are relative to the
// directory holding the configuration file)
const (
	defaultDataDirectory = "data"

	defaultLogDirectory = "log"
	defaultLogFile      = "neoscand.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// Configuration - the daemon settings
type Configuration struct {
	DataDirectory string                `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string                `gluamapper:"pidfile" json:"pidfile"`
	Chain         string                `gluamapper:"chain" json:"chain"`
	Storage       storage.Configuration `gluamapper:"storage" json:"storage"`
	Ledger        ledger.Configuration  `gluamapper:"ledger" json:"ledger"`
	Ingest        ingest.Configuration  `gluamapper:"ingest" json:"ingest"`
	Logging       logger.Configuration  `gluamapper:"logging" json:"logging"`
}

// read the configuration file and fill in defaults
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	baseDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Chain:         chain.Mainnet,

		Storage: storage.Configuration{
			Backend: storage.BackendLevelDB,
		},

		Ingest: ingest.Configuration{
			Backend: ingest.BackendKafka,
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

	err = configuration.ParseConfigurationFile(configurationFileName, options)
	if nil != err {
		return nil, err
	}

	if !chain.Valid(options.Chain) {
		return nil, fault.InvalidChain
	}

	// resolve relative paths against the configuration directory
	options.DataDirectory = ensureAbsolute(baseDirectory, options.DataDirectory)
	options.Logging.Directory = ensureAbsolute(options.DataDirectory, options.Logging.Directory)
	if "" != options.PidFile {
		options.PidFile = ensureAbsolute(options.DataDirectory, options.PidFile)
	}

	// the leveldb name carries the chain so switching chains
	// never reads another chain's entities
	if "" == options.Storage.Database {
		options.Storage.Database = options.Chain
	}
	if storage.BackendLevelDB == options.Storage.Backend {
		options.Storage.Database = ensureAbsolute(options.DataDirectory, options.Storage.Database)
	}

	return options, nil
}

// internal function to make a path absolute relative to a base
func ensureAbsolute(base string, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(base, path))
}
