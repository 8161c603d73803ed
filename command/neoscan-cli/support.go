// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/logger"

	"github.com/famecoin/neo-scan/address"
	"github.com/famecoin/neo-scan/fault"
	"github.com/famecoin/neo-scan/storage"
)

// open the storage backend read-only from the global flags
//
// logging goes to the console only, an inspection tool must not
// write into the daemon's log directory
func openStore(c *cli.Context) (storage.EntityStore, func(), error) {
	err := logger.Initialise(logger.Configuration{
		Directory: ".",
		File:      "neoscan-cli.log",
		Size:      1048576,
		Count:     1,
		Console:   true,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	if nil != err {
		return nil, nil, err
	}

	configuration := storage.Configuration{
		Backend:  c.GlobalString("backend"),
		Database: c.GlobalString("database"),
		Postgres: c.GlobalString("postgres"),
	}

	err = storage.Initialise(configuration, storage.ReadOnly)
	if nil != err {
		logger.Finalise()
		return nil, nil, err
	}

	shutdown := func() {
		_ = storage.Finalise()
		logger.Finalise()
	}
	return storage.Store(), shutdown, nil
}

// parse the single address argument of a command
//
// the returned flag notes a testnet version byte so output can be
// rendered in the same network's display form
func addressArgument(c *cli.Context) (address.Hash, bool, error) {
	argument := c.Args().First()
	if "" == argument {
		return address.Hash{}, false, fault.MissingParameters
	}

	hash, testnet, err := address.FromBase58(argument)
	if nil != err {
		return address.Hash{}, false, err
	}
	return hash, testnet, nil
}

// output an indented JSON result
func printJson(w io.Writer, result interface{}) error {
	b, err := json.MarshalIndent(result, "", "  ")
	if nil != err {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}
