// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// neoscan-cli - inspect stored ledger entities
package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/famecoin/neo-scan/version"
)

type metadata struct {
	e *os.File
	w *os.File
}

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "neoscan-cli"
	app.Usage = "inspect the stored balance ledger"
	app.Version = version.Version

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "backend, b",
			Value: "leveldb",
			Usage: " storage `BACKEND` [leveldb|postgres]",
		},
		cli.StringFlag{
			Name:  "database, d",
			Value: "",
			Usage: " leveldb database `PATH` (the daemon's storage database)",
		},
		cli.StringFlag{
			Name:  "postgres, p",
			Value: "",
			Usage: " postgres `CONNECTION` string",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "show",
			Usage:     "print the stored ledger entity of an address",
			ArgsUsage: "ADDRESS",
			Action:    runShow,
		},
		{
			Name:      "exists",
			Usage:     "check whether an address has a stored ledger entity",
			ArgsUsage: "ADDRESS",
			Action:    runExists,
		},
	}
	app.Metadata = map[string]interface{}{
		"config": &metadata{
			e: os.Stderr,
			w: os.Stdout,
		},
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}
