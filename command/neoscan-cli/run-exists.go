// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runExists(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	addressHash, testnet, err := addressArgument(c)
	if nil != err {
		return err
	}

	store, shutdown, err := openStore(c)
	if nil != err {
		return err
	}
	defer shutdown()

	stored, err := store.Has(addressHash)
	if nil != err {
		return err
	}

	return printJson(m.w, map[string]interface{}{
		"address": addressHash.Base58(testnet),
		"stored":  stored,
	})
}
