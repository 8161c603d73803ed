// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/famecoin/neo-scan/asset"
	"github.com/famecoin/neo-scan/balance"
)

// one display row per asset balance
type balanceRow struct {
	Asset  string `json:"asset"`
	Symbol string `json:"symbol,omitempty"`
	Amount string `json:"amount"`
}

// entity display form: balances as rows with symbols, history and
// claims as stored
type showResult struct {
	Address  string            `json:"address"`
	Balances []balanceRow      `json:"balances"`
	Applied  []balance.TxEntry `json:"applied_tx_ids"`
	Claims   []balance.Claim   `json:"claims"`
}

func runShow(c *cli.Context) error {
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

	entity, err := store.Get(addressHash)
	if nil != err {
		return err
	}
	if nil == entity {
		return printJson(m.w, map[string]interface{}{
			"address": addressHash.Base58(testnet),
			"stored":  false,
		})
	}

	result := showResult{
		Address: addressHash.Base58(testnet),
		Applied: entity.Applied,
		Claims:  entity.Claims,
	}
	for assetId, amount := range entity.Balances {
		result.Balances = append(result.Balances, balanceRow{
			Asset:  assetId.String(),
			Symbol: asset.Symbol(assetId),
			Amount: amount.String(),
		})
	}

	return printJson(m.w, result)
}
