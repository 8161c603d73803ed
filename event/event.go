// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package event

import (
	"github.com/shopspring/decimal"

	"github.com/famecoin/neo-scan/address"
	"github.com/famecoin/neo-scan/asset"
	"github.com/famecoin/neo-scan/fault"
	"github.com/famecoin/neo-scan/txid"
)

// Kind - the discriminator of an event
type Kind string

// the event kinds carried by the stream
const (
	Vout  Kind = "vout"  // new output crediting an address
	Vin   Kind = "vin"   // spend of a prior output debiting an address
	Claim Kind = "claim" // grant keyed by a set of source transactions
)

// Event - one stream event
//
// a flat record tagged by Kind; vout and vin fill Address, Value and
// TxId, claim fills Addresses, TxIds and Amount, the unused fields
// of a kind stay at their zero values
type Event struct {
	Kind      Kind            `json:"kind"`
	Address   address.Hash    `json:"address"`
	Addresses []address.Hash  `json:"addresses,omitempty"`
	Asset     asset.ID        `json:"asset"`
	Value     decimal.Decimal `json:"value"`
	Amount    decimal.Decimal `json:"amount"`
	TxId      txid.TxId       `json:"txid"`
	TxIds     []txid.TxId     `json:"txids,omitempty"`
}

// Touches - the addresses whose ledger state the event modifies
//
// a vout or vin touches exactly one address, a claim touches every
// listed address
func (e *Event) Touches() []address.Hash {
	switch e.Kind {
	case Vout, Vin:
		return []address.Hash{e.Address}
	case Claim:
		return e.Addresses
	default:
		return nil
	}
}

// Validate - reject structurally broken events
//
// content is trusted as already validated upstream, only the shape
// required for reduction is checked here
func (e *Event) Validate() error {
	switch e.Kind {
	case Vout, Vin:
		return nil
	case Claim:
		if 0 == len(e.Addresses) || 0 == len(e.TxIds) {
			return fault.InvalidEvent
		}
		return nil
	default:
		return fault.InvalidEvent
	}
}
