// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package balance

import (
	"bytes"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/famecoin/neo-scan/address"
	"github.com/famecoin/neo-scan/asset"
	"github.com/famecoin/neo-scan/txid"
)

// TxEntry - one applied transaction and the balance snapshot
// recorded after its events
type TxEntry struct {
	TxId     txid.TxId `json:"txid"`
	Balances Balances  `json:"balances"`
}

// Claim - a granted claim keyed by its exact transaction id set
type Claim struct {
	TxIds  []txid.TxId     `json:"txids"`
	Asset  asset.ID        `json:"asset"`
	Amount decimal.Decimal `json:"amount"`
}

// Entity - the aggregate ledger state of one address
//
// Applied holds one entry per distinct transaction id ever applied,
// in application order
type Entity struct {
	Address  address.Hash `json:"address"`
	Balances Balances     `json:"balances"`
	Applied  []TxEntry    `json:"applied_tx_ids"`
	Claims   []Claim      `json:"claims"`
}

// NewEntity - a fresh entity for a previously unknown address
func NewEntity(addressHash address.Hash) *Entity {
	return &Entity{
		Address:  addressHash,
		Balances: make(Balances),
	}
}

// Clone - an independent deep copy of the entity
//
// folds work on a clone so an aborted fold never leaves a half
// updated entity behind
func (entity *Entity) Clone() *Entity {
	result := &Entity{
		Address:  entity.Address,
		Balances: entity.Balances.Clone(),
	}

	if len(entity.Applied) > 0 {
		result.Applied = make([]TxEntry, len(entity.Applied))
		for i, entry := range entity.Applied {
			result.Applied[i] = TxEntry{
				TxId:     entry.TxId,
				Balances: entry.Balances.Clone(),
			}
		}
	}

	if len(entity.Claims) > 0 {
		result.Claims = make([]Claim, len(entity.Claims))
		for i, claim := range entity.Claims {
			txIds := make([]txid.TxId, len(claim.TxIds))
			copy(txIds, claim.TxIds)
			result.Claims[i] = Claim{
				TxIds:  txIds,
				Asset:  claim.Asset,
				Amount: claim.Amount,
			}
		}
	}

	return result
}

// HasApplied - true if the transaction id is already recorded
func (entity *Entity) HasApplied(tx txid.TxId) bool {
	for _, entry := range entity.Applied {
		if tx == entry.TxId {
			return true
		}
	}
	return false
}

// AppliedTxIds - the set of transaction ids already recorded
//
// used to separate genuinely new events from replays of already
// persisted ones before a fold starts
func (entity *Entity) AppliedTxIds() map[txid.TxId]struct{} {
	result := make(map[txid.TxId]struct{}, len(entity.Applied))
	for _, entry := range entity.Applied {
		result[entry.TxId] = struct{}{}
	}
	return result
}

// HasClaim - true if a claim with the same transaction id set is
// already recorded
//
// only the id set is compared, the stored amount and asset do not
// take part in duplicate detection
func (entity *Entity) HasClaim(txIds []txid.TxId) bool {
	for _, claim := range entity.Claims {
		if sameTxIdSet(claim.TxIds, txIds) {
			return true
		}
	}
	return false
}

// internal function to compare two transaction id lists as sets
func sameTxIdSet(a []txid.TxId, b []txid.TxId) bool {
	if len(a) != len(b) {
		return false
	}
	ca := canonicalTxIds(a)
	cb := canonicalTxIds(b)
	for i := range ca {
		if ca[i] != cb[i] {
			return false
		}
	}
	return true
}

// internal function to sort a copy of a transaction id list into
// byte order
func canonicalTxIds(txIds []txid.TxId) []txid.TxId {
	result := make([]txid.TxId, len(txIds))
	copy(result, txIds)
	sort.Slice(result, func(i, j int) bool {
		return bytes.Compare(result[i][:], result[j][:]) < 0
	})
	return result
}
