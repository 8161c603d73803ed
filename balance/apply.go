// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package balance

import (
	"github.com/shopspring/decimal"

	"github.com/famecoin/neo-scan/asset"
	"github.com/famecoin/neo-scan/fault"
	"github.com/famecoin/neo-scan/txid"
)

// ApplyCredit - add a new output's value to the asset balance
//
// the asset entry is created at the credited value when this is the
// first credit for it, then the transaction id is recorded with the
// updated snapshot
func (entity *Entity) ApplyCredit(assetId asset.ID, amount decimal.Decimal, tx txid.TxId) {
	entity.Balances[assetId] = entity.Balances[assetId].Add(amount)
	entity.mergeTxId(tx)
}

// ApplyDebit - subtract a spent output's value from the asset balance
//
// the asset must already carry a balance from a prior credit; a
// debit never creates an asset entry, so a debit against an unknown
// asset is a data integrity violation and nothing is changed
func (entity *Entity) ApplyDebit(assetId asset.ID, amount decimal.Decimal, tx txid.TxId) error {
	current, ok := entity.Balances[assetId]
	if !ok {
		return fault.MissingAsset
	}
	entity.Balances[assetId] = current.Sub(amount)
	entity.mergeTxId(tx)
	return nil
}

// ApplyClaim - record a claim keyed by its exact transaction id set
//
// a claim whose transaction id set is already recorded is dropped
// and false is returned so the caller can count the duplicate;
// claims never modify the balances
func (entity *Entity) ApplyClaim(txIds []txid.TxId, assetId asset.ID, amount decimal.Decimal) bool {
	if entity.HasClaim(txIds) {
		return false
	}
	claimTxIds := make([]txid.TxId, len(txIds))
	copy(claimTxIds, txIds)
	entity.Claims = append(entity.Claims, Claim{
		TxIds:  claimTxIds,
		Asset:  assetId,
		Amount: amount,
	})
	return true
}

// internal function to record a transaction id with the current
// balance snapshot
//
// an id already present keeps its position and only has its
// snapshot replaced, so one transaction producing several events
// for the same address still ends up as a single history entry
func (entity *Entity) mergeTxId(tx txid.TxId) {
	snapshot := entity.Balances.Clone()
	for i, entry := range entity.Applied {
		if tx == entry.TxId {
			entity.Applied[i].Balances = snapshot
			return
		}
	}
	entity.Applied = append(entity.Applied, TxEntry{
		TxId:     tx,
		Balances: snapshot,
	})
}
