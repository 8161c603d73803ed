// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package balance

import (
	"github.com/shopspring/decimal"

	"github.com/famecoin/neo-scan/asset"
)

// Balances - running amount per asset
//
// the amount is the algebraic sum of every credit and debit applied
// so far; it is always updated incrementally, never recomputed
type Balances map[asset.ID]decimal.Decimal

// Clone - an independent copy of the balances
//
// decimal values are never mutated in place so sharing them between
// copies is safe, only the map itself needs duplicating
func (balances Balances) Clone() Balances {
	result := make(Balances, len(balances))
	for assetId, amount := range balances {
		result[assetId] = amount
	}
	return result
}

// Equal - true if both maps hold the same assets with equal amounts
//
// amounts compare by value, so 6 and 6.00 are equal
func (balances Balances) Equal(other Balances) bool {
	if len(balances) != len(other) {
		return false
	}
	for assetId, amount := range balances {
		otherAmount, ok := other[assetId]
		if !ok || !amount.Equal(otherAmount) {
			return false
		}
	}
	return true
}
