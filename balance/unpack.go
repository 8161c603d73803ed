// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package balance

import (
	"github.com/shopspring/decimal"

	"github.com/famecoin/neo-scan/address"
	"github.com/famecoin/neo-scan/asset"
	"github.com/famecoin/neo-scan/fault"
	"github.com/famecoin/neo-scan/txid"
	"github.com/famecoin/neo-scan/util"
)

// Unpack - deserialise a packed entity
//
// the whole buffer must be consumed; any truncation, trailing bytes
// or unknown version is rejected
func Unpack(buffer []byte) (*Entity, error) {
	if 0 == len(buffer) || packVersion != buffer[0] {
		return nil, fault.NotLedgerEntityPack
	}
	offset := 1

	entity := &Entity{}

	if offset+address.HashLength > len(buffer) {
		return nil, fault.NotLedgerEntityPack
	}
	copy(entity.Address[:], buffer[offset:offset+address.HashLength])
	offset += address.HashLength

	balances, offset, err := unpackBalances(buffer, offset)
	if nil != err {
		return nil, err
	}
	entity.Balances = balances

	appliedCount, n := util.FromVarint64(buffer[offset:])
	if 0 == n {
		return nil, fault.NotLedgerEntityPack
	}
	offset += n
	for i := uint64(0); i < appliedCount; i += 1 {
		if offset+txid.Length > len(buffer) {
			return nil, fault.NotLedgerEntityPack
		}
		entry := TxEntry{}
		copy(entry.TxId[:], buffer[offset:offset+txid.Length])
		offset += txid.Length

		entry.Balances, offset, err = unpackBalances(buffer, offset)
		if nil != err {
			return nil, err
		}
		entity.Applied = append(entity.Applied, entry)
	}

	claimCount, n := util.FromVarint64(buffer[offset:])
	if 0 == n {
		return nil, fault.NotLedgerEntityPack
	}
	offset += n
	for i := uint64(0); i < claimCount; i += 1 {
		txCount, n := util.FromVarint64(buffer[offset:])
		if 0 == n {
			return nil, fault.NotLedgerEntityPack
		}
		offset += n

		claim := Claim{}
		for j := uint64(0); j < txCount; j += 1 {
			if offset+txid.Length > len(buffer) {
				return nil, fault.NotLedgerEntityPack
			}
			var tx txid.TxId
			copy(tx[:], buffer[offset:offset+txid.Length])
			offset += txid.Length
			claim.TxIds = append(claim.TxIds, tx)
		}

		if offset+asset.Length > len(buffer) {
			return nil, fault.NotLedgerEntityPack
		}
		copy(claim.Asset[:], buffer[offset:offset+asset.Length])
		offset += asset.Length

		claim.Amount, offset, err = unpackAmount(buffer, offset)
		if nil != err {
			return nil, err
		}
		entity.Claims = append(entity.Claims, claim)
	}

	if offset != len(buffer) {
		return nil, fault.NotLedgerEntityPack
	}
	return entity, nil
}

// internal function to read a balances block
func unpackBalances(buffer []byte, offset int) (Balances, int, error) {
	count, n := util.FromVarint64(buffer[offset:])
	if 0 == n {
		return nil, 0, fault.NotLedgerEntityPack
	}
	offset += n

	// no capacity hint, the count is untrusted until the bytes
	// behind it have been checked
	balances := make(Balances)
	for i := uint64(0); i < count; i += 1 {
		if offset+asset.Length > len(buffer) {
			return nil, 0, fault.NotLedgerEntityPack
		}
		var assetId asset.ID
		copy(assetId[:], buffer[offset:offset+asset.Length])
		offset += asset.Length

		amount, newOffset, err := unpackAmount(buffer, offset)
		if nil != err {
			return nil, 0, err
		}
		offset = newOffset
		balances[assetId] = amount
	}
	return balances, offset, nil
}

// internal function to read a length prefixed decimal amount
func unpackAmount(buffer []byte, offset int) (decimal.Decimal, int, error) {
	var amount decimal.Decimal

	length, n := util.FromVarint64(buffer[offset:])
	if 0 == n {
		return amount, 0, fault.NotLedgerEntityPack
	}
	offset += n

	if length > uint64(len(buffer)-offset) {
		return amount, 0, fault.NotLedgerEntityPack
	}
	err := amount.UnmarshalBinary(buffer[offset : offset+int(length)])
	if nil != err {
		return amount, 0, fault.NotLedgerEntityPack
	}
	offset += int(length)
	return amount, offset, nil
}
