// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package balance

import (
	"bytes"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/famecoin/neo-scan/asset"
	"github.com/famecoin/neo-scan/util"
)

// packVersion - leading byte of every packed entity
//
// bump when the layout changes so old records are rejected rather
// than misread
const packVersion byte = 0x01

// Pack - serialise an entity to its store form
//
// layout:
//
//	version      1 byte
//	address      20 bytes
//	balances     varint count, then per asset:
//	               asset id   32 bytes
//	               amount     varint length + decimal bytes
//	applied      varint count, then per entry:
//	               txid       32 bytes
//	               balances   as above
//	claims       varint count, then per claim:
//	               txid count varint, txids 32 bytes each
//	               asset id   32 bytes
//	               amount     varint length + decimal bytes
//
// balances are written in asset id byte order so packing is
// deterministic
func (entity *Entity) Pack() ([]byte, error) {
	buffer := make([]byte, 0, 256)
	buffer = append(buffer, packVersion)
	buffer = append(buffer, entity.Address[:]...)

	buffer, err := packBalances(buffer, entity.Balances)
	if nil != err {
		return nil, err
	}

	buffer = append(buffer, util.ToVarint64(uint64(len(entity.Applied)))...)
	for _, entry := range entity.Applied {
		buffer = append(buffer, entry.TxId[:]...)
		buffer, err = packBalances(buffer, entry.Balances)
		if nil != err {
			return nil, err
		}
	}

	buffer = append(buffer, util.ToVarint64(uint64(len(entity.Claims)))...)
	for _, claim := range entity.Claims {
		buffer = append(buffer, util.ToVarint64(uint64(len(claim.TxIds)))...)
		for _, tx := range claim.TxIds {
			buffer = append(buffer, tx[:]...)
		}
		buffer = append(buffer, claim.Asset[:]...)
		buffer, err = packAmount(buffer, claim.Amount)
		if nil != err {
			return nil, err
		}
	}

	return buffer, nil
}

// internal function to append a balances block
func packBalances(buffer []byte, balances Balances) ([]byte, error) {
	assetIds := make([]asset.ID, 0, len(balances))
	for assetId := range balances {
		assetIds = append(assetIds, assetId)
	}
	sort.Slice(assetIds, func(i, j int) bool {
		return bytes.Compare(assetIds[i][:], assetIds[j][:]) < 0
	})

	buffer = append(buffer, util.ToVarint64(uint64(len(assetIds)))...)
	for _, assetId := range assetIds {
		buffer = append(buffer, assetId[:]...)
		var err error
		buffer, err = packAmount(buffer, balances[assetId])
		if nil != err {
			return nil, err
		}
	}
	return buffer, nil
}

// internal function to append a length prefixed decimal amount
func packAmount(buffer []byte, amount decimal.Decimal) ([]byte, error) {
	data, err := amount.MarshalBinary()
	if nil != err {
		return nil, err
	}
	buffer = append(buffer, util.ToVarint64(uint64(len(data)))...)
	buffer = append(buffer, data...)
	return buffer, nil
}
