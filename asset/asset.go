// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/famecoin/neo-scan/fault"
)

// Length - number of bytes in an asset id
const Length = 32

// ID - identifier of a ledger asset
//
// an asset id is the hash of its registration transaction, so the
// text conventions follow transaction ids: String is the reversed
// hex form, MarshalText is the natural byte order
type ID [Length]byte

// NewID - hash a buffer to an asset id
func NewID(record []byte) ID {
	return ID(sha3.Sum256(record))
}

// internal function to return a reversed byte order copy of an asset id
func (assetId ID) reversed() []byte {
	result := make([]byte, Length)
	for i := 0; i < Length; i += 1 {
		result[i] = assetId[Length-1-i]
	}
	return result
}

// String - convert an asset id to reversed hex string for use by the fmt package (for %s)
func (assetId ID) String() string {
	return hex.EncodeToString(assetId.reversed())
}

// GoString - convert an asset id to reversed hex string for use by the fmt package (for %#v)
func (assetId ID) GoString() string {
	return "<asset:" + hex.EncodeToString(assetId.reversed()) + ">"
}

// Scan - convert a reversed hex representation to an asset id for use by the format package scan routines
func (assetId *ID) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	buffer := make([]byte, hex.DecodedLen(len(token)))
	if Length != hex.DecodedLen(len(token)) {
		return fault.NotAssetId
	}
	byteCount, err := hex.Decode(buffer, token)
	if nil != err {
		return err
	}
	if Length != byteCount {
		return fault.NotAssetId
	}

	for i := 0; i < Length; i += 1 {
		assetId[i] = buffer[Length-1-i]
	}
	return nil
}

// MarshalText - convert an asset id to hex text
//
// the marshalled form is in natural byte order, not the reversed
// display order used by String
func (assetId ID) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(Length)
	buffer := make([]byte, size)
	hex.Encode(buffer, assetId[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into an asset id
func (assetId *ID) UnmarshalText(s []byte) error {
	if Length != hex.DecodedLen(len(s)) {
		return fault.NotAssetId
	}
	byteCount, err := hex.Decode(assetId[:], s)
	if nil != err {
		return err
	}
	if Length != byteCount {
		return fault.NotAssetId
	}
	return nil
}

// FromBytes - convert and validate a binary byte slice to an asset id
func FromBytes(assetId *ID, buffer []byte) error {
	if Length != len(buffer) {
		return fault.NotAssetId
	}
	copy(assetId[:], buffer)
	return nil
}
