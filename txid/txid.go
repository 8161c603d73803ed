// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txid

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/famecoin/neo-scan/fault"
)

// Length - number of bytes in a transaction id
const Length = 32

// TxId - the id of a transaction in the event stream
// stored as little endian byte array
// represented as big endian hex value for print
// represented as little endian hex text for JSON encoding
// to convert to bytes just use txId[:]
type TxId [Length]byte

// NewTxId - create a transaction id from a byte record
//
// SHA3-256 hash, only used by tests and tools to synthesize ids;
// real ids arrive already hashed from the ingestion stream
func NewTxId(record []byte) TxId {
	return sha3.Sum256(record)
}

// internal function to return a reversed byte order copy
func reversed(txId TxId) []byte {
	result := make([]byte, Length)
	for i := 0; i < Length; i += 1 {
		result[i] = txId[Length-1-i]
	}
	return result
}

// String - convert a binary id to big endian hex string for use by the fmt package (for %s)
func (txId TxId) String() string {
	return hex.EncodeToString(reversed(txId))
}

// GoString - convert a binary id to big endian hex string for use by the fmt package (for %#v)
func (txId TxId) GoString() string {
	return "<txid:" + hex.EncodeToString(reversed(txId)) + ">"
}

// Scan - convert a big endian hex representation to an id for use by the format package scan routines
func (txId *TxId) Scan(state fmt.ScanState, verb rune) error {
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
	if len(token) != hex.EncodedLen(Length) {
		return fault.NotTransactionId
	}

	buffer := make([]byte, hex.DecodedLen(len(token)))
	byteCount, err := hex.Decode(buffer, token)
	if nil != err {
		return err
	}

	for i, v := range buffer[:byteCount] {
		txId[Length-1-i] = v
	}
	return nil
}

// MarshalText - convert an id to little endian hex text
func (txId TxId) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(Length))
	hex.Encode(buffer, txId[:])
	return buffer, nil
}

// UnmarshalText - convert little endian hex text into an id
func (txId *TxId) UnmarshalText(s []byte) error {
	if Length != hex.DecodedLen(len(s)) {
		return fault.NotTransactionId
	}
	buffer := make([]byte, hex.DecodedLen(len(s)))
	byteCount, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	for i, v := range buffer[:byteCount] {
		txId[i] = v
	}
	return nil
}

// FromBytes - convert and validate a little endian binary byte slice to an id
func FromBytes(txId *TxId, buffer []byte) error {
	if Length != len(buffer) {
		return fault.NotTransactionId
	}
	copy(txId[:], buffer)
	return nil
}
