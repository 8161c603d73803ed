// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/famecoin/neo-scan/fault"
	"github.com/famecoin/neo-scan/util"
)

// HashLength - number of bytes in an address script hash
const HashLength = 20

// address version bytes, one per network class
const (
	livenetVersion byte = 0x17
	testnetVersion byte = 0x42
)

// number of checksum bytes appended to the Base58 form
const checksumLength = 4

// Hash - the script hash of an address
//
// this is the stable identifier the ledger is keyed by; the Base58
// text form is derived and only used for display and input
type Hash [HashLength]byte

// String - convert a script hash to hex string for use by the fmt package (for %s)
func (hash Hash) String() string {
	return hex.EncodeToString(hash[:])
}

// GoString - convert a script hash to hex string for use by the fmt package (for %#v)
func (hash Hash) GoString() string {
	return "<address:" + hex.EncodeToString(hash[:]) + ">"
}

// Scan - convert a hex representation to a script hash for use by the format package scan routines
func (hash *Hash) Scan(state fmt.ScanState, verb rune) error {
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
	if len(token) != hex.EncodedLen(HashLength) {
		return fault.NotAddressHash
	}

	byteCount, err := hex.Decode(hash[:], token)
	if nil != err {
		return err
	}
	if HashLength != byteCount {
		return fault.NotAddressHash
	}
	return nil
}

// MarshalText - convert a script hash to hex text
func (hash Hash) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(HashLength))
	hex.Encode(buffer, hash[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a script hash
func (hash *Hash) UnmarshalText(s []byte) error {
	if HashLength != hex.DecodedLen(len(s)) {
		return fault.NotAddressHash
	}
	byteCount, err := hex.Decode(hash[:], s)
	if nil != err {
		return err
	}
	if HashLength != byteCount {
		return fault.NotAddressHash
	}
	return nil
}

// FromBytes - convert and validate a binary byte slice to a script hash
func FromBytes(hash *Hash, buffer []byte) error {
	if HashLength != len(buffer) {
		return fault.NotAddressHash
	}
	copy(hash[:], buffer)
	return nil
}

// Base58 - the display form of an address
//
// version byte + script hash + first 4 bytes of SHA256(SHA256(version + hash))
func (hash Hash) Base58(testnet bool) string {
	version := livenetVersion
	if testnet {
		version = testnetVersion
	}

	payload := make([]byte, 0, 1+HashLength+checksumLength)
	payload = append(payload, version)
	payload = append(payload, hash[:]...)

	checksum := doubleSha256(payload)
	payload = append(payload, checksum[:checksumLength]...)

	return util.ToBase58(payload)
}

// FromBase58 - decode and validate the display form of an address
//
// second return is true when the address carries the testnet version byte
func FromBase58(address string) (Hash, bool, error) {
	var hash Hash

	decoded := util.FromBase58(address)
	if 1+HashLength+checksumLength != len(decoded) {
		return hash, false, fault.CannotDecodeAddress
	}

	checksumStart := len(decoded) - checksumLength
	checksum := doubleSha256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return hash, false, fault.ChecksumMismatch
	}

	testnet := false
	switch decoded[0] {
	case livenetVersion:
	case testnetVersion:
		testnet = true
	default:
		return hash, false, fault.WrongNetworkForAddress
	}

	copy(hash[:], decoded[1:checksumStart])
	return hash, testnet, nil
}

func doubleSha256(buffer []byte) []byte {
	h := sha256.New()
	h.Write(buffer)
	d := h.Sum([]byte{})
	h = sha256.New()
	h.Write(d)
	return h.Sum([]byte{})
}
