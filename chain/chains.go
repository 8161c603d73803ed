// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain - names of the networks an explorer instance can index
package chain

// names of all chains
const (
	Mainnet = "mainnet"
	Testnet = "testnet"
	Privnet = "privnet"
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Mainnet, Testnet, Privnet:
		return true
	default:
		return false
	}
}

// IsTestnet - true for any chain whose addresses use the test
// address version byte
func IsTestnet(name string) bool {
	switch name {
	case Testnet, Privnet:
		return true
	default:
		return false
	}
}
