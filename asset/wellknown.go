// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

// ids of the two chain native assets
//
// stored in natural byte order so the String form shows the
// familiar reversed hex of the registration transaction
var (
	// Governing - the governance token
	Governing = ID{
		0x9b, 0x7c, 0xff, 0xda, 0xa6, 0x74, 0xbe, 0xae,
		0x0f, 0x93, 0x0e, 0xbe, 0x60, 0x85, 0xaf, 0x90,
		0x93, 0xe5, 0xfe, 0x56, 0xb3, 0x4a, 0x5c, 0x22,
		0x0c, 0xcd, 0xcf, 0x6e, 0xfc, 0x33, 0x6f, 0xc5,
	}

	// Utility - the fee token
	Utility = ID{
		0xe7, 0x2d, 0x28, 0x69, 0x79, 0xee, 0x6c, 0xb1,
		0xb7, 0xe6, 0x5d, 0xfd, 0xdf, 0xb2, 0xe3, 0x84,
		0x10, 0x0b, 0x8d, 0x14, 0x8e, 0x77, 0x58, 0xde,
		0x42, 0xe4, 0x16, 0x8b, 0x71, 0x79, 0x2c, 0x60,
	}
)

// Symbol - the display symbol for a native asset id
//
// returns an empty string for ids without a registered symbol
func Symbol(assetId ID) string {
	switch assetId {
	case Governing:
		return "NEO"
	case Utility:
		return "GAS"
	default:
		return ""
	}
}
