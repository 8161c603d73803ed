// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address - script hash address handling
//
// the ledger keys every entity by the 20 byte script hash; the
// Base58 text form with version byte and double SHA-256 checksum
// is only produced for display and accepted as operator input
package address
