// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package balance - per address aggregate ledger state
//
// one entity holds everything the ledger knows about an address:
// the running per asset balances, the ordered history of applied
// transaction ids with the balance snapshot recorded at each one,
// and the claims already granted
//
// the apply operations are pure reductions over a single entity,
// they never touch storage; resolving entities from the store and
// persisting the results is the ledger package's concern
//
// a transaction can carry several outputs and inputs touching the
// same address; each of these mutates the balances but the
// transaction id is only recorded once, later events for the same
// id just refresh the stored snapshot in place
package balance
