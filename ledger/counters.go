// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/famecoin/neo-scan/counter"
)

// running totals since start, reported by the daemon
var (
	batchesApplied   counter.Counter
	batchesFailed    counter.Counter
	eventsApplied    counter.Counter
	addressesUpdated counter.Counter
	addressesFailed  counter.Counter
	duplicateTxIds   counter.Counter
	duplicateClaims  counter.Counter
)

// Counters - a snapshot of the engine totals
type Counters struct {
	BatchesApplied   uint64 `json:"batches_applied"`
	BatchesFailed    uint64 `json:"batches_failed"`
	EventsApplied    uint64 `json:"events_applied"`
	AddressesUpdated uint64 `json:"addresses_updated"`
	AddressesFailed  uint64 `json:"addresses_failed"`
	DuplicateTxIds   uint64 `json:"duplicate_txids"`
	DuplicateClaims  uint64 `json:"duplicate_claims"`
}

// ReadCounters - snapshot the running totals
func ReadCounters() Counters {
	return Counters{
		BatchesApplied:   batchesApplied.Uint64(),
		BatchesFailed:    batchesFailed.Uint64(),
		EventsApplied:    eventsApplied.Uint64(),
		AddressesUpdated: addressesUpdated.Uint64(),
		AddressesFailed:  addressesFailed.Uint64(),
		DuplicateTxIds:   duplicateTxIds.Uint64(),
		DuplicateClaims:  duplicateClaims.Uint64(),
	}
}
