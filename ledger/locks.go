// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"sort"
	"sync"

	"github.com/famecoin/neo-scan/address"
)

// lockTable - per address mutual exclusion
//
// a batch locks every address it touches before resolving and holds
// the locks until its updates are durable, so overlapping batches
// never interleave their read-modify-write cycles
//
// locks are reference counted and removed again once the last
// holder releases, the table stays proportional to the number of
// in-flight batches not to the number of addresses ever seen
type lockTable struct {
	sync.Mutex
	entries map[address.Hash]*addressLock
}

type addressLock struct {
	mutex sync.Mutex
	refs  int
}

// lockSet - the addresses held by one batch
type lockSet struct {
	table     *lockTable
	addresses []address.Hash
}

func newLockTable() *lockTable {
	return &lockTable{
		entries: make(map[address.Hash]*addressLock),
	}
}

// acquire - lock a set of addresses
//
// every caller locks in the same global byte order so two batches
// with overlapping sets cannot deadlock
func (table *lockTable) acquire(addresses []address.Hash) *lockSet {
	sorted := sortedUniqueAddresses(addresses)

	for _, addressHash := range sorted {
		table.Lock()
		entry, ok := table.entries[addressHash]
		if !ok {
			entry = &addressLock{}
			table.entries[addressHash] = entry
		}
		entry.refs += 1
		table.Unlock()

		entry.mutex.Lock()
	}

	return &lockSet{
		table:     table,
		addresses: sorted,
	}
}

// release - unlock in reverse order and drop unreferenced entries
func (set *lockSet) release() {
	table := set.table
	for i := len(set.addresses) - 1; i >= 0; i -= 1 {
		addressHash := set.addresses[i]

		table.Lock()
		entry := table.entries[addressHash]
		entry.mutex.Unlock()
		entry.refs -= 1
		if 0 == entry.refs {
			delete(table.entries, addressHash)
		}
		table.Unlock()
	}
}

// internal function to sort and deduplicate an address list
func sortedUniqueAddresses(addresses []address.Hash) []address.Hash {
	sorted := make([]address.Hash, len(addresses))
	copy(sorted, addresses)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i][:], sorted[j][:]) < 0
	})

	unique := sorted[:0]
	for i, addressHash := range sorted {
		if 0 == i || addressHash != unique[len(unique)-1] {
			unique = append(unique, addressHash)
		}
	}
	return unique
}
