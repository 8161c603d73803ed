// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/famecoin/neo-scan/address"
	"github.com/famecoin/neo-scan/balance"
)

// memoryStore - EntityStore held entirely in process memory
//
// entities round trip through the same pack format as the durable
// backends so codec faults surface in tests too; contents are lost
// on shutdown, suitable for private nets and tests only
type memoryStore struct {
	sync.RWMutex
	entities map[address.Hash][]byte
}

// NewMemoryStore - an empty in-memory store
func NewMemoryStore() EntityStore {
	return &memoryStore{
		entities: make(map[address.Hash][]byte),
	}
}

// FetchSet - resolve a set of addresses under one read lock
func (m *memoryStore) FetchSet(addresses []address.Hash) (map[address.Hash]*balance.Entity, error) {
	m.RLock()
	defer m.RUnlock()

	result := make(map[address.Hash]*balance.Entity, len(addresses))
	for _, addressHash := range addresses {
		packed, ok := m.entities[addressHash]
		if !ok {
			continue
		}
		entity, err := balance.Unpack(packed)
		if nil != err {
			return nil, err
		}
		result[addressHash] = entity
	}
	return result, nil
}

// PutBatch - store a set of entities under one write lock
func (m *memoryStore) PutBatch(entities []*balance.Entity) error {
	packedSet := make(map[address.Hash][]byte, len(entities))
	for _, entity := range entities {
		packed, err := entity.Pack()
		if nil != err {
			return err
		}
		packedSet[entity.Address] = packed
	}

	m.Lock()
	for addressHash, packed := range packedSet {
		m.entities[addressHash] = packed
	}
	m.Unlock()
	return nil
}

// Get - read one entity, nil if absent
func (m *memoryStore) Get(addressHash address.Hash) (*balance.Entity, error) {
	m.RLock()
	packed, ok := m.entities[addressHash]
	m.RUnlock()
	if !ok {
		return nil, nil
	}
	return balance.Unpack(packed)
}

// Has - check whether an entity exists
func (m *memoryStore) Has(addressHash address.Hash) (bool, error) {
	m.RLock()
	_, ok := m.entities[addressHash]
	m.RUnlock()
	return ok, nil
}
