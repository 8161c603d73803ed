// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"

	"github.com/famecoin/neo-scan/address"
	"github.com/famecoin/neo-scan/balance"
	"github.com/famecoin/neo-scan/fault"
)

// ledgerStore - EntityStore over the embedded leveldb
type ledgerStore struct {
	database *leveldb.DB
	pool     *PoolHandle
	cache    Cache
	log      *logger.L
}

// FetchSet - resolve a set of addresses in one consistent read
//
// cache hits are served first, the remainder is read under a single
// database snapshot so the set cannot straddle a concurrent write
func (s *ledgerStore) FetchSet(addresses []address.Hash) (map[address.Hash]*balance.Entity, error) {
	result := make(map[address.Hash]*balance.Entity, len(addresses))

	misses := make([]address.Hash, 0, len(addresses))
	for _, addressHash := range addresses {
		packed, found := s.cache.Get(string(addressHash[:]))
		if !found {
			misses = append(misses, addressHash)
			continue
		}
		entity, err := balance.Unpack(packed)
		if nil != err {
			s.log.Errorf("cached entity for %s unpack error: %s", addressHash, err)
			return nil, err
		}
		result[addressHash] = entity
	}

	if 0 == len(misses) {
		return result, nil
	}

	snapshot, err := s.database.GetSnapshot()
	if nil != err {
		s.log.Errorf("snapshot error: %s", err)
		return nil, fault.StoreUnavailable
	}
	defer snapshot.Release()

	for _, addressHash := range misses {
		packed, err := snapshot.Get(s.pool.prefixKey(addressHash[:]), nil)
		if leveldb.ErrNotFound == err {
			continue
		}
		if nil != err {
			s.log.Errorf("fetch %s error: %s", addressHash, err)
			return nil, fault.StoreUnavailable
		}

		entity, err := balance.Unpack(packed)
		if nil != err {
			s.log.Errorf("stored entity for %s unpack error: %s", addressHash, err)
			return nil, err
		}
		result[addressHash] = entity
		s.cache.Set(dbPut, string(addressHash[:]), packed)
	}

	return result, nil
}

// PutBatch - persist a set of entities in one atomic write
func (s *ledgerStore) PutBatch(entities []*balance.Entity) error {
	if 0 == len(entities) {
		return nil
	}

	batch := new(leveldb.Batch)
	packedSet := make(map[string][]byte, len(entities))
	for _, entity := range entities {
		packed, err := entity.Pack()
		if nil != err {
			s.log.Errorf("pack %s error: %s", entity.Address, err)
			return err
		}
		batch.Put(s.pool.prefixKey(entity.Address[:]), packed)
		packedSet[string(entity.Address[:])] = packed
	}

	err := s.database.Write(batch, nil)
	if nil != err {
		s.log.Errorf("batch write error: %s", err)
		return fault.StoreUnavailable
	}

	for key, packed := range packedSet {
		s.cache.Set(dbPut, key, packed)
	}
	return nil
}

// Get - read one entity, nil if absent
func (s *ledgerStore) Get(addressHash address.Hash) (*balance.Entity, error) {
	packed, found := s.cache.Get(string(addressHash[:]))
	if !found {
		var err error
		packed, err = s.database.Get(s.pool.prefixKey(addressHash[:]), nil)
		if leveldb.ErrNotFound == err {
			return nil, nil
		}
		if nil != err {
			s.log.Errorf("get %s error: %s", addressHash, err)
			return nil, fault.StoreUnavailable
		}
		s.cache.Set(dbPut, string(addressHash[:]), packed)
	}
	return balance.Unpack(packed)
}

// Has - check whether an entity exists
func (s *ledgerStore) Has(addressHash address.Hash) (bool, error) {
	if _, found := s.cache.Get(string(addressHash[:])); found {
		return true, nil
	}
	found, err := s.database.Has(s.pool.prefixKey(addressHash[:]), nil)
	if nil != err {
		s.log.Errorf("has %s error: %s", addressHash, err)
		return false, fault.StoreUnavailable
	}
	return found, nil
}
