// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"database/sql"

	"github.com/lib/pq"

	"github.com/bitmark-inc/logger"

	"github.com/famecoin/neo-scan/address"
	"github.com/famecoin/neo-scan/balance"
	"github.com/famecoin/neo-scan/fault"
)

// the single table used by the postgres backend
const createSQL = `
CREATE TABLE IF NOT EXISTS ledger_entities (
    address    BYTEA PRIMARY KEY,
    entity     BYTEA NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const (
	fetchSetSQL = `SELECT address, entity FROM ledger_entities WHERE address = ANY($1)`
	upsertSQL   = `INSERT INTO ledger_entities (address, entity) VALUES ($1, $2)
	               ON CONFLICT (address) DO UPDATE SET entity = EXCLUDED.entity, updated_at = now()`
	getSQL = `SELECT entity FROM ledger_entities WHERE address = $1`
	hasSQL = `SELECT EXISTS (SELECT 1 FROM ledger_entities WHERE address = $1)`
)

// pgStore - EntityStore over a postgres table
type pgStore struct {
	database *sql.DB
	log      *logger.L
}

func newPGStore(connection string, readOnly bool, log *logger.L) (*pgStore, error) {
	db, err := sql.Open("postgres", connection)
	if nil != err {
		return nil, err
	}
	err = db.Ping()
	if nil != err {
		db.Close()
		return nil, err
	}

	if !readOnly {
		_, err = db.Exec(createSQL)
		if nil != err {
			db.Close()
			return nil, err
		}
	}

	return &pgStore{
		database: db,
		log:      log,
	}, nil
}

func (s *pgStore) close() {
	s.database.Close()
}

// FetchSet - resolve a set of addresses with a single array query
func (s *pgStore) FetchSet(addresses []address.Hash) (map[address.Hash]*balance.Entity, error) {
	keys := make([][]byte, len(addresses))
	for i, addressHash := range addresses {
		key := make([]byte, address.HashLength)
		copy(key, addressHash[:])
		keys[i] = key
	}

	rows, err := s.database.Query(fetchSetSQL, pq.ByteaArray(keys))
	if nil != err {
		s.log.Errorf("fetch set error: %s", err)
		return nil, fault.StoreUnavailable
	}
	defer rows.Close()

	result := make(map[address.Hash]*balance.Entity, len(addresses))
	for rows.Next() {
		var key []byte
		var packed []byte
		err = rows.Scan(&key, &packed)
		if nil != err {
			s.log.Errorf("fetch set scan error: %s", err)
			return nil, fault.StoreUnavailable
		}

		var addressHash address.Hash
		err = address.FromBytes(&addressHash, key)
		if nil != err {
			s.log.Errorf("fetch set key error: %s", err)
			return nil, err
		}

		entity, err := balance.Unpack(packed)
		if nil != err {
			s.log.Errorf("stored entity for %s unpack error: %s", addressHash, err)
			return nil, err
		}
		result[addressHash] = entity
	}
	err = rows.Err()
	if nil != err {
		s.log.Errorf("fetch set rows error: %s", err)
		return nil, fault.StoreUnavailable
	}

	return result, nil
}

// PutBatch - upsert a set of entities in one transaction
func (s *pgStore) PutBatch(entities []*balance.Entity) error {
	if 0 == len(entities) {
		return nil
	}

	tx, err := s.database.Begin()
	if nil != err {
		s.log.Errorf("begin error: %s", err)
		return fault.StoreUnavailable
	}

	stmt, err := tx.Prepare(upsertSQL)
	if nil != err {
		tx.Rollback()
		s.log.Errorf("prepare error: %s", err)
		return fault.StoreUnavailable
	}

	for _, entity := range entities {
		packed, err := entity.Pack()
		if nil != err {
			stmt.Close()
			tx.Rollback()
			s.log.Errorf("pack %s error: %s", entity.Address, err)
			return err
		}
		_, err = stmt.Exec(entity.Address[:], packed)
		if nil != err {
			stmt.Close()
			tx.Rollback()
			s.log.Errorf("upsert %s error: %s", entity.Address, err)
			return fault.StoreUnavailable
		}
	}
	stmt.Close()

	err = tx.Commit()
	if nil != err {
		s.log.Errorf("commit error: %s", err)
		return fault.StoreUnavailable
	}
	return nil
}

// Get - read one entity, nil if absent
func (s *pgStore) Get(addressHash address.Hash) (*balance.Entity, error) {
	var packed []byte
	err := s.database.QueryRow(getSQL, addressHash[:]).Scan(&packed)
	if sql.ErrNoRows == err {
		return nil, nil
	}
	if nil != err {
		s.log.Errorf("get %s error: %s", addressHash, err)
		return nil, fault.StoreUnavailable
	}
	return balance.Unpack(packed)
}

// Has - check whether an entity exists
func (s *pgStore) Has(addressHash address.Hash) (bool, error) {
	found := false
	err := s.database.QueryRow(hasSQL, addressHash[:]).Scan(&found)
	if nil != err {
		s.log.Errorf("has %s error: %s", addressHash, err)
		return false, fault.StoreUnavailable
	}
	return found, nil
}
