// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/logger"

	"github.com/famecoin/neo-scan/address"
	"github.com/famecoin/neo-scan/balance"
	"github.com/famecoin/neo-scan/fault"
)

// backend names accepted by the configuration
const (
	BackendLevelDB  = "leveldb"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Configuration - storage settings from the configuration file
type Configuration struct {
	Backend  string `gluamapper:"backend" json:"backend"`
	Database string `gluamapper:"database" json:"database"`
	Postgres string `gluamapper:"postgres" json:"postgres"`
}

// EntityStore - the batched contract the reduction engine runs against
//
// FetchSet returns only the entities that exist, callers treat a
// missing key as absent; it is all or nothing, a backend failure
// fails the whole call
//
// Get and Has serve inspection tools, the engine itself only ever
// calls FetchSet and PutBatch
type EntityStore interface {
	FetchSet(addresses []address.Hash) (map[address.Hash]*balance.Entity, error)
	PutBatch(entities []*balance.Entity) error
	Get(addressHash address.Hash) (*balance.Entity, error)
	Has(addressHash address.Hash) (bool, error)
}

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Ledger   *PoolHandle `prefix:"L"`
	TestData *PoolHandle `prefix:"Z"`
}

// Pool - the set of exported pools
//
// only populated on the leveldb backend
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// holds the database handle
var globalData struct {
	sync.RWMutex
	log      *logger.L
	database *leveldb.DB
	store    EntityStore
	cache    Cache
}

// Initialise - open the configured backend
//
// this must be called before any pool or the store is accessed
func Initialise(configuration Configuration, readOnly bool) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.store {
		return fault.AlreadyInitialised
	}

	log := logger.New("storage")
	globalData.log = log
	log.Info("starting…")

	switch configuration.Backend {

	case BackendLevelDB:
		db, err := getDB(configuration.Database+"-ledger.leveldb", readOnly)
		if nil != err {
			return err
		}
		globalData.database = db
		globalData.cache = newCache()

		err = setupPools(db)
		if nil != err {
			dbClose()
			return err
		}

		globalData.store = &ledgerStore{
			database: db,
			pool:     Pool.Ledger,
			cache:    globalData.cache,
			log:      log,
		}

	case BackendPostgres:
		store, err := newPGStore(configuration.Postgres, readOnly, log)
		if nil != err {
			return err
		}
		globalData.store = store

	case BackendMemory:
		// volatile, for private nets and tests only
		globalData.store = NewMemoryStore()

	default:
		log.Errorf("unsupported backend: %q", configuration.Backend)
		return fault.InvalidStorageBackend
	}

	log.Infof("backend: %s", configuration.Backend)
	return nil
}

// Finalise - close the backend
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.store {
		return fault.NotInitialised
	}

	if closer, ok := globalData.store.(interface{ close() }); ok {
		closer.close()
	}
	dbClose()
	globalData.store = nil
	globalData.cache = nil

	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}

// Store - access the configured entity store
func Store() EntityStore {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.store
}

func dbClose() {
	if nil != globalData.database {
		globalData.database.Close()
		globalData.database = nil
	}
	Pool = pools{}
}

// scan the pools struct and assign a prefixed handle to every field
func setupPools(db *leveldb.DB) error {

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix:   prefix,
			limit:    limit,
			database: db,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

// open a leveldb file checking its version tag
func getDB(name string, readOnly bool) (*leveldb.DB, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		if readOnly {
			return db, nil
		}
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			db.Close()
			return nil, err
		}
		return db, nil
	} else if nil != err {
		db.Close()
		return nil, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	if version > currentDBVersion {
		db.Close()
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}
	return db, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
