// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"

	"github.com/famecoin/neo-scan/address"
	"github.com/famecoin/neo-scan/asset"
	"github.com/famecoin/neo-scan/balance"
	"github.com/famecoin/neo-scan/event"
	"github.com/famecoin/neo-scan/fault"
	"github.com/famecoin/neo-scan/fixtures"
	"github.com/famecoin/neo-scan/ledger"
	"github.com/famecoin/neo-scan/storage"
	"github.com/famecoin/neo-scan/storage/mocks"
	"github.com/famecoin/neo-scan/txid"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

var (
	addr1 = address.Hash{0x01, 0x01, 0x01}
	addr2 = address.Hash{0x02, 0x02, 0x02}
	addr3 = address.Hash{0x03, 0x03, 0x03}

	tx1 = txid.NewTxId([]byte("transaction one"))
	tx2 = txid.NewTxId([]byte("transaction two"))
	tx3 = txid.NewTxId([]byte("transaction three"))
)

func amount(value int64) decimal.Decimal {
	return decimal.NewFromInt(value)
}

func vout(addr address.Hash, value int64, tx txid.TxId) event.Event {
	return event.Event{
		Kind:    event.Vout,
		Address: addr,
		Asset:   asset.Governing,
		Value:   amount(value),
		TxId:    tx,
	}
}

func vin(addr address.Hash, value int64, tx txid.TxId) event.Event {
	return event.Event{
		Kind:    event.Vin,
		Address: addr,
		Asset:   asset.Governing,
		Value:   amount(value),
		TxId:    tx,
	}
}

func claim(addrs []address.Hash, value int64, txIds ...txid.TxId) event.Event {
	return event.Event{
		Kind:      event.Claim,
		Addresses: addrs,
		Asset:     asset.Utility,
		Amount:    amount(value),
		TxIds:     txIds,
	}
}

// start the engine on a store and stop it again at test end
func setupLedger(t *testing.T, store storage.EntityStore) {
	t.Helper()

	err := ledger.Initialise(ledger.Configuration{Workers: 1, QueueSize: 4}, store)
	if nil != err {
		t.Fatalf("initialise error: %s", err)
	}
	t.Cleanup(func() {
		_ = ledger.Finalise()
	})
}

// the worked example: credit ten, debit four, replay the credit
func TestApplySequence(t *testing.T) {
	store := storage.NewMemoryStore()
	setupLedger(t, store)

	result, err := ledger.Apply(event.NewBatch([]event.Event{
		vout(addr1, 10, tx1),
	}))
	if nil != err {
		t.Fatalf("apply error: %s", err)
	}
	if 1 != len(result.Updated) || 0 != len(result.Failed) {
		t.Fatalf("result: %+v", result)
	}

	result, err = ledger.Apply(event.NewBatch([]event.Event{
		vin(addr1, 4, tx2),
	}))
	if nil != err {
		t.Fatalf("apply error: %s", err)
	}
	if 1 != len(result.Updated) {
		t.Fatalf("result: %+v", result)
	}

	// redelivered credit must not change the balances
	_, err = ledger.Apply(event.NewBatch([]event.Event{
		vout(addr1, 10, tx1),
	}))
	if nil != err {
		t.Fatalf("apply error: %s", err)
	}

	entity, err := store.Get(addr1)
	if nil != err {
		t.Fatalf("get error: %s", err)
	}
	if nil == entity {
		t.Fatal("entity not stored")
	}
	if !entity.Balances[asset.Governing].Equal(amount(6)) {
		t.Fatalf("balance: actual: %s  expected: 6", entity.Balances[asset.Governing])
	}
	if 2 != len(entity.Applied) {
		t.Fatalf("applied length: actual: %d  expected: 2", len(entity.Applied))
	}
	if !entity.Applied[0].Balances[asset.Governing].Equal(amount(10)) {
		t.Errorf("first snapshot: actual: %s  expected: 10", entity.Applied[0].Balances[asset.Governing])
	}
	if !entity.Applied[1].Balances[asset.Governing].Equal(amount(6)) {
		t.Errorf("second snapshot: actual: %s  expected: 6", entity.Applied[1].Balances[asset.Governing])
	}
}

// the identical batch applied twice ends in the same state as
// applied once
func TestIdempotentReplay(t *testing.T) {
	store := storage.NewMemoryStore()
	setupLedger(t, store)

	batch := event.NewBatch([]event.Event{
		vout(addr1, 10, tx1),
		vout(addr1, 5, tx2),
		vin(addr1, 4, tx3),
	})

	for i := 0; i < 2; i += 1 {
		result, err := ledger.Apply(batch)
		if nil != err {
			t.Fatalf("apply %d error: %s", i, err)
		}
		if 0 != len(result.Failed) {
			t.Fatalf("apply %d failed: %+v", i, result.Failed)
		}
	}

	entity, err := store.Get(addr1)
	if nil != err {
		t.Fatalf("get error: %s", err)
	}
	if !entity.Balances[asset.Governing].Equal(amount(11)) {
		t.Fatalf("balance: actual: %s  expected: 11", entity.Balances[asset.Governing])
	}
	if 3 != len(entity.Applied) {
		t.Fatalf("applied length: actual: %d  expected: 3", len(entity.Applied))
	}
}

// two outputs of one new transaction to the same address merge into
// a single history entry and the merge is counted
func TestDuplicateTxIdMerge(t *testing.T) {
	store := storage.NewMemoryStore()
	setupLedger(t, store)

	before := ledger.ReadCounters().DuplicateTxIds

	result, err := ledger.Apply(event.NewBatch([]event.Event{
		vout(addr1, 10, tx1),
		vout(addr1, 5, tx1),
	}))
	if nil != err {
		t.Fatalf("apply error: %s", err)
	}
	if 1 != result.DuplicateTxIds {
		t.Fatalf("duplicate txids: actual: %d  expected: 1", result.DuplicateTxIds)
	}

	entity, err := store.Get(addr1)
	if nil != err {
		t.Fatalf("get error: %s", err)
	}
	if !entity.Balances[asset.Governing].Equal(amount(15)) {
		t.Fatalf("balance: actual: %s  expected: 15", entity.Balances[asset.Governing])
	}
	if 1 != len(entity.Applied) {
		t.Fatalf("applied length: actual: %d  expected: 1", len(entity.Applied))
	}

	after := ledger.ReadCounters().DuplicateTxIds
	if before+1 != after {
		t.Fatalf("counter: actual: %d  expected: %d", after, before+1)
	}
}

// events of unrelated addresses never disturb another address's
// fold
func TestUnrelatedAddressOrder(t *testing.T) {
	run := func(events []event.Event) decimal.Decimal {
		store := storage.NewMemoryStore()

		err := ledger.Initialise(ledger.Configuration{Workers: 1, QueueSize: 4}, store)
		if nil != err {
			t.Fatalf("initialise error: %s", err)
		}
		defer ledger.Finalise()

		_, err = ledger.Apply(event.NewBatch(events))
		if nil != err {
			t.Fatalf("apply error: %s", err)
		}

		entity, err := store.Get(addr1)
		if nil != err {
			t.Fatalf("get error: %s", err)
		}
		return entity.Balances[asset.Governing]
	}

	first := run([]event.Event{
		vout(addr2, 100, tx1),
		vout(addr1, 10, tx1),
		vout(addr1, 5, tx2),
		vout(addr3, 7, tx2),
		vin(addr1, 4, tx3),
	})
	second := run([]event.Event{
		vout(addr1, 10, tx1),
		vout(addr3, 7, tx2),
		vout(addr1, 5, tx2),
		vin(addr1, 4, tx3),
		vout(addr2, 100, tx1),
	})

	if !first.Equal(second) {
		t.Fatalf("reordered batch diverged: %s != %s", first, second)
	}
}

// a debit for a never credited asset fails its own address only
func TestBatchIsolation(t *testing.T) {
	store := storage.NewMemoryStore()
	setupLedger(t, store)

	result, err := ledger.Apply(event.NewBatch([]event.Event{
		vout(addr1, 10, tx1),
		vin(addr2, 4, tx2), // addr2 never credited
	}))
	if nil != err {
		t.Fatalf("apply error: %s", err)
	}

	if 1 != len(result.Updated) || addr1 != result.Updated[0] {
		t.Fatalf("updated: %+v", result.Updated)
	}
	if 1 != len(result.Failed) || addr2 != result.Failed[0].Address {
		t.Fatalf("failed: %+v", result.Failed)
	}
	if fault.MissingAsset != result.Failed[0].Reason {
		t.Fatalf("reason: actual: %s  expected: %s", result.Failed[0].Reason, fault.MissingAsset)
	}

	// the failed address must not have been persisted
	stored, err := store.Has(addr2)
	if nil != err {
		t.Fatalf("has error: %s", err)
	}
	if stored {
		t.Fatal("failed address was persisted")
	}
}

// a failed fold part way through an address leaves no trace of the
// events before the failure
func TestFailedFoldDiscarded(t *testing.T) {
	store := storage.NewMemoryStore()
	setupLedger(t, store)

	_, err := ledger.Apply(event.NewBatch([]event.Event{
		vout(addr1, 10, tx1),
	}))
	if nil != err {
		t.Fatalf("apply error: %s", err)
	}

	badDebit := event.Event{
		Kind:    event.Vin,
		Address: addr1,
		Asset:   asset.Utility, // never credited
		Value:   amount(1),
		TxId:    txid.NewTxId([]byte("bad debit")),
	}
	result, err := ledger.Apply(event.NewBatch([]event.Event{
		vout(addr1, 3, tx2),
		badDebit,
	}))
	if nil != err {
		t.Fatalf("apply error: %s", err)
	}
	if 1 != len(result.Failed) || addr1 != result.Failed[0].Address {
		t.Fatalf("failed: %+v", result.Failed)
	}

	// the credit folded before the failure must not be visible
	entity, err := store.Get(addr1)
	if nil != err {
		t.Fatalf("get error: %s", err)
	}
	if !entity.Balances[asset.Governing].Equal(amount(10)) {
		t.Fatalf("balance: actual: %s  expected: 10", entity.Balances[asset.Governing])
	}
	if 1 != len(entity.Applied) {
		t.Fatalf("applied length: actual: %d  expected: 1", len(entity.Applied))
	}
}

// the same claim delivered twice records exactly one entry
func TestClaimUniqueness(t *testing.T) {
	store := storage.NewMemoryStore()
	setupLedger(t, store)

	batch := event.NewBatch([]event.Event{
		claim([]address.Hash{addr1}, 3, tx1, tx2),
	})

	result, err := ledger.Apply(batch)
	if nil != err {
		t.Fatalf("apply error: %s", err)
	}
	if 0 != result.DuplicateClaims {
		t.Fatalf("duplicate claims: actual: %d  expected: 0", result.DuplicateClaims)
	}

	result, err = ledger.Apply(batch)
	if nil != err {
		t.Fatalf("apply error: %s", err)
	}
	if 1 != result.DuplicateClaims {
		t.Fatalf("duplicate claims: actual: %d  expected: 1", result.DuplicateClaims)
	}

	entity, err := store.Get(addr1)
	if nil != err {
		t.Fatalf("get error: %s", err)
	}
	if 1 != len(entity.Claims) {
		t.Fatalf("claims length: actual: %d  expected: 1", len(entity.Claims))
	}
	if !entity.Claims[0].Amount.Equal(amount(3)) {
		t.Fatalf("claim amount: actual: %s  expected: 3", entity.Claims[0].Amount)
	}
}

// a claim listing several addresses lands on each of them
func TestClaimFanOut(t *testing.T) {
	store := storage.NewMemoryStore()
	setupLedger(t, store)

	result, err := ledger.Apply(event.NewBatch([]event.Event{
		claim([]address.Hash{addr1, addr2}, 3, tx1),
	}))
	if nil != err {
		t.Fatalf("apply error: %s", err)
	}
	if 2 != len(result.Updated) {
		t.Fatalf("updated: %+v", result.Updated)
	}

	for _, addr := range []address.Hash{addr1, addr2} {
		entity, err := store.Get(addr)
		if nil != err {
			t.Fatalf("get %s error: %s", addr, err)
		}
		if nil == entity || 1 != len(entity.Claims) {
			t.Fatalf("claims for %s: %+v", addr, entity)
		}
	}
}

// a store failure during resolution fails the whole batch and
// persists nothing
func TestResolveFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	store := mocks.NewMockEntityStore(ctl)
	store.EXPECT().FetchSet(gomock.Any()).Return(nil, fault.StoreUnavailable).Times(1)

	setupLedger(t, store)

	_, err := ledger.Apply(event.NewBatch([]event.Event{
		vout(addr1, 10, tx1),
	}))
	if fault.StoreUnavailable != err {
		t.Fatalf("error: actual: %v  expected: %v", err, fault.StoreUnavailable)
	}
}

// a store failure during persistence fails the whole batch
func TestPersistFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	store := mocks.NewMockEntityStore(ctl)
	store.EXPECT().FetchSet(gomock.Any()).Return(nil, nil).Times(1)
	store.EXPECT().PutBatch(gomock.Any()).Return(fault.StoreUnavailable).Times(1)

	setupLedger(t, store)

	_, err := ledger.Apply(event.NewBatch([]event.Event{
		vout(addr1, 10, tx1),
	}))
	if fault.StoreUnavailable != err {
		t.Fatalf("error: actual: %v  expected: %v", err, fault.StoreUnavailable)
	}
}

// a shutdown issued while a worker is mid batch with more batches
// queued must still complete once the store returns
func TestFinaliseWithQueuedBatches(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	gate := make(chan struct{})
	entered := make(chan struct{}, 2)

	store := mocks.NewMockEntityStore(ctl)
	store.EXPECT().FetchSet(gomock.Any()).DoAndReturn(
		func([]address.Hash) (map[address.Hash]*balance.Entity, error) {
			entered <- struct{}{}
			<-gate
			return nil, nil
		}).AnyTimes()
	store.EXPECT().PutBatch(gomock.Any()).Return(nil).AnyTimes()

	err := ledger.Initialise(ledger.Configuration{Workers: 1, QueueSize: 4}, store)
	if nil != err {
		t.Fatalf("initialise error: %s", err)
	}

	// one batch held inside the store, one waiting on the queue
	for i := 0; i < 2; i += 1 {
		err = ledger.Submit(event.NewBatch([]event.Event{
			vout(addr1, 10, tx1),
		}))
		if nil != err {
			t.Fatalf("submit error: %s", err)
		}
	}

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("worker never reached the store")
	}

	done := make(chan error, 1)
	go func() {
		done <- ledger.Finalise()
	}()

	// let the shutdown begin before releasing the store
	time.Sleep(10 * time.Millisecond)
	close(gate)

	select {
	case err := <-done:
		if nil != err {
			t.Fatalf("finalise error: %s", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("finalise did not complete")
	}
}

// an empty batch resolves to an empty result without touching the
// store
func TestEmptyBatch(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	store := mocks.NewMockEntityStore(ctl) // no expected calls

	setupLedger(t, store)

	result, err := ledger.Apply(event.NewBatch(nil))
	if nil != err {
		t.Fatalf("apply error: %s", err)
	}
	if 0 != len(result.Updated) || 0 != len(result.Failed) {
		t.Fatalf("result: %+v", result)
	}
}
