// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/google/uuid"

	"github.com/bitmark-inc/logger"

	"github.com/famecoin/neo-scan/address"
	"github.com/famecoin/neo-scan/balance"
	"github.com/famecoin/neo-scan/event"
	"github.com/famecoin/neo-scan/fault"
	"github.com/famecoin/neo-scan/storage"
	"github.com/famecoin/neo-scan/txid"
)

// AddressFailure - one address whose fold was abandoned
type AddressFailure struct {
	Address address.Hash `json:"address"`
	Reason  error        `json:"reason"`
}

// BatchResult - the per batch outcome handed back to the caller
//
// Updated lists the addresses whose entities were persisted, Failed
// the addresses whose folds were discarded; duplicate txids merge
// into an existing history entry and duplicate claims are a no-op,
// both counted only for observability
type BatchResult struct {
	Batch           uuid.UUID        `json:"batch"`
	Updated         []address.Hash   `json:"updated"`
	Failed          []AddressFailure `json:"failed"`
	DuplicateTxIds  int              `json:"duplicate_txids"`
	DuplicateClaims int              `json:"duplicate_claims"`
}

// Apply - reduce one batch against the store
//
// a non nil error means nothing was persisted and the whole batch
// is eligible for redelivery; with a nil error the result lists the
// persisted addresses and any per address failures
func Apply(batch *event.Batch) (*BatchResult, error) {
	globalData.RLock()
	store := globalData.store
	locks := globalData.locks
	log := globalData.log
	globalData.RUnlock()

	if nil == store {
		return nil, fault.NotInitialised
	}
	return applyBatch(log, store, locks, batch)
}

func applyBatch(log *logger.L, store storage.EntityStore, locks *lockTable, batch *event.Batch) (*BatchResult, error) {

	for i := range batch.Events {
		err := batch.Events[i].Validate()
		if nil != err {
			log.Errorf("batch: %s  event: %d  invalid", batch.Id, i)
			return nil, err
		}
	}

	// partition by address keeping each address's event order; a
	// claim lands in the partition of every address it touches
	partitions := make(map[address.Hash][]*event.Event)
	order := make([]address.Hash, 0, len(batch.Events))
	for i := range batch.Events {
		e := &batch.Events[i]
		for _, addressHash := range e.Touches() {
			if _, ok := partitions[addressHash]; !ok {
				order = append(order, addressHash)
			}
			partitions[addressHash] = append(partitions[addressHash], e)
		}
	}

	result := &BatchResult{
		Batch: batch.Id,
	}
	if 0 == len(order) {
		return result, nil
	}

	// exclude overlapping batches until the updates are durable
	held := locks.acquire(order)
	defer held.release()

	resolved, err := resolve(store, order)
	if nil != err {
		log.Errorf("batch: %s  resolve failed: %s", batch.Id, err)
		batchesFailed.Increment()
		return nil, err
	}

	updated := make([]*balance.Entity, 0, len(order))
	for _, addressHash := range order {

		current := resolved[addressHash]
		var entity *balance.Entity
		var seen map[txid.TxId]struct{}
		if nil == current {
			entity = balance.NewEntity(addressHash)
		} else {
			entity = current.Clone()
			seen = current.AppliedTxIds()
		}

		err := foldAddress(entity, seen, partitions[addressHash], result)
		if nil != err {
			log.Warnf("batch: %s  address: %s  fold failed: %s", batch.Id, addressHash, err)
			result.Failed = append(result.Failed, AddressFailure{
				Address: addressHash,
				Reason:  err,
			})
			continue
		}
		updated = append(updated, entity)
		result.Updated = append(result.Updated, addressHash)
	}

	err = store.PutBatch(updated)
	if nil != err {
		log.Errorf("batch: %s  persist failed: %s", batch.Id, err)
		batchesFailed.Increment()
		return nil, err
	}

	batchesApplied.Increment()
	eventsApplied.Add(uint64(len(batch.Events)))
	addressesUpdated.Add(uint64(len(result.Updated)))
	addressesFailed.Add(uint64(len(result.Failed)))
	duplicateTxIds.Add(uint64(result.DuplicateTxIds))
	duplicateClaims.Add(uint64(result.DuplicateClaims))

	return result, nil
}

// foldAddress - run one address's ordered events through the
// balance reductions
//
// seen carries the transaction ids recorded before this batch; an
// output or input of such a transaction is a redelivery and must
// not touch the balances again, while several events of one new
// transaction inside the batch all apply and merge into a single
// history entry
//
// the first failure abandons the fold, the caller discards the
// half folded entity
func foldAddress(entity *balance.Entity, seen map[txid.TxId]struct{}, events []*event.Event, result *BatchResult) error {
	for _, e := range events {
		switch e.Kind {

		case event.Vout:
			if _, replayed := seen[e.TxId]; replayed {
				continue
			}
			if entity.HasApplied(e.TxId) {
				result.DuplicateTxIds += 1
			}
			entity.ApplyCredit(e.Asset, e.Value, e.TxId)

		case event.Vin:
			if _, replayed := seen[e.TxId]; replayed {
				continue
			}
			merged := entity.HasApplied(e.TxId)
			err := entity.ApplyDebit(e.Asset, e.Value, e.TxId)
			if nil != err {
				return err
			}
			if merged {
				result.DuplicateTxIds += 1
			}

		case event.Claim:
			if !entity.ApplyClaim(e.TxIds, e.Asset, e.Amount) {
				result.DuplicateClaims += 1
			}

		default:
			return fault.InvalidEvent
		}
	}
	return nil
}
