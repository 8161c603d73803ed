// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/logger"

	"github.com/famecoin/neo-scan/event"
)

// batchWorker - one queue consumer
//
// workers pick batches off the shared queue independently; per
// address locking inside Apply keeps overlapping batches serialised
// so the pool size only bounds parallelism across disjoint address
// sets
type batchWorker struct {
	log *logger.L
}

// Run - process queued batches until shutdown
func (w *batchWorker) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log
	log.Info("starting…")

	queue := args.(<-chan *event.Batch)

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case batch := <-queue:
			if nil == batch {
				continue loop
			}
			result, err := Apply(batch)
			if nil != err {
				log.Errorf("batch: %s  error: %s", batch.Id, err)
				continue loop
			}
			log.Infof("batch: %s  updated: %d  failed: %d  duplicate txids: %d  duplicate claims: %d",
				batch.Id, len(result.Updated), len(result.Failed), result.DuplicateTxIds, result.DuplicateClaims)
		}
	}

	log.Info("shutting down…")
	log.Flush()
}
