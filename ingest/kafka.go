// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ingest

import (
	"context"

	kafka "github.com/segmentio/kafka-go"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/famecoin/neo-scan/ledger"
)

// kafkaSource - consumer group reader feeding the engine
//
// one message carries one wire batch; the offset is committed only
// after ledger.Apply returned without error, so a batch lost to a
// store failure stays uncommitted and the broker delivers it again
type kafkaSource struct {
	log     *logger.L
	reader  *kafka.Reader
	limiter *rate.Limiter
}

// Run - consume messages until shutdown
func (k *kafkaSource) Run(args interface{}, shutdown <-chan struct{}) {
	log := k.log
	log.Info("starting…")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-shutdown
		cancel()
	}()

loop:
	for {
		message, err := k.reader.FetchMessage(ctx)
		if context.Canceled == ctx.Err() {
			break loop
		}
		if nil != err {
			log.Errorf("fetch error: %s", err)
			continue loop
		}

		batch, err := intake(message.Value)
		if nil != err {
			// a malformed message can never succeed, skip past it
			log.Errorf("offset: %d  decode error: %s", message.Offset, err)
			k.commit(ctx, message)
			continue loop
		}

		err = limit(k.limiter)
		if nil != err {
			log.Warnf("batch: %s  %s", batch.Id, err)
			continue loop
		}

		result, err := ledger.Apply(batch)
		if nil != err {
			// leave the offset uncommitted for redelivery
			log.Errorf("batch: %s  apply error: %s", batch.Id, err)
			continue loop
		}

		log.Debugf("batch: %s  updated: %d  failed: %d",
			batch.Id, len(result.Updated), len(result.Failed))
		k.commit(ctx, message)
	}

	k.reader.Close()
	log.Info("shutting down…")
	log.Flush()
}

func (k *kafkaSource) commit(ctx context.Context, message kafka.Message) {
	err := k.reader.CommitMessages(ctx, message)
	if nil != err && context.Canceled != ctx.Err() {
		k.log.Errorf("offset: %d  commit error: %s", message.Offset, err)
	}
}
