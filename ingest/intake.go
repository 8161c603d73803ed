// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ingest

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/famecoin/neo-scan/event"
	"github.com/famecoin/neo-scan/fault"
)

// intake - decode a wire batch and stamp it for correlation
//
// a producer may assign its own batch id; one is only generated
// here when the wire form carried none, so a redelivered batch
// keeps its id across deliveries
func intake(buffer []byte) (*event.Batch, error) {
	batch, err := event.DecodeBatch(buffer)
	if nil != err {
		return nil, err
	}
	if uuid.Nil == batch.Id {
		batch.Id = uuid.New()
	}
	return batch, nil
}

// limiting for a single batch
func limit(limiter *rate.Limiter) error {
	r := limiter.Reserve()
	if !r.OK() {
		return fault.RateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}
