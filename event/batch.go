// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package event

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/famecoin/neo-scan/fault"
)

// Batch - a delivery unit of ordered events
//
// the id travels with the batch through logs and results so a
// redelivered batch can be recognised in the record
type Batch struct {
	Id     uuid.UUID `json:"id"`
	Events []Event   `json:"events"`
}

// NewBatch - wrap events into a batch with a fresh id
func NewBatch(events []Event) *Batch {
	return &Batch{
		Id:     uuid.New(),
		Events: events,
	}
}

// DecodeBatch - parse a wire batch and validate its events
func DecodeBatch(buffer []byte) (*Batch, error) {
	batch := &Batch{}
	err := json.Unmarshal(buffer, batch)
	if nil != err {
		return nil, err
	}
	if 0 == len(batch.Events) {
		return nil, fault.InvalidEvent
	}
	for i := range batch.Events {
		err = batch.Events[i].Validate()
		if nil != err {
			return nil, err
		}
	}
	return batch, nil
}

// Encode - the wire form of the batch
func (batch *Batch) Encode() ([]byte, error) {
	return json.Marshal(batch)
}
