// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"fmt"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/famecoin/neo-scan/background"
	"github.com/famecoin/neo-scan/event"
	"github.com/famecoin/neo-scan/fault"
	"github.com/famecoin/neo-scan/storage"
)

// Configuration - engine settings from the configuration file
type Configuration struct {
	Workers   int `gluamapper:"workers" json:"workers"`
	QueueSize int `gluamapper:"queue_size" json:"queue_size"`
}

const (
	defaultWorkers   = 4
	defaultQueueSize = 64
)

// globals for background processes
var globalData struct {
	sync.RWMutex
	log         *logger.L
	store       storage.EntityStore
	locks       *lockTable
	queue       chan *event.Batch
	background  *background.T
	initialised bool
}

// Initialise - start the engine against a store
func Initialise(configuration Configuration, store storage.EntityStore) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}
	if nil == store {
		return fault.MissingParameters
	}

	globalData.log = logger.New("ledger")
	globalData.log.Info("starting…")

	workers := configuration.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	queueSize := configuration.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	globalData.store = store
	globalData.locks = newLockTable()
	globalData.queue = make(chan *event.Batch, queueSize)

	processes := make(background.Processes, 0, workers)
	for i := 0; i < workers; i += 1 {
		processes = append(processes, &batchWorker{
			log: logger.New(fmt.Sprintf("worker-%d", i)),
		})
	}

	globalData.initialised = true

	// start background processes
	globalData.log.Info("start background…")
	globalData.background = background.Start(processes, (<-chan *event.Batch)(globalData.queue))

	return nil
}

// Finalise - stop all background tasks
//
// the workers read the globals under RLock while draining the queue,
// so the write lock is only taken after they have stopped
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	// stop background
	globalData.background.Stop()

	globalData.Lock()
	globalData.store = nil
	globalData.locks = nil
	globalData.queue = nil
	globalData.background = nil
	globalData.initialised = false
	globalData.Unlock()

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// Submit - queue a batch for asynchronous reduction
//
// a full queue is reported rather than waited on so a slow store
// pushes back to the event source instead of blocking it silently
func Submit(batch *event.Batch) error {
	globalData.RLock()
	queue := globalData.queue
	globalData.RUnlock()

	if nil == queue {
		return fault.NotInitialised
	}

	select {
	case queue <- batch:
		return nil
	default:
		return fault.QueueOverflow
	}
}
