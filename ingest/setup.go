// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ingest

import (
	"sync"

	kafka "github.com/segmentio/kafka-go"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/famecoin/neo-scan/background"
	"github.com/famecoin/neo-scan/fault"
	"github.com/famecoin/neo-scan/zmqutil"
)

// backend names accepted by the configuration
const (
	BackendKafka = "kafka"
	BackendZMQ   = "zmq"
)

// Configuration - intake settings from the configuration file
type Configuration struct {
	Backend          string   `gluamapper:"backend" json:"backend"`
	Brokers          []string `gluamapper:"brokers" json:"brokers"`
	Topic            string   `gluamapper:"topic" json:"topic"`
	Group            string   `gluamapper:"group" json:"group"`
	Subscribe        string   `gluamapper:"subscribe" json:"subscribe"`
	BatchesPerSecond float64  `gluamapper:"batches_per_second" json:"batches_per_second"`
	BatchBurst       int      `gluamapper:"batch_burst" json:"batch_burst"`
}

const (
	defaultBatchesPerSecond = 50
	defaultBatchBurst       = 10
)

// globals for background processes
var globalData struct {
	sync.RWMutex
	log         *logger.L
	background  *background.T
	initialised bool
}

// Initialise - start the configured stream source
func Initialise(configuration Configuration) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("ingest")
	globalData.log.Info("starting…")

	batchesPerSecond := configuration.BatchesPerSecond
	if batchesPerSecond <= 0 {
		batchesPerSecond = defaultBatchesPerSecond
	}
	batchBurst := configuration.BatchBurst
	if batchBurst <= 0 {
		batchBurst = defaultBatchBurst
	}
	limiter := rate.NewLimiter(rate.Limit(batchesPerSecond), batchBurst)

	var source background.Process

	switch configuration.Backend {

	case BackendKafka:
		if 0 == len(configuration.Brokers) || "" == configuration.Topic {
			return fault.MissingParameters
		}
		source = &kafkaSource{
			log: logger.New("ingest-kafka"),
			reader: kafka.NewReader(kafka.ReaderConfig{
				Brokers: configuration.Brokers,
				GroupID: configuration.Group,
				Topic:   configuration.Topic,
			}),
			limiter: limiter,
		}

	case BackendZMQ:
		if "" == configuration.Subscribe {
			return fault.MissingParameters
		}
		push, pull, err := zmqutil.NewSignalPair(zmqSignal)
		if nil != err {
			return err
		}
		source = &zmqSource{
			log:      logger.New("ingest-zmq"),
			endpoint: configuration.Subscribe,
			push:     push,
			pull:     pull,
			limiter:  limiter,
		}

	default:
		globalData.log.Errorf("unsupported backend: %q", configuration.Backend)
		return fault.InvalidStreamBackend
	}

	globalData.initialised = true

	globalData.log.Info("start background…")
	globalData.background = background.Start(background.Processes{source}, nil)

	return nil
}

// Finalise - stop the stream source
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.background.Stop()

	globalData.background = nil
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
