// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ingest

import (
	zmq "github.com/pebbe/zmq4"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/famecoin/neo-scan/ledger"
)

const zmqSignal = "inproc://ingest-zmq-signal"

// zmqSource - subscriber on a node's batch publisher
//
// batches are queued to the engine's worker pool; the feed carries
// no redelivery contract so a dropped batch is only recovered by
// replaying the node's feed
type zmqSource struct {
	log      *logger.L
	endpoint string
	push     *zmq.Socket
	pull     *zmq.Socket
	limiter  *rate.Limiter
}

// Run - receive published batches until shutdown
func (z *zmqSource) Run(args interface{}, shutdown <-chan struct{}) {
	log := z.log
	log.Info("starting…")

	go func() {
		sub, err := zmq.NewSocket(zmq.SUB)
		if nil != err {
			log.Errorf("subscriber socket error: %s", err)
			return
		}
		sub.Connect(z.endpoint)
		sub.SetSubscribe("")

		poller := zmq.NewPoller()
		poller.Add(sub, zmq.POLLIN)
		poller.Add(z.pull, zmq.POLLIN)

	loop:
		for {
			polled, _ := poller.Poll(-1)

			for _, p := range polled {
				switch s := p.Socket; s {
				case z.pull:
					s.RecvMessageBytes(0)
					break loop

				default:
					message, err := s.RecvMessageBytes(0)
					if nil != err {
						log.Errorf("receive error: %s", err)
						continue loop
					}
					z.process(message)
				}
			}
		}

		z.pull.Close()
		sub.Close()
		log.Info("stopped")
	}()

	<-shutdown

	log.Info("shutting down…")
	z.push.SendMessage("stop")
	z.push.Close()
	log.Flush()
}

// decode one published message and queue it for reduction
//
// the payload is the last frame, earlier frames are the publisher's
// topic envelope
func (z *zmqSource) process(message [][]byte) {
	if 0 == len(message) {
		return
	}

	batch, err := intake(message[len(message)-1])
	if nil != err {
		z.log.Errorf("decode error: %s", err)
		return
	}

	err = limit(z.limiter)
	if nil != err {
		z.log.Warnf("batch: %s  %s", batch.Id, err)
		return
	}

	err = ledger.Submit(batch)
	if nil != err {
		z.log.Errorf("batch: %s  submit error: %s", batch.Id, err)
		return
	}
	z.log.Debugf("batch: %s  queued", batch.Id)
}
