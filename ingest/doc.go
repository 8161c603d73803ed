// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ingest - the event stream intake
//
// a source receives wire batches, decodes them into typed events,
// applies the intake rate limit and hands them to the reduction
// engine
//
// the kafka source is the at-least-once path: a message's offset is
// committed only after the engine has durably persisted the batch,
// so an uncommitted batch is redelivered by the broker and absorbed
// by the engine's idempotent reductions
//
// the zmq source subscribes to a node's publisher directly; it has
// no offset semantics and is intended for private nets where the
// feed can simply be replayed from the node
package ingest
