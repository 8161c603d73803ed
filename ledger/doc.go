// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the batch reduction engine
//
// a batch of stream events is turned into updated ledger entities
// in four steps: partition the events by the address they touch
// keeping per address order, resolve every distinct address against
// the store in one batched fetch, fold each address's events through
// the balance reductions, then hand all successful entities back to
// the store in one batched upsert
//
// a failed fold only discards its own address, the other addresses
// of the batch still persist; a store failure fails the whole batch
// so the event source can redeliver it
//
// batches run concurrently on a worker pool, a per address lock
// table keeps batches touching a common address strictly serialised
// because the reduction is a read-modify-write against the store
package ledger
