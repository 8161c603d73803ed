// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - the durable home of ledger entities
//
// entities are resolved and persisted through the EntityStore
// contract only: one batched fetch by address set and one batched
// upsert, the reduction engine never issues per row lookups
//
// two backends implement the contract, an embedded leveldb keyed
// by prefixed address hash and a postgres table addressed with a
// single array valued query per batch; the backend is selected by
// configuration at initialisation
package storage
