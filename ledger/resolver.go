// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/famecoin/neo-scan/address"
	"github.com/famecoin/neo-scan/balance"
	"github.com/famecoin/neo-scan/storage"
)

// resolve - fetch the current entity of every address in one call
//
// the returned table carries an entry for every requested address,
// nil marks an address the store has never seen; the store is asked
// exactly once, a failure resolves nothing
func resolve(store storage.EntityStore, addresses []address.Hash) (map[address.Hash]*balance.Entity, error) {
	found, err := store.FetchSet(addresses)
	if nil != err {
		return nil, err
	}

	resolved := make(map[address.Hash]*balance.Entity, len(addresses))
	for _, addressHash := range addresses {
		resolved[addressHash] = found[addressHash] // nil when absent
	}
	return resolved, nil
}
