// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package balance_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/famecoin/neo-scan/asset"
	"github.com/famecoin/neo-scan/balance"
)

func TestBalancesEqual(t *testing.T) {
	a := balance.Balances{
		asset.Governing: decimal.RequireFromString("6"),
	}
	b := balance.Balances{
		asset.Governing: decimal.RequireFromString("6.00"),
	}
	if !a.Equal(b) {
		t.Error("6 and 6.00 compare unequal")
	}

	b[asset.Utility] = decimal.NewFromInt(1)
	if a.Equal(b) {
		t.Error("different asset sets compare equal")
	}

	c := balance.Balances{
		asset.Governing: decimal.NewFromInt(7),
	}
	if a.Equal(c) {
		t.Error("different amounts compare equal")
	}
}

func TestBalancesClone(t *testing.T) {
	a := balance.Balances{
		asset.Governing: decimal.NewFromInt(10),
	}
	b := a.Clone()
	b[asset.Governing] = decimal.NewFromInt(99)
	b[asset.Utility] = decimal.NewFromInt(1)

	if !a[asset.Governing].Equal(decimal.NewFromInt(10)) {
		t.Errorf("clone mutation leaked: %s", a[asset.Governing])
	}
	if 1 != len(a) {
		t.Errorf("clone insert leaked: %v", a)
	}
}

// the JSON form is what the inspection tool prints
func TestEntityJSON(t *testing.T) {
	entity := balance.NewEntity(testAddress)
	entity.ApplyCredit(asset.Governing, amount(10), tx1)

	buffer, err := json.Marshal(entity)
	if nil != err {
		t.Fatalf("marshal error: %s", err)
	}
	text := string(buffer)

	for _, expected := range []string{
		`"address":"0102030405060708090a0b0c0d0e0f1011121314"`,
		`"balances"`,
		`"applied_tx_ids"`,
		`"claims"`,
		`"10"`,
	} {
		if !strings.Contains(text, expected) {
			t.Errorf("json missing %s: %s", expected, text)
		}
	}

	var decoded balance.Entity
	err = json.Unmarshal(buffer, &decoded)
	if nil != err {
		t.Fatalf("unmarshal error: %s", err)
	}
	if decoded.Address != entity.Address {
		t.Errorf("address: actual: %#v  expected: %#v", decoded.Address, entity.Address)
	}
	if !decoded.Balances.Equal(entity.Balances) {
		t.Errorf("balances: actual: %v  expected: %v", decoded.Balances, entity.Balances)
	}
}
