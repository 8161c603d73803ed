// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/famecoin/neo-scan/util"
)

var varint64Tests = []struct {
	value   uint64
	encoded []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x01}},
	{255, []byte{0xff, 0x01}},
	{256, []byte{0x80, 0x02}},
	{16383, []byte{0xff, 0x7f}},
	{16384, []byte{0x80, 0x80, 0x01}},
	{0x7fffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
	{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
}

var varint64TruncatedTests = [][]byte{
	{},
	{0x80},
	{0xff},
	{0x80, 0x80},
	{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
}

func TestToVarint64(t *testing.T) {
	for i, item := range varint64Tests {
		if result := util.ToVarint64(item.value); !bytes.Equal(result, item.encoded) {
			t.Errorf("%d: ToVarint64(%x) -> %x  expected: %x", i, item.value, result, item.encoded)
		}
	}
}

func TestFromVarint64(t *testing.T) {
	for i, item := range varint64Tests {
		result, count := util.FromVarint64(item.encoded)
		if result != item.value {
			t.Errorf("%d: FromVarint64(%x) -> %d  expected: %d", i, item.encoded, result, item.value)
		}
		if count != len(item.encoded) {
			t.Errorf("%d: FromVarint64(%x) used %d bytes  expected: %d", i, item.encoded, count, len(item.encoded))
		}

		// appended data must not change the result
		b := append(append([]byte{}, item.encoded...), 0xff, 0x97, 0x23)
		result, count = util.FromVarint64(b)
		if result != item.value {
			t.Errorf("%d: FromVarint64(%x) -> %d  expected: %d", i, b, result, item.value)
		}
		if count != len(item.encoded) {
			t.Errorf("%d: FromVarint64(%x) used %d bytes  expected: %d", i, b, count, len(item.encoded))
		}
	}
}

func TestFromVarint64Truncated(t *testing.T) {
	for i, item := range varint64TruncatedTests {
		result, count := util.FromVarint64(item)
		if 0 != result || 0 != count {
			t.Errorf("%d: FromVarint64(%x) -> %d, %d  expected: 0, 0", i, item, result, count)
		}
	}
}

func TestBase58RoundTrip(t *testing.T) {
	items := [][]byte{
		{0x00},
		{0x17, 0x01, 0x02, 0x03},
		{0xff, 0xfe, 0xfd, 0xfc, 0xfb},
	}
	for i, item := range items {
		s := util.ToBase58(item)
		back := util.FromBase58(s)
		if !bytes.Equal(item, back) {
			t.Errorf("%d: FromBase58(ToBase58(%x)) -> %x", i, item, back)
		}
	}

	if b := util.FromBase58("0OIl+"); 0 != len(b) {
		t.Errorf("FromBase58 accepted invalid characters: %x", b)
	}
}
