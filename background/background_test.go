// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"testing"
	"time"

	"github.com/famecoin/neo-scan/background"
)

type bg struct {
	count int
	final int
}

const (
	initialCount1 = 246
	finalCount1   = 987654321
	initialCount2 = 777
	finalCount2   = 897645312
)

func TestBackground(t *testing.T) {

	proc1 := &bg{count: initialCount1, final: finalCount1}
	proc2 := &bg{count: initialCount2, final: finalCount2}

	// list of background processes to start
	processes := background.Processes{
		proc1,
		proc2,
	}

	p := background.Start(processes, t)
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	if finalCount1 != proc1.count {
		t.Fatalf("stop failed: final value expected: %d  actual: %d", finalCount1, proc1.count)
	}
	if finalCount2 != proc2.count {
		t.Fatalf("stop failed: final value expected: %d  actual: %d", finalCount2, proc2.count)
	}
}

func (state *bg) Run(args interface{}, shutdown <-chan struct{}) {

	t := args.(*testing.T)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		default:
		}
		state.count += 9
		t.Logf("state: %v", state)
		time.Sleep(time.Millisecond)
	}

	// marker for the stop test
	state.count = state.final
}

func TestStopNil(t *testing.T) {
	var p *background.T
	p.Stop() // must not panic
}
