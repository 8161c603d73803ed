// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background

// Process - each background must implement this interface
//
// Run is called in its own goroutine; it must loop until the
// shutdown channel is closed and then return
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// T - handle for controlling a started set
type T struct {
	shutdown []chan struct{}
	finished []chan struct{}
}

// Start - start up a set of background processes
// all with the same args value
func Start(processes Processes, args interface{}) *T {

	register := &T{
		shutdown: make([]chan struct{}, len(processes)),
		finished: make([]chan struct{}, len(processes)),
	}

	// start each background
	for i, p := range processes {
		shutdown := make(chan struct{})
		finished := make(chan struct{})
		register.shutdown[i] = shutdown
		register.finished[i] = finished
		go func(p Process, shutdown <-chan struct{}, finished chan<- struct{}) {
			p.Run(args, shutdown)
			close(finished)
		}(p, shutdown, finished)
	}
	return register
}

// Stop - stop the set of background processes and wait until all
// of their Run methods have returned
func (t *T) Stop() {

	if nil == t {
		return
	}

	// shutdown all background tasks
	for _, shutdown := range t.shutdown {
		close(shutdown)
	}

	// wait for finished
	for _, finished := range t.finished {
		<-finished
	}
}
