// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// neoscand - the balance ledger daemon
//
// consumes batches of vout, vin and claim events from the
// configured stream and reduces them into durable per address
// ledger entities
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/famecoin/neo-scan/chain"
	"github.com/famecoin/neo-scan/ingest"
	"github.com/famecoin/neo-scan/ledger"
	"github.com/famecoin/neo-scan/storage"
	"github.com/famecoin/neo-scan/version"
)

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version.Version)
	}

	if len(options["help"]) > 0 {
		printHelp(program)
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	if len(arguments) > 0 && "config" == arguments[0] {
		printConfiguration(theConfiguration)
		return
	}

	// turn up logging for interactive runs
	if len(options["verbose"]) > 0 {
		theConfiguration.Logging.Console = true
		theConfiguration.Logging.Levels[logger.DefaultTag] = "info"
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version.Version)
	log.Infof("chain: %s", theConfiguration.Chain)
	log.Infof("test mode: %v", chain.IsTestnet(theConfiguration.Chain))

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// start the entity storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Storage, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// start the reduction engine
	log.Info("initialise ledger")
	err = ledger.Initialise(theConfiguration.Ledger, storage.Store())
	if nil != err {
		log.Criticalf("ledger initialise error: %s", err)
		exitwithstatus.Message("ledger initialise error: %s", err)
	}
	defer ledger.Finalise()

	// start the stream intake last so no batch arrives before the
	// engine can take it
	log.Info("initialise ingest")
	err = ingest.Initialise(theConfiguration.Ingest)
	if nil != err {
		log.Criticalf("ingest initialise error: %s", err)
		exitwithstatus.Message("ingest initialise error: %s", err)
	}
	defer ingest.Finalise()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("DAEMON: «%s» is running.  CTRL-C to stop\n", program)
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	// report the engine totals for the run
	totals := ledger.ReadCounters()
	log.Infof("totals: batches: %d  events: %d  updated: %d  failed: %d  duplicate txids: %d  duplicate claims: %d",
		totals.BatchesApplied, totals.EventsApplied, totals.AddressesUpdated,
		totals.AddressesFailed, totals.DuplicateTxIds, totals.DuplicateClaims)

	log.Info("shutting down…")
	log.Flush()
}

func printHelp(program string) {
	fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [config]\n", program)
	fmt.Printf("       --help             -h            print this message\n")
	fmt.Printf("       --verbose          -v            more log output\n")
	fmt.Printf("       --quiet            -q            less console output\n")
	fmt.Printf("       --version          -V            show version\n")
	fmt.Printf("       --config-file=FILE -c FILE       *configuration file\n")
	fmt.Printf("       config                           show the parsed configuration\n")
}

// dump the parsed configuration for checking a deployment
func printConfiguration(theConfiguration *Configuration) {
	b, err := json.MarshalIndent(theConfiguration, "", "  ")
	if nil != err {
		exitwithstatus.Message("configuration marshal error: %s", err)
	}
	fmt.Printf("%s\n", b)
}
