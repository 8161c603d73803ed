// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	ExistsError   GenericError
	InvalidError  GenericError
	LengthError   GenericError
	NotFoundError GenericError
	ProcessError  GenericError
	RecordError   GenericError
)

// common errors - keep in alphabetic order
var (
	AlreadyInitialised     = ExistsError("already initialised")
	CannotDecodeAddress    = InvalidError("cannot decode address")
	ChecksumMismatch       = InvalidError("checksum mismatch")
	InvalidChain           = InvalidError("invalid chain")
	InvalidCount           = InvalidError("invalid count")
	InvalidEvent           = InvalidError("invalid event")
	InvalidLoggerChannel   = InvalidError("invalid logger channel")
	InvalidStorageBackend  = InvalidError("invalid storage backend")
	InvalidStreamBackend   = InvalidError("invalid stream backend")
	MissingAsset           = ProcessError("missing asset for debit")
	MissingParameters      = InvalidError("missing parameters")
	NotAddressHash         = RecordError("not address hash")
	NotAssetId             = RecordError("not asset id")
	NotInitialised         = ProcessError("not initialised")
	NotLedgerEntityPack    = RecordError("not ledger entity pack")
	NotTransactionId       = RecordError("not transaction id")
	QueueOverflow          = ProcessError("batch queue overflow")
	RateLimiting           = ProcessError("rate limiting")
	StoreUnavailable       = ProcessError("store unavailable")
	WrongNetworkForAddress = InvalidError("wrong network for address")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// IsErrExists - determine the class of an error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine the class of an error
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrLength - determine the class of an error
func IsErrLength(e error) bool { _, ok := e.(LengthError); return ok }

// IsErrNotFound - determine the class of an error
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine the class of an error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }

// IsErrRecord - determine the class of an error
func IsErrRecord(e error) bool { _, ok := e.(RecordError); return ok }
