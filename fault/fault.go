// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type DecodeError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAddressChecksumMismatch = InvalidError("address checksum mismatch")
	ErrAddressVersion          = InvalidError("address version is not supported")
	ErrAlreadyInitialised      = ExistsError("already initialised")
	ErrAliasCharacter          = InvalidError("alias contains an invalid character")
	ErrAliasLength             = InvalidError("alias length is invalid")
	ErrCannotDecodeAddress     = InvalidError("cannot decode address")
	ErrCannotDecodeDigest      = InvalidError("cannot decode digest")
	ErrCorruptAddress          = DecodeError("stored address is corrupt")
	ErrCorruptAlias            = DecodeError("stored alias is corrupt")
	ErrCorruptSnapshotLink     = DecodeError("snapshot link does not point backwards")
	ErrDiffFileName            = InvalidError("diff file name is not a height")
	ErrInvalidAddressLength    = InvalidError("invalid address length")
	ErrInvalidConfiguration    = InvalidError("configuration file must return a table")
	ErrInvalidCount            = InvalidError("invalid count")
	ErrInvalidCursor           = InvalidError("invalid cursor")
	ErrInvalidDigestLength     = InvalidError("invalid digest length")
	ErrInvalidFlag             = DecodeError("invalid flag byte")
	ErrInvalidHeight           = InvalidError("invalid height")
	ErrInvalidLoggerChannel    = InvalidError("invalid logger channel")
	ErrInvalidRecordLength     = DecodeError("invalid record length")
	ErrInvalidStructPointer    = InvalidError("invalid struct pointer")
	ErrNotInitialised          = NotFoundError("not initialised")
	ErrReadOnlyDatabase        = InvalidError("database is read only")
	ErrSchemaVersionMismatch   = ProcessError("database schema version mismatch")
	ErrTrailingData            = DecodeError("record has trailing data")
	ErrTransactionInUse        = ExistsError("database transaction already in use")
	ErrTransactionNotStarted   = ProcessError("database transaction not started")
	ErrTruncatedRecord         = DecodeError("record is truncated")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e DecodeError) Error() string   { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrDecode(e error) bool   { _, ok := e.(DecodeError); return ok }
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
