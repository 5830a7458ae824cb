// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package state - merge per block diffs into the stored ledger and
// answer queries over it
//
// all writes of one diff go through a single storage transaction, so
// either the whole diff and the new height are visible or nothing is.
// Reads made while building the batch see only committed data, which
// is why each key is written at most once per diff.
package state

import (
	"sync"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/logger"
)

type globalDataType struct {
	sync.Mutex
	log         *logger.L
	initialised bool
}

var globalData globalDataType

// Initialise - prepare the diff engine
//
// storage must already be initialised
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("state")
	if nil == globalData.log {
		return fault.ErrInvalidLoggerChannel
	}
	globalData.log.Info("starting…")

	globalData.initialised = true
	return nil
}

// Finalise - stop the diff engine
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.initialised = false
	globalData.log.Info("finished")
	return nil
}
