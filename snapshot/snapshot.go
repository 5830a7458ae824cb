// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package snapshot - per address chain of historical balances
//
// each snapshot is stored under (address, height) and links to the
// previous snapshot of the same address, the LastSnapshot pool holds
// the head of the chain.  A zero previous height terminates the chain
// since no diff is ever applied at height zero.
package snapshot

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/statekey"
	"github.com/bitmark-inc/ledgerd/staterecord"
	"github.com/bitmark-inc/ledgerd/storage"
)

// Update - append a snapshot of the balance at height to the chain of
// an address and move the head pointer
//
// the head is read from committed state, so only one update per
// address is allowed in a transaction
func Update(trx storage.Transaction, address account.Address, height uint64, balance staterecord.Balance) error {
	if 0 == height {
		return fault.ErrInvalidHeight
	}

	key := statekey.Address(address)
	previous, found, err := trx.GetN(storage.Pool.LastSnapshot, key)
	if nil != err {
		return err
	}

	if found && previous >= height {
		// rewriting the head keeps its link
		if previous > height {
			return fault.ErrInvalidHeight
		}
		head, err := get(address, previous)
		if nil != err {
			return err
		}
		previous = head.PreviousHeight
	}

	s := staterecord.Snapshot{
		PreviousHeight:   previous,
		Balance:          balance.Balance,
		EffectiveBalance: balance.Effective(),
	}
	trx.Put(storage.Pool.Snapshots, statekey.AddressIndex(address, height), s.Pack())
	trx.PutN(storage.Pool.LastSnapshot, key, height)
	return nil
}

// Head - height of the most recent snapshot of an address
func Head(address account.Address) (uint64, bool, error) {
	return storage.Pool.LastSnapshot.GetN(statekey.Address(address))
}

// AtOrBefore - the latest snapshot of an address taken at or before height
//
// returns the snapshot, the height it was taken at, and false if the
// address had no snapshot at or before height
func AtOrBefore(address account.Address, height uint64) (staterecord.Snapshot, uint64, bool, error) {
	result := staterecord.Snapshot{}
	resultHeight := uint64(0)
	found := false

	err := Walk(address, func(h uint64, s staterecord.Snapshot) bool {
		if h > height {
			return true
		}
		result = s
		resultHeight = h
		found = true
		return false
	})
	if nil != err {
		return staterecord.Snapshot{}, 0, false, err
	}
	return result, resultHeight, found, nil
}

// EffectiveBalance - the minimum effective balance of an address over
// the window from atHeight-confirmations up to atHeight
//
// the snapshot in force at the start of the window counts, an address
// without one had nothing at that point
func EffectiveBalance(address account.Address, atHeight uint64, confirmations uint64) (int64, error) {
	from := uint64(0)
	if atHeight > confirmations {
		from = atHeight - confirmations
	}

	minimum := int64(0)
	seen := false
	covered := false

	err := Walk(address, func(h uint64, s staterecord.Snapshot) bool {
		if h > atHeight {
			return true
		}
		if !seen || s.EffectiveBalance < minimum {
			minimum = s.EffectiveBalance
			seen = true
		}
		if h <= from {
			covered = true
			return false
		}
		return true
	})
	if nil != err {
		return 0, err
	}

	if !covered && minimum > 0 {
		minimum = 0
	}
	return minimum, nil
}

// Walk - visit the snapshots of an address from the most recent
// backwards until f returns false
func Walk(address account.Address, f func(height uint64, s staterecord.Snapshot) bool) error {
	height, found, err := Head(address)
	if nil != err || !found {
		return err
	}

	for 0 != height {
		s, err := get(address, height)
		if nil != err {
			return err
		}
		if !f(height, s) {
			return nil
		}
		if s.PreviousHeight >= height {
			return fault.ErrCorruptSnapshotLink
		}
		height = s.PreviousHeight
	}
	return nil
}

// fetch one link of the chain, it must exist
func get(address account.Address, height uint64) (staterecord.Snapshot, error) {
	buffer, err := storage.Pool.Snapshots.Get(statekey.AddressIndex(address, height))
	if nil != err {
		return staterecord.Snapshot{}, err
	}
	if nil == buffer {
		return staterecord.Snapshot{}, fault.ErrCorruptSnapshotLink
	}
	return staterecord.SnapshotFromBytes(buffer)
}
