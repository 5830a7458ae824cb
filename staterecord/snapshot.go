// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package staterecord

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/fault"
)

const snapshotLength = 3 * int64Length

// Snapshot - balance of an address at one height, linked to the
// snapshot before it (zero for the first)
type Snapshot struct {
	PreviousHeight   uint64 `json:"previousHeight"`
	Balance          int64  `json:"balance"`
	EffectiveBalance int64  `json:"effectiveBalance"`
}

// Pack - previous height ++ balance ++ effective balance
func (s Snapshot) Pack() []byte {
	buffer := make([]byte, snapshotLength)
	binary.BigEndian.PutUint64(buffer[0:], s.PreviousHeight)
	binary.BigEndian.PutUint64(buffer[8:], uint64(s.Balance))
	binary.BigEndian.PutUint64(buffer[16:], uint64(s.EffectiveBalance))
	return buffer
}

// SnapshotFromBytes - decode a packed snapshot
func SnapshotFromBytes(buffer []byte) (Snapshot, error) {
	if snapshotLength != len(buffer) {
		return Snapshot{}, fault.ErrInvalidRecordLength
	}
	return Snapshot{
		PreviousHeight:   binary.BigEndian.Uint64(buffer[0:]),
		Balance:          int64(binary.BigEndian.Uint64(buffer[8:])),
		EffectiveBalance: int64(binary.BigEndian.Uint64(buffer[16:])),
	}, nil
}
