// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package staterecord

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/fault"
)

const (
	int64Length   = 8
	balanceLength = 3 * int64Length
)

// Balance - native currency balance of an address
//
// as a stored record it is the running total, as a diff entry it is
// the delta to add
type Balance struct {
	Balance  int64 `json:"balance"`
	LeaseIn  int64 `json:"leaseIn"`
	LeaseOut int64 `json:"leaseOut"`
}

// Combine - component-wise sum
func (b Balance) Combine(d Balance) Balance {
	return Balance{
		Balance:  b.Balance + d.Balance,
		LeaseIn:  b.LeaseIn + d.LeaseIn,
		LeaseOut: b.LeaseOut + d.LeaseOut,
	}
}

// IsEmpty - all components zero
func (b Balance) IsEmpty() bool {
	return 0 == b.Balance && 0 == b.LeaseIn && 0 == b.LeaseOut
}

// Effective - balance usable for generating blocks
func (b Balance) Effective() int64 {
	return b.Balance + b.LeaseIn - b.LeaseOut
}

// Pack - balance ++ lease in ++ lease out
func (b Balance) Pack() []byte {
	buffer := make([]byte, balanceLength)
	binary.BigEndian.PutUint64(buffer[0:], uint64(b.Balance))
	binary.BigEndian.PutUint64(buffer[8:], uint64(b.LeaseIn))
	binary.BigEndian.PutUint64(buffer[16:], uint64(b.LeaseOut))
	return buffer
}

// BalanceFromBytes - decode a packed balance
func BalanceFromBytes(buffer []byte) (Balance, error) {
	if balanceLength != len(buffer) {
		return Balance{}, fault.ErrInvalidRecordLength
	}
	return Balance{
		Balance:  int64(binary.BigEndian.Uint64(buffer[0:])),
		LeaseIn:  int64(binary.BigEndian.Uint64(buffer[8:])),
		LeaseOut: int64(binary.BigEndian.Uint64(buffer[16:])),
	}, nil
}
