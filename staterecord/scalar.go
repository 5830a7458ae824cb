// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package staterecord

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
)

// PackInt64 - big endian two's complement amount
func PackInt64(n int64) []byte {
	buffer := make([]byte, int64Length)
	binary.BigEndian.PutUint64(buffer, uint64(n))
	return buffer
}

// Int64FromBytes - decode a packed amount
func Int64FromBytes(buffer []byte) (int64, error) {
	if int64Length != len(buffer) {
		return 0, fault.ErrInvalidRecordLength
	}
	return int64(binary.BigEndian.Uint64(buffer)), nil
}

// PackFlag - single byte boolean
func PackFlag(flag bool) []byte {
	if flag {
		return []byte{1}
	}
	return []byte{0}
}

// FlagFromBytes - decode a single byte boolean
func FlagFromBytes(buffer []byte) (bool, error) {
	if 1 != len(buffer) {
		return false, fault.ErrInvalidRecordLength
	}
	switch buffer[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fault.ErrInvalidFlag
	}
}

// DigestFromRecord - decode a stored id
func DigestFromRecord(buffer []byte) (merkle.Digest, error) {
	d := merkle.Digest{}
	if merkle.DigestLength != len(buffer) {
		return d, fault.ErrInvalidRecordLength
	}
	copy(d[:], buffer)
	return d, nil
}

// AddressFromRecord - decode and verify a stored address
func AddressFromRecord(buffer []byte) (account.Address, error) {
	if account.AddressLength != len(buffer) {
		return account.Address{}, fault.ErrInvalidRecordLength
	}
	address, err := account.AddressFromBytes(buffer)
	if nil != err {
		return address, fault.ErrCorruptAddress
	}
	return address, nil
}

// Amount - a per asset balance
type Amount int64

// Combine - addition
func (a Amount) Combine(b Amount) Amount {
	return a + b
}

// IsEmpty - true for zero
func (a Amount) IsEmpty() bool {
	return 0 == a
}

// Pack - big endian two's complement
func (a Amount) Pack() []byte {
	return PackInt64(int64(a))
}

// AmountFromBytes - decode a packed amount
func AmountFromBytes(buffer []byte) (Amount, error) {
	n, err := Int64FromBytes(buffer)
	return Amount(n), err
}
