// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package staterecord

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/fault"
)

const orderFillLength = 2 * int64Length

// OrderFillInfo - amount of an order filled so far and fee paid
type OrderFillInfo struct {
	Volume int64 `json:"volume"`
	Fee    int64 `json:"fee"`
}

// Combine - sum of both fields
func (o OrderFillInfo) Combine(d OrderFillInfo) OrderFillInfo {
	return OrderFillInfo{
		Volume: o.Volume + d.Volume,
		Fee:    o.Fee + d.Fee,
	}
}

// IsEmpty - the zero identity
func (o OrderFillInfo) IsEmpty() bool {
	return 0 == o.Volume && 0 == o.Fee
}

// Pack - volume ++ fee
func (o OrderFillInfo) Pack() []byte {
	buffer := make([]byte, orderFillLength)
	binary.BigEndian.PutUint64(buffer[0:], uint64(o.Volume))
	binary.BigEndian.PutUint64(buffer[8:], uint64(o.Fee))
	return buffer
}

// OrderFillInfoFromBytes - decode a packed order fill
func OrderFillInfoFromBytes(buffer []byte) (OrderFillInfo, error) {
	if orderFillLength != len(buffer) {
		return OrderFillInfo{}, fault.ErrInvalidRecordLength
	}
	return OrderFillInfo{
		Volume: int64(binary.BigEndian.Uint64(buffer[0:])),
		Fee:    int64(binary.BigEndian.Uint64(buffer[8:])),
	}, nil
}
