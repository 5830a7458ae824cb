// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package staterecord

import (
	"bytes"
	"encoding/binary"
	"encoding/json"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

// AssetInfo - issuance state of an asset
type AssetInfo struct {
	IsReissuable bool   `json:"reissuable"`
	Volume       int64  `json:"volume"`
	Script       []byte `json:"script,omitempty"`
}

// EmptyAssetInfo - the identity: reissuable, no volume, no script
func EmptyAssetInfo() AssetInfo {
	return AssetInfo{
		IsReissuable: true,
	}
}

// Combine - volumes add, reissuable once cleared stays cleared, a
// script on the right replaces one on the left
func (a AssetInfo) Combine(b AssetInfo) AssetInfo {
	script := a.Script
	if 0 != len(b.Script) {
		script = b.Script
	}
	return AssetInfo{
		IsReissuable: a.IsReissuable && b.IsReissuable,
		Volume:       a.Volume + b.Volume,
		Script:       script,
	}
}

// UnmarshalJSON - fields missing from the JSON keep their identity value
func (a *AssetInfo) UnmarshalJSON(s []byte) error {
	type plain AssetInfo
	p := plain(EmptyAssetInfo())
	err := json.Unmarshal(s, &p)
	if nil != err {
		return err
	}
	*a = AssetInfo(p)
	return nil
}

// IsEmpty - true for the identity
func (a AssetInfo) IsEmpty() bool {
	return a.IsReissuable && 0 == a.Volume && 0 == len(a.Script)
}

// Equal - compare two records
func (a AssetInfo) Equal(b AssetInfo) bool {
	return a.IsReissuable == b.IsReissuable && a.Volume == b.Volume && bytes.Equal(a.Script, b.Script)
}

// Pack - reissuable(1) ++ volume(8) ++ varint script length ++ script
func (a AssetInfo) Pack() []byte {
	buffer := make([]byte, 1+int64Length, 1+int64Length+util.Varint64MaximumBytes+len(a.Script))
	if a.IsReissuable {
		buffer[0] = 1
	}
	binary.BigEndian.PutUint64(buffer[1:], uint64(a.Volume))
	buffer = util.AppendVarint64(buffer, uint64(len(a.Script)))
	return append(buffer, a.Script...)
}

// AssetInfoFromBytes - decode a packed asset info
func AssetInfoFromBytes(buffer []byte) (AssetInfo, error) {
	if len(buffer) < 1+int64Length+1 {
		return AssetInfo{}, fault.ErrTruncatedRecord
	}

	a := AssetInfo{}
	switch buffer[0] {
	case 0:
		a.IsReissuable = false
	case 1:
		a.IsReissuable = true
	default:
		return AssetInfo{}, fault.ErrInvalidFlag
	}
	a.Volume = int64(binary.BigEndian.Uint64(buffer[1:]))

	n := 1 + int64Length
	scriptLength, count := util.FromVarint64(buffer[n:])
	if 0 == count {
		return AssetInfo{}, fault.ErrTruncatedRecord
	}
	n += count
	if uint64(len(buffer)-n) < scriptLength {
		return AssetInfo{}, fault.ErrTruncatedRecord
	}
	if uint64(len(buffer)-n) > scriptLength {
		return AssetInfo{}, fault.ErrTrailingData
	}
	if scriptLength > 0 {
		a.Script = make([]byte, scriptLength)
		copy(a.Script, buffer[n:])
	}
	return a, nil
}
