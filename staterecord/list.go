// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package staterecord

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/util"
)

// DigestList - an unordered set of ids kept in insertion order
type DigestList []merkle.Digest

// Contains - membership test
func (l DigestList) Contains(d merkle.Digest) bool {
	for _, item := range l {
		if item == d {
			return true
		}
	}
	return false
}

// Union - append the ids not already present
func (l DigestList) Union(ids ...merkle.Digest) DigestList {
	result := append(DigestList{}, l...)
	for _, d := range ids {
		if !result.Contains(d) {
			result = append(result, d)
		}
	}
	return result
}

// Pack - varint count ++ digests
func (l DigestList) Pack() []byte {
	buffer := make([]byte, 0, util.Varint64MaximumBytes+len(l)*merkle.DigestLength)
	buffer = util.AppendVarint64(buffer, uint64(len(l)))
	for _, d := range l {
		buffer = append(buffer, d[:]...)
	}
	return buffer
}

// DigestListFromBytes - decode a packed digest list
func DigestListFromBytes(buffer []byte) (DigestList, error) {
	count, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, fault.ErrTruncatedRecord
	}
	buffer = buffer[n:]

	if count > uint64(len(buffer)/merkle.DigestLength) {
		return nil, fault.ErrTruncatedRecord
	}
	if uint64(len(buffer)) != count*merkle.DigestLength {
		return nil, fault.ErrTrailingData
	}

	l := make(DigestList, count)
	for i := range l {
		copy(l[i][:], buffer[i*merkle.DigestLength:])
	}
	return l, nil
}

// AliasList - aliases bound to one address, in binding order
type AliasList []account.Alias

// Contains - membership test
func (l AliasList) Contains(alias account.Alias) bool {
	for _, item := range l {
		if item == alias {
			return true
		}
	}
	return false
}

// Union - append the aliases not already present
func (l AliasList) Union(aliases ...account.Alias) AliasList {
	result := append(AliasList{}, l...)
	for _, a := range aliases {
		if !result.Contains(a) {
			result = append(result, a)
		}
	}
	return result
}

// Pack - varint count ++ [varint length ++ alias]
func (l AliasList) Pack() []byte {
	buffer := util.ToVarint64(uint64(len(l)))
	for _, a := range l {
		buffer = util.AppendVarint64(buffer, uint64(len(a)))
		buffer = append(buffer, a...)
	}
	return buffer
}

// AliasListFromBytes - decode a packed alias list
func AliasListFromBytes(buffer []byte) (AliasList, error) {
	count, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, fault.ErrTruncatedRecord
	}
	buffer = buffer[n:]

	// every entry takes at least one byte
	if count > uint64(len(buffer)) {
		return nil, fault.ErrTruncatedRecord
	}

	l := make(AliasList, 0, count)
	for i := uint64(0); i < count; i += 1 {
		length, n := util.FromVarint64(buffer)
		if 0 == n || uint64(len(buffer)-n) < length {
			return nil, fault.ErrTruncatedRecord
		}
		alias, err := account.NewAlias(string(buffer[n : n+int(length)]))
		if nil != err {
			return nil, fault.ErrCorruptAlias
		}
		l = append(l, alias)
		buffer = buffer[n+int(length):]
	}
	if 0 != len(buffer) {
		return nil, fault.ErrTrailingData
	}
	return l, nil
}
