// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/ledgerd/fault"
)

// Handle - read access to a single pool
type Handle interface {
	Name() string
	Prefix() byte
	Get([]byte) ([]byte, error)
	GetN([]byte) (uint64, bool, error)
	GetNB([]byte) (uint64, []byte, error)
	Has([]byte) (bool, error)
	NewFetchCursor() *FetchCursor
	NewPrefixCursor([]byte) *FetchCursor
	prefixKey([]byte) []byte
}

// PoolHandle - handle for a storage pool
type PoolHandle struct {
	name   string
	prefix byte
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// Name - field name of the pool
func (p *PoolHandle) Name() string {
	return p.name
}

// Prefix - the key prefix byte of the pool
func (p *PoolHandle) Prefix() byte {
	return p.prefix
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Get - read a committed value for a given key
//
// a missing key returns nil without error
// this may return a cached element - copy the result if it must be modified
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	poolData.RLock()
	defer poolData.RUnlock()

	if nil == poolData.database {
		return nil, fault.ErrNotInitialised
	}

	prefixedKey := p.prefixKey(key)
	if value, found := poolData.cache.Get(string(prefixedKey)); found {
		return value, nil
	}

	value, err := poolData.database.Get(prefixedKey, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	} else if nil != err {
		return nil, err
	}
	poolData.cache.Set(dbPut, string(prefixedKey), value)
	return value, nil
}

// GetN - read a record holding exactly 8 bytes as big endian uint64
//
// second parameter is false if record was not found
func (p *PoolHandle) GetN(key []byte) (uint64, bool, error) {
	buffer, err := p.Get(key)
	if nil != err || nil == buffer {
		return 0, false, err
	}
	if 8 != len(buffer) {
		poolData.log.Errorf("%s: GetN bad record length: %d for: %x", p.name, len(buffer), key)
		return 0, false, fault.ErrInvalidRecordLength
	}
	return binary.BigEndian.Uint64(buffer), true, nil
}

// GetNB - read a record and decode first 8 bytes as big endian uint64
// and return the rest of the record as byte slice
//
// second parameter is nil if record was not found
func (p *PoolHandle) GetNB(key []byte) (uint64, []byte, error) {
	buffer, err := p.Get(key)
	if nil != err || nil == buffer {
		return 0, nil, err
	}
	if len(buffer) < 8 {
		poolData.log.Errorf("%s: GetNB truncated record for: %x", p.name, key)
		return 0, nil, fault.ErrTruncatedRecord
	}
	n := binary.BigEndian.Uint64(buffer[:8])
	return n, buffer[8:], nil
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	poolData.RLock()
	defer poolData.RUnlock()

	if nil == poolData.database {
		return false, fault.ErrNotInitialised
	}

	prefixedKey := p.prefixKey(key)
	if _, found := poolData.cache.Get(string(prefixedKey)); found {
		return true, nil
	}
	return poolData.database.Has(prefixedKey, nil)
}
