// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/ledgerd/fault"
)

// Transaction - a single atomic write batch across all pools
//
// reads never observe the batch: Get and GetN return the last
// committed value, so two updates to the same key in one batch must be
// combined by the caller before the Put
type Transaction interface {
	Begin() error
	Put(Handle, []byte, []byte)
	PutN(Handle, []byte, uint64)
	Delete(Handle, []byte)
	Get(Handle, []byte) ([]byte, error)
	GetN(Handle, []byte) (uint64, bool, error)
	Len() int
	Commit() error
	Abort()
}

type transaction struct {
	sync.Mutex
	inUse bool
	batch *leveldb.Batch
}

func newTransaction() *transaction {
	return &transaction{
		inUse: false,
		batch: new(leveldb.Batch),
	}
}

func (t *transaction) Begin() error {
	t.Lock()
	defer t.Unlock()

	if t.inUse {
		return fault.ErrTransactionInUse
	}
	t.inUse = true
	t.batch.Reset()
	return nil
}

func (t *transaction) Put(handle Handle, key []byte, value []byte) {
	t.batch.Put(handle.prefixKey(key), value)
}

func (t *transaction) PutN(handle Handle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	t.batch.Put(handle.prefixKey(key), buffer)
}

func (t *transaction) Delete(handle Handle, key []byte) {
	t.batch.Delete(handle.prefixKey(key))
}

func (t *transaction) Get(handle Handle, key []byte) ([]byte, error) {
	return handle.Get(key)
}

func (t *transaction) GetN(handle Handle, key []byte) (uint64, bool, error) {
	return handle.GetN(key)
}

// Len - number of records in the batch
func (t *transaction) Len() int {
	return t.batch.Len()
}

// Commit - write the batch atomically
//
// readers are excluded until the write and the cache refresh complete;
// on failure nothing is written and the batch is discarded
func (t *transaction) Commit() error {
	t.Lock()
	defer t.Unlock()

	if !t.inUse {
		return fault.ErrTransactionNotStarted
	}
	defer t.reset()

	poolData.Lock()
	defer poolData.Unlock()

	if nil == poolData.database {
		return fault.ErrNotInitialised
	}

	err := poolData.database.Write(t.batch, &ldb_opt.WriteOptions{Sync: true})
	if nil != err {
		poolData.log.Errorf("commit of %d records failed: %s", t.batch.Len(), err)
		return err
	}

	return t.batch.Replay(cacheReplay{cache: poolData.cache})
}

// Abort - discard the batch
func (t *transaction) Abort() {
	t.Lock()
	defer t.Unlock()
	t.reset()
}

func (t *transaction) reset() {
	t.batch.Reset()
	t.inUse = false
}

// refresh the cache from a committed batch
type cacheReplay struct {
	cache Cache
}

func (r cacheReplay) Put(key []byte, value []byte) {
	buffer := make([]byte, len(value))
	copy(buffer, value)
	r.cache.Set(dbPut, string(key), buffer)
}

func (r cacheReplay) Delete(key []byte) {
	r.cache.Set(dbDelete, string(key), []byte{})
}
