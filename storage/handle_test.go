// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/fault"
)

func TestGetMissingKey(t *testing.T) {
	setup(t)
	defer teardown(t)

	value, err := Pool.Balances.Get([]byte("missing"))
	assert.Nil(t, err, "missing key is not an error")
	assert.Nil(t, value, "missing key has no value")

	n, found, err := Pool.AccountTxCount.GetN([]byte("missing"))
	assert.Nil(t, err, "missing count is not an error")
	assert.False(t, found, "missing count")
	assert.Equal(t, uint64(0), n, "missing count value")

	has, err := Pool.Balances.Has([]byte("missing"))
	assert.Nil(t, err, "has error")
	assert.False(t, has, "missing key")
}

func TestGetNBadLength(t *testing.T) {
	setup(t)
	defer teardown(t)

	putAll(t, Pool.AccountTxCount, []Element{
		{Key: []byte("short"), Value: []byte{1, 2, 3}},
		{Key: []byte("long"), Value: []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}},
	})

	_, _, err := Pool.AccountTxCount.GetN([]byte("short"))
	assert.Equal(t, fault.ErrInvalidRecordLength, err, "truncated count")

	_, _, err = Pool.AccountTxCount.GetN([]byte("long"))
	assert.Equal(t, fault.ErrInvalidRecordLength, err, "over long count")
}

func TestGetNB(t *testing.T) {
	setup(t)
	defer teardown(t)

	putAll(t, Pool.Transactions, []Element{
		{Key: []byte("tx"), Value: []byte{0, 0, 0, 0, 0, 0, 0, 42, 'd', 'a', 't', 'a'}},
		{Key: []byte("bad"), Value: []byte{0, 0, 42}},
	})

	n, data, err := Pool.Transactions.GetNB([]byte("tx"))
	assert.Nil(t, err, "read error")
	assert.Equal(t, uint64(42), n, "height")
	assert.Equal(t, []byte("data"), data, "data")

	_, _, err = Pool.Transactions.GetNB([]byte("bad"))
	assert.Equal(t, fault.ErrTruncatedRecord, err, "truncated")
}

func TestPoolsDoNotOverlap(t *testing.T) {
	setup(t)
	defer teardown(t)

	key := []byte("same-key")
	putAll(t, Pool.Balances, []Element{{Key: key, Value: []byte("balance")}})
	putAll(t, Pool.AssetInfo, []Element{{Key: key, Value: []byte("asset")}})

	b, _ := Pool.Balances.Get(key)
	a, _ := Pool.AssetInfo.Get(key)
	assert.Equal(t, []byte("balance"), b, "balances pool")
	assert.Equal(t, []byte("asset"), a, "asset info pool")
}

func TestGetServedFromCache(t *testing.T) {
	setup(t)
	defer teardown(t)

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	mockCache := NewMockCache(ctl)
	saved := poolData.cache
	poolData.cache = mockCache
	defer func() { poolData.cache = saved }()

	cached := []byte("from cache")
	mockCache.EXPECT().Get(string([]byte{'b', 'k'})).Return(cached, true).Times(1)

	value, err := Pool.Balances.Get([]byte{'k'})
	assert.Nil(t, err, "get error")
	assert.Equal(t, cached, value, "cached value returned without database read")
}

func TestGetFillsCache(t *testing.T) {
	setup(t)
	defer teardown(t)

	putAll(t, Pool.Balances, []Element{{Key: []byte{'k'}, Value: []byte("value")}})

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	mockCache := NewMockCache(ctl)
	saved := poolData.cache
	poolData.cache = mockCache
	defer func() { poolData.cache = saved }()

	mockCache.EXPECT().Get(gomock.Any()).Return([]byte{}, false).Times(1)
	mockCache.EXPECT().Set(dbOperation(dbPut), string([]byte{'b', 'k'}), []byte("value")).Times(1)

	value, err := Pool.Balances.Get([]byte{'k'})
	assert.Nil(t, err, "get error")
	assert.Equal(t, []byte("value"), value, "database value")
}
