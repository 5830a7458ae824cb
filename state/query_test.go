// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/staterecord"
)

func TestQueries(t *testing.T) {
	setup(t)
	defer teardown()

	height, err := state.Height()
	assert.Nil(t, err, "height error")
	assert.Equal(t, uint64(0), height, "empty ledger")

	apply(t, fullDiff())
	apply(t, &state.Diff{
		Portfolios: map[account.Address]state.Portfolio{
			alice: {Assets: map[merkle.Digest]int64{gold: -20, silver: 4}},
		},
	})

	b, err := state.Balance(alice)
	assert.Nil(t, err, "balance error")
	assert.Equal(t, staterecord.Balance{Balance: 1000, LeaseOut: 100}, b, "alice balance")

	b, err = state.Balance(charlie)
	assert.Nil(t, err, "absent balance error")
	assert.Equal(t, staterecord.Balance{}, b, "absent balance")

	n, err := state.AssetBalance(alice, gold)
	assert.Nil(t, err, "asset balance error")
	assert.Equal(t, int64(30), n, "gold")

	n, err = state.AssetBalance(bob, gold)
	assert.Nil(t, err, "absent asset balance error")
	assert.Equal(t, int64(0), n, "bob gold")

	assets, err := state.AssetBalances(alice)
	assert.Nil(t, err, "asset balances error")
	assert.Equal(t, map[merkle.Digest]int64{gold: 30, silver: 4}, assets, "portfolio")

	assets, err = state.AssetBalances(bob)
	assert.Nil(t, err, "empty portfolio error")
	assert.Equal(t, 0, len(assets), "empty portfolio")

	info, found, err := state.AssetInfo(gold)
	assert.Nil(t, err, "asset info error")
	assert.True(t, found, "asset found")
	assert.True(t, staterecord.AssetInfo{IsReissuable: true, Volume: 50}.Equal(info), "asset info: %+v", info)

	info, found, err = state.AssetInfo(silver)
	assert.Nil(t, err, "unknown asset error")
	assert.False(t, found, "unknown asset")
	assert.True(t, info.IsEmpty(), "unknown asset is empty")

	fill, err := state.OrderFillInfo(digest("order"))
	assert.Nil(t, err, "order error")
	assert.Equal(t, staterecord.OrderFillInfo{Volume: 5, Fee: 1}, fill, "order fill")

	tx, found, err := state.Transaction(digest("tx1"))
	assert.Nil(t, err, "transaction error")
	assert.True(t, found, "transaction found")
	assert.Equal(t, state.ConfirmedTransaction{Height: 1, Bytes: []byte("first")}, tx, "transaction")

	_, found, err = state.Transaction(digest("tx2"))
	assert.Nil(t, err, "missing transaction error")
	assert.False(t, found, "missing transaction")

	txId, found, err := state.PaymentTransactionId(digest("payment"))
	assert.Nil(t, err, "payment error")
	assert.True(t, found, "payment found")
	assert.Equal(t, digest("tx1"), txId, "payment transaction")

	_, found, err = state.PaymentTransactionId(digest("unpaid"))
	assert.Nil(t, err, "unpaid error")
	assert.False(t, found, "unpaid")

	height, err = state.Height()
	assert.Nil(t, err, "height error")
	assert.Equal(t, uint64(2), height, "height")
}

func TestForEachBalanceStops(t *testing.T) {
	setup(t)
	defer teardown()

	apply(t, &state.Diff{
		Portfolios: map[account.Address]state.Portfolio{
			alice:   {Balance: 1},
			bob:     {Balance: 2},
			charlie: {Balance: 3},
		},
	})

	visited := 0
	err := state.ForEachBalance(func(account.Address, staterecord.Balance) error {
		visited += 1
		if 2 == visited {
			return errStop
		}
		return nil
	})
	assert.Equal(t, errStop, err, "callback error returned")
	assert.Equal(t, 2, visited, "stopped early")
}

type stopError string

func (e stopError) Error() string { return string(e) }

const errStop = stopError("stop")
