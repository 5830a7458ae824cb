// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/statekey"
	"github.com/bitmark-inc/ledgerd/staterecord"
	"github.com/bitmark-inc/ledgerd/storage"
)

// a diff touching every aggregate
func fullDiff() *state.Diff {
	return &state.Diff{
		Transactions: map[merkle.Digest]state.ConfirmedTransaction{
			digest("tx1"): {Height: 1, Bytes: []byte("first")},
		},
		Portfolios: map[account.Address]state.Portfolio{
			alice: {Balance: 1000, LeaseOut: 100, Assets: map[merkle.Digest]int64{gold: 50}},
			bob:   {Balance: 10, LeaseIn: 100},
		},
		IssuedAssets: map[merkle.Digest]staterecord.AssetInfo{
			gold: {IsReissuable: true, Volume: 50},
		},
		OrderFills: map[merkle.Digest]staterecord.OrderFillInfo{
			digest("order"): {Volume: 5, Fee: 1},
		},
		LeaseState: map[merkle.Digest]bool{
			digest("lease"): true,
		},
		Aliases: map[account.Alias]account.Address{
			"alice": alice,
		},
		AccountTransactionIds: map[account.Address][]merkle.Digest{
			alice: {digest("tx1")},
		},
		PaymentTransactionIdsByHashes: map[merkle.Digest]merkle.Digest{
			digest("payment"): digest("tx1"),
		},
	}
}

// everything the read API can report, for comparisons
type ledger struct {
	balances      map[account.Address]staterecord.Balance
	assets        map[merkle.Digest]int64
	goldInfo      staterecord.AssetInfo
	fill          staterecord.OrderFillInfo
	aliases       map[account.Alias]account.Address
	activeLeases  staterecord.DigestList
	aliceTxCount  uint64
	aliceTxIds    []merkle.Digest
	paymentTxId   merkle.Digest
	transactionTx state.ConfirmedTransaction
}

func readLedger(t *testing.T) ledger {
	l := ledger{
		balances: make(map[account.Address]staterecord.Balance),
	}
	err := state.ForEachBalance(func(a account.Address, b staterecord.Balance) error {
		l.balances[a] = b
		return nil
	})
	assert.Nil(t, err, "balances")

	l.assets, err = state.AssetBalances(alice)
	assert.Nil(t, err, "asset balances")
	l.goldInfo, _, err = state.AssetInfo(gold)
	assert.Nil(t, err, "asset info")
	l.fill, err = state.OrderFillInfo(digest("order"))
	assert.Nil(t, err, "order fill")
	l.aliases, err = state.AllAliases()
	assert.Nil(t, err, "aliases")
	l.activeLeases, err = state.ActiveLeases()
	assert.Nil(t, err, "active leases")
	l.aliceTxCount, err = state.TransactionCount(alice)
	assert.Nil(t, err, "tx count")
	l.aliceTxIds, err = state.AccountTransactionIds(alice, 0, 100)
	assert.Nil(t, err, "tx ids")
	l.paymentTxId, _, err = state.PaymentTransactionId(digest("payment"))
	assert.Nil(t, err, "payment")
	l.transactionTx, _, err = state.Transaction(digest("tx1"))
	assert.Nil(t, err, "transaction")
	return l
}

func TestNotInitialised(t *testing.T) {
	_, err := state.Apply(&state.Diff{})
	assert.Equal(t, fault.ErrNotInitialised, err, "apply before initialise")

	setup(t)
	defer teardown()

	assert.Equal(t, fault.ErrAlreadyInitialised, state.Initialise(), "second initialise")
}

func TestEmptyDiffOnlyAdvancesHeight(t *testing.T) {
	setup(t)
	defer teardown()

	assert.Equal(t, uint64(1), apply(t, fullDiff()), "first height")
	before := readLedger(t)

	assert.Equal(t, uint64(2), apply(t, &state.Diff{}), "empty diff")
	assert.Equal(t, uint64(3), apply(t, nil), "nil diff")

	zero := &state.Diff{
		Portfolios: map[account.Address]state.Portfolio{
			alice: {Assets: map[merkle.Digest]int64{gold: 0}},
		},
		IssuedAssets: map[merkle.Digest]staterecord.AssetInfo{
			gold: staterecord.EmptyAssetInfo(),
		},
		OrderFills: map[merkle.Digest]staterecord.OrderFillInfo{
			digest("order"): {},
		},
		AccountTransactionIds: map[account.Address][]merkle.Digest{
			alice: {},
		},
	}
	assert.Equal(t, uint64(4), apply(t, zero), "all zero diff")

	after := readLedger(t)
	assert.Equal(t, before, after, "ledger unchanged")

	height, err := state.Height()
	assert.Nil(t, err, "height error")
	assert.Equal(t, uint64(4), height, "stored height")

	// no snapshot is taken for an unchanged balance
	_, at, _, err := state.BalanceAtOrBefore(alice, 100)
	assert.Nil(t, err, "snapshot error")
	assert.Equal(t, uint64(1), at, "snapshot height")
}

func TestDiffOrderDoesNotMatter(t *testing.T) {
	first := &state.Diff{
		Portfolios: map[account.Address]state.Portfolio{
			alice: {Balance: 70, Assets: map[merkle.Digest]int64{gold: 3}},
		},
		IssuedAssets: map[merkle.Digest]staterecord.AssetInfo{
			gold: {IsReissuable: true, Volume: 3},
		},
		OrderFills: map[merkle.Digest]staterecord.OrderFillInfo{
			digest("order"): {Volume: 1, Fee: 1},
		},
	}
	second := &state.Diff{
		Portfolios: map[account.Address]state.Portfolio{
			alice: {Balance: -20, LeaseIn: 4, Assets: map[merkle.Digest]int64{gold: 2, silver: 9}},
		},
		IssuedAssets: map[merkle.Digest]staterecord.AssetInfo{
			gold: {IsReissuable: false, Volume: 2, Script: []byte{0x51}},
		},
		OrderFills: map[merkle.Digest]staterecord.OrderFillInfo{
			digest("order"): {Volume: 10, Fee: 2},
		},
	}

	run := func(diffs ...*state.Diff) ledger {
		setup(t)
		defer teardown()
		for _, d := range diffs {
			apply(t, d)
		}
		return readLedger(t)
	}

	forward := run(first, second)
	backward := run(second, first)
	assert.Equal(t, forward, backward, "order of application")

	assert.Equal(t, staterecord.Balance{Balance: 50, LeaseIn: 4}, forward.balances[alice], "balance is the sum")
	assert.Equal(t, map[merkle.Digest]int64{gold: 5, silver: 9}, forward.assets, "asset balances")
	assert.True(t, staterecord.AssetInfo{IsReissuable: false, Volume: 5, Script: []byte{0x51}}.Equal(forward.goldInfo), "asset info: %+v", forward.goldInfo)
	assert.Equal(t, staterecord.OrderFillInfo{Volume: 11, Fee: 3}, forward.fill, "order fill")
}

func TestBalanceConservation(t *testing.T) {
	setup(t)
	defer teardown()

	apply(t, &state.Diff{
		Portfolios: map[account.Address]state.Portfolio{
			alice: {Balance: 500},
			bob:   {Balance: 300},
		},
	})

	transfers := []map[account.Address]state.Portfolio{
		{alice: {Balance: -120}, bob: {Balance: 120}},
		{bob: {Balance: -400}, charlie: {Balance: 400}},
		{charlie: {Balance: -50}, alice: {Balance: 25}, bob: {Balance: 25}},
		{alice: {LeaseOut: 100}, charlie: {LeaseIn: 100}},
	}
	for _, portfolios := range transfers {
		apply(t, &state.Diff{Portfolios: portfolios})

		total := int64(0)
		effective := int64(0)
		err := state.ForEachBalance(func(_ account.Address, b staterecord.Balance) error {
			total += b.Balance
			effective += b.Effective()
			return nil
		})
		assert.Nil(t, err, "scan error")
		assert.Equal(t, int64(800), total, "total balance")
		assert.Equal(t, int64(800), effective, "total effective balance")
	}

	b, err := state.Balance(charlie)
	assert.Nil(t, err, "balance error")
	assert.Equal(t, staterecord.Balance{Balance: 350, LeaseIn: 100}, b, "charlie")
}

func TestAliasRebinding(t *testing.T) {
	setup(t)
	defer teardown()

	apply(t, &state.Diff{
		Aliases: map[account.Alias]account.Address{
			"shared": alice,
			"alice1": alice,
		},
	})
	apply(t, &state.Diff{
		Aliases: map[account.Alias]account.Address{
			"shared": bob,
		},
	})

	owner, found, err := state.ResolveAlias("shared")
	assert.Nil(t, err, "resolve error")
	assert.True(t, found, "resolved")
	assert.Equal(t, bob, owner, "last binding wins")

	aliceAliases, err := state.AliasesOf(alice)
	assert.Nil(t, err, "alice aliases error")
	assert.Equal(t, staterecord.AliasList{"alice1", "shared"}, aliceAliases, "stale entry kept")

	bobAliases, err := state.AliasesOf(bob)
	assert.Nil(t, err, "bob aliases error")
	assert.Equal(t, staterecord.AliasList{"shared"}, bobAliases, "new owner")

	_, found, err = state.ResolveAlias("nobody")
	assert.Nil(t, err, "resolve error")
	assert.False(t, found, "unknown alias")

	all, err := state.AllAliases()
	assert.Nil(t, err, "all aliases error")
	assert.Equal(t, map[account.Alias]account.Address{"alice1": alice, "shared": bob}, all, "alias table")
}

func TestAccountTransactionIndex(t *testing.T) {
	setup(t)
	defer teardown()

	t1, t2, t3, t4, t5 := digest("t1"), digest("t2"), digest("t3"), digest("t4"), digest("t5")

	apply(t, &state.Diff{
		AccountTransactionIds: map[account.Address][]merkle.Digest{
			alice: {t1, t2, t3},
			bob:   {t1},
		},
	})
	apply(t, &state.Diff{
		AccountTransactionIds: map[account.Address][]merkle.Digest{
			alice: {t4, t5},
		},
	})

	count, err := state.TransactionCount(alice)
	assert.Nil(t, err, "count error")
	assert.Equal(t, uint64(5), count, "count")

	ids, err := state.AccountTransactionIds(alice, 0, 100)
	assert.Nil(t, err, "ids error")
	assert.Equal(t, []merkle.Digest{t3, t2, t1, t5, t4}, ids, "each diff stored in reverse")

	ids, err = state.AccountTransactionIds(alice, 2, 2)
	assert.Nil(t, err, "page error")
	assert.Equal(t, []merkle.Digest{t1, t5}, ids, "page")

	ids, err = state.AccountTransactionIds(alice, 5, 10)
	assert.Nil(t, err, "past end error")
	assert.Equal(t, []merkle.Digest{}, ids, "past end")

	// indices are contiguous from zero
	n := uint64(0)
	err = storage.Pool.AccountTxIndex.NewPrefixCursor(statekey.Address(alice)).Map(func(key []byte, value []byte) error {
		_, index, err := statekey.SplitAddressIndex(key)
		if nil != err {
			return err
		}
		assert.Equal(t, n, index, "contiguous index")
		n += 1
		return nil
	})
	assert.Nil(t, err, "scan error")
	assert.Equal(t, count, n, "entries match count")

	ids, err = state.AccountTransactionIds(bob, 0, 100)
	assert.Nil(t, err, "bob ids error")
	assert.Equal(t, []merkle.Digest{t1}, ids, "bob")

	_, err = state.AccountTransactionIds(alice, 0, 0)
	assert.Equal(t, fault.ErrInvalidCount, err, "zero count")
}

func TestActiveLeasesNeverShrink(t *testing.T) {
	setup(t)
	defer teardown()

	first, second := digest("lease one"), digest("lease two")

	apply(t, &state.Diff{
		LeaseState: map[merkle.Digest]bool{first: true},
	})
	apply(t, &state.Diff{
		LeaseState: map[merkle.Digest]bool{first: false, second: true},
	})

	active, err := state.LeaseState(first)
	assert.Nil(t, err, "lease error")
	assert.False(t, active, "cancelled lease")

	active, err = state.LeaseState(second)
	assert.Nil(t, err, "lease error")
	assert.True(t, active, "new lease")

	leases, err := state.ActiveLeases()
	assert.Nil(t, err, "active leases error")
	assert.Equal(t, staterecord.DigestList{first, second}, leases, "cancelled lease is still listed")

	active, err = state.LeaseState(digest("unknown"))
	assert.Nil(t, err, "unknown lease error")
	assert.False(t, active, "unknown lease")
}

func TestSnapshotsFollowBalances(t *testing.T) {
	setup(t)
	defer teardown()

	apply(t, &state.Diff{Portfolios: map[account.Address]state.Portfolio{alice: {Balance: 100}}})
	apply(t, &state.Diff{Portfolios: map[account.Address]state.Portfolio{bob: {Balance: 7}}})
	apply(t, &state.Diff{Portfolios: map[account.Address]state.Portfolio{alice: {Balance: 50, LeaseOut: 120}}})

	s, at, found, err := state.BalanceAtOrBefore(alice, 2)
	assert.Nil(t, err, "snapshot error")
	assert.True(t, found, "found")
	assert.Equal(t, uint64(1), at, "height")
	assert.Equal(t, staterecord.Snapshot{PreviousHeight: 0, Balance: 100, EffectiveBalance: 100}, s, "at 2")

	s, at, found, err = state.BalanceAtOrBefore(alice, 3)
	assert.Nil(t, err, "snapshot error")
	assert.True(t, found, "found")
	assert.Equal(t, uint64(3), at, "height")
	assert.Equal(t, staterecord.Snapshot{PreviousHeight: 1, Balance: 150, EffectiveBalance: 30}, s, "at 3")

	effective, err := state.EffectiveBalance(alice, 3, 2)
	assert.Nil(t, err, "effective error")
	assert.Equal(t, int64(30), effective, "window minimum")
}

func TestCorruptRecordIsAnError(t *testing.T) {
	setup(t)
	defer teardown()

	apply(t, &state.Diff{Portfolios: map[account.Address]state.Portfolio{alice: {Balance: 100}}})

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction error")
	trx.Put(storage.Pool.Balances, statekey.Address(alice), []byte{0, 0, 0, 1})
	trx.Put(storage.Pool.AssetInfo, statekey.Digest(gold), []byte{1, 0, 0})
	trx.Put(storage.Pool.ActiveLeases, statekey.Singleton(), []byte{3, 1, 2})
	assert.Nil(t, trx.Commit(), "commit")

	_, err = state.Balance(alice)
	assert.True(t, fault.IsErrDecode(err), "balance: %v", err)

	_, _, err = state.AssetInfo(gold)
	assert.True(t, fault.IsErrDecode(err), "asset info: %v", err)

	_, err = state.ActiveLeases()
	assert.True(t, fault.IsErrDecode(err), "active leases: %v", err)

	before := state.Statistics()

	// merging into a corrupt record fails the whole diff
	_, err = state.Apply(&state.Diff{
		Portfolios: map[account.Address]state.Portfolio{
			bob:   {Balance: 1},
			alice: {Balance: 1},
		},
	})
	assert.True(t, fault.IsErrDecode(err), "apply: %v", err)

	height, err := state.Height()
	assert.Nil(t, err, "height error")
	assert.Equal(t, uint64(1), height, "height not advanced")

	b, err := state.Balance(bob)
	assert.Nil(t, err, "bob error")
	assert.Equal(t, staterecord.Balance{}, b, "nothing written")

	// the engine is free for the next diff
	assert.Equal(t, uint64(2), apply(t, &state.Diff{}), "next diff")

	after := state.Statistics()
	assert.Equal(t, before.Rejected+1, after.Rejected, "rejected count")
	assert.Equal(t, before.Applied+1, after.Applied, "applied count")
	assert.Equal(t, before.Records+1, after.Records, "only the height record was written")
}

func TestSingleWriter(t *testing.T) {
	setup(t)
	defer teardown()

	// hold the single batch so that apply cannot start one
	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction error")

	_, err = state.Apply(&state.Diff{})
	assert.Equal(t, fault.ErrTransactionInUse, err, "batch in use")

	trx.Abort()
	assert.Equal(t, uint64(1), apply(t, &state.Diff{}), "after abort")
}
