// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"bytes"
	"sort"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/snapshot"
	"github.com/bitmark-inc/ledgerd/statekey"
	"github.com/bitmark-inc/ledgerd/staterecord"
	"github.com/bitmark-inc/ledgerd/storage"
)

// Apply - merge one diff into the ledger and advance the height
//
// returns the new height; on any error nothing is written
func Apply(diff *Diff) (uint64, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return 0, fault.ErrNotInitialised
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}

	committed := false
	defer func() {
		if !committed {
			trx.Abort()
		}
	}()

	height, _, err := trx.GetN(storage.Pool.Height, statekey.Singleton())
	if nil != err {
		return 0, err
	}
	height += 1

	if nil != diff {
		merges := []func(storage.Transaction, *Diff, uint64) error{
			applyTransactions,
			applyPortfolios,
			applyIssuedAssets,
			applyOrderFills,
			applyLeases,
			applyAliases,
			applyAccountTransactions,
			applyPayments,
		}
		for _, merge := range merges {
			err := merge(trx, diff, height)
			if nil != err {
				globalData.log.Errorf("height: %d  merge error: %s", height, err)
				rejectedCount.Increment()
				return 0, err
			}
		}
	}

	trx.PutN(storage.Pool.Height, statekey.Singleton(), height)

	records := trx.Len()
	committed = true
	err = trx.Commit()
	if nil != err {
		globalData.log.Errorf("height: %d  commit error: %s", height, err)
		rejectedCount.Increment()
		return 0, err
	}
	appliedCount.Increment()
	recordCount.Add(uint64(records))

	if nil != diff {
		globalData.log.Infof("height: %d  records: %d  transactions: %d  portfolios: %d  assets: %d  orders: %d  leases: %d  aliases: %d",
			height, records,
			len(diff.Transactions), len(diff.Portfolios), len(diff.IssuedAssets),
			len(diff.OrderFills), len(diff.LeaseState), len(diff.Aliases),
		)
	} else {
		globalData.log.Infof("height: %d  empty diff", height)
	}
	return height, nil
}

// read-combine-write of a single record
//
// an empty delta writes nothing; otherwise the combined value is
// written and returned
func mergeCombinable[T staterecord.Combinable[T]](
	trx storage.Transaction,
	pool storage.Handle,
	key []byte,
	delta T,
	identity T,
	decode func([]byte) (T, error),
) (T, bool, error) {
	if delta.IsEmpty() {
		return identity, false, nil
	}

	current := identity
	buffer, err := trx.Get(pool, key)
	if nil != err {
		return identity, false, err
	}
	if nil != buffer {
		current, err = decode(buffer)
		if nil != err {
			return identity, false, err
		}
	}

	combined := current.Combine(delta)
	trx.Put(pool, key, combined.Pack())
	return combined, true, nil
}

func applyTransactions(trx storage.Transaction, diff *Diff, _ uint64) error {
	for txId, tx := range diff.Transactions {
		record := append(statekey.Uint64(tx.Height), tx.Bytes...)
		trx.Put(storage.Pool.Transactions, statekey.Digest(txId), record)
	}
	return nil
}

func applyPortfolios(trx storage.Transaction, diff *Diff, height uint64) error {
	for _, address := range sortedAddresses(diff.Portfolios) {
		portfolio := diff.Portfolios[address]

		balance, changed, err := mergeCombinable(trx, storage.Pool.Balances, statekey.Address(address), portfolio.Native(), staterecord.Balance{}, staterecord.BalanceFromBytes)
		if nil != err {
			return err
		}
		if changed {
			err = snapshot.Update(trx, address, height, balance)
			if nil != err {
				return err
			}
		}

		assets := []merkle.Digest{}
		for _, asset := range sortedDigests(portfolio.Assets) {
			_, changed, err := mergeCombinable(trx, storage.Pool.AssetBalances, statekey.AddressAsset(address, asset), staterecord.Amount(portfolio.Assets[asset]), 0, staterecord.AmountFromBytes)
			if nil != err {
				return err
			}
			if changed {
				assets = append(assets, asset)
			}
		}
		if 0 == len(assets) {
			continue
		}

		key := statekey.Address(address)
		known, err := digestList(trx, storage.Pool.AccountAssets, key)
		if nil != err {
			return err
		}
		if updated := known.Union(assets...); len(updated) != len(known) {
			trx.Put(storage.Pool.AccountAssets, key, updated.Pack())
		}
	}
	return nil
}

func applyIssuedAssets(trx storage.Transaction, diff *Diff, _ uint64) error {
	for asset, info := range diff.IssuedAssets {
		_, _, err := mergeCombinable(trx, storage.Pool.AssetInfo, statekey.Digest(asset), info, staterecord.EmptyAssetInfo(), staterecord.AssetInfoFromBytes)
		if nil != err {
			return err
		}
	}
	return nil
}

func applyOrderFills(trx storage.Transaction, diff *Diff, _ uint64) error {
	for order, fill := range diff.OrderFills {
		_, _, err := mergeCombinable(trx, storage.Pool.OrderFills, statekey.Digest(order), fill, staterecord.OrderFillInfo{}, staterecord.OrderFillInfoFromBytes)
		if nil != err {
			return err
		}
	}
	return nil
}

// a lease set inactive stays in the active set
func applyLeases(trx storage.Transaction, diff *Diff, _ uint64) error {
	activated := []merkle.Digest{}
	for _, lease := range sortedDigests(diff.LeaseState) {
		active := diff.LeaseState[lease]
		trx.Put(storage.Pool.LeaseState, statekey.Digest(lease), staterecord.PackFlag(active))
		if active {
			activated = append(activated, lease)
		}
	}
	if 0 == len(activated) {
		return nil
	}

	key := statekey.Singleton()
	current, err := digestList(trx, storage.Pool.ActiveLeases, key)
	if nil != err {
		return err
	}
	if updated := current.Union(activated...); len(updated) != len(current) {
		trx.Put(storage.Pool.ActiveLeases, key, updated.Pack())
	}
	return nil
}

// the previous owner of a rebound alias keeps it in its list
func applyAliases(trx storage.Transaction, diff *Diff, _ uint64) error {
	aliases := make([]account.Alias, 0, len(diff.Aliases))
	for alias := range diff.Aliases {
		aliases = append(aliases, alias)
	}
	sort.Slice(aliases, func(i, j int) bool {
		return aliases[i] < aliases[j]
	})

	byAddress := make(map[account.Address][]account.Alias)
	for _, alias := range aliases {
		address := diff.Aliases[alias]
		trx.Put(storage.Pool.AliasAddress, statekey.Alias(alias), address.Bytes())
		byAddress[address] = append(byAddress[address], alias)
	}

	for address, bound := range byAddress {
		key := statekey.Address(address)
		current, err := aliasList(trx, key)
		if nil != err {
			return err
		}
		if updated := current.Union(bound...); len(updated) != len(current) {
			trx.Put(storage.Pool.AddressAliases, key, updated.Pack())
		}
	}
	return nil
}

// the list is stored in reverse, continuing from the current count
func applyAccountTransactions(trx storage.Transaction, diff *Diff, _ uint64) error {
	for address, txIds := range diff.AccountTransactionIds {
		if 0 == len(txIds) {
			continue
		}

		key := statekey.Address(address)
		start, _, err := trx.GetN(storage.Pool.AccountTxCount, key)
		if nil != err {
			return err
		}

		last := len(txIds) - 1
		for i := range txIds {
			txId := txIds[last-i]
			trx.Put(storage.Pool.AccountTxIndex, statekey.AddressIndex(address, start+uint64(i)), statekey.Digest(txId))
		}
		trx.PutN(storage.Pool.AccountTxCount, key, start+uint64(len(txIds)))
	}
	return nil
}

func applyPayments(trx storage.Transaction, diff *Diff, _ uint64) error {
	for hash, txId := range diff.PaymentTransactionIdsByHashes {
		trx.Put(storage.Pool.PaymentHashes, statekey.Digest(hash), statekey.Digest(txId))
	}
	return nil
}

func digestList(trx storage.Transaction, pool storage.Handle, key []byte) (staterecord.DigestList, error) {
	buffer, err := trx.Get(pool, key)
	if nil != err || nil == buffer {
		return staterecord.DigestList{}, err
	}
	return staterecord.DigestListFromBytes(buffer)
}

func aliasList(trx storage.Transaction, key []byte) (staterecord.AliasList, error) {
	buffer, err := trx.Get(storage.Pool.AddressAliases, key)
	if nil != err || nil == buffer {
		return staterecord.AliasList{}, err
	}
	return staterecord.AliasListFromBytes(buffer)
}

func sortedAddresses[V any](m map[account.Address]V) []account.Address {
	addresses := make([]account.Address, 0, len(m))
	for address := range m {
		addresses = append(addresses, address)
	}
	sort.Slice(addresses, func(i, j int) bool {
		return bytes.Compare(addresses[i][:], addresses[j][:]) < 0
	})
	return addresses
}

func sortedDigests[V any](m map[merkle.Digest]V) []merkle.Digest {
	digests := make([]merkle.Digest, 0, len(m))
	for d := range m {
		digests = append(digests, d)
	}
	sort.Slice(digests, func(i, j int) bool {
		return bytes.Compare(digests[i][:], digests[j][:]) < 0
	})
	return digests
}
