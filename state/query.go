// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/snapshot"
	"github.com/bitmark-inc/ledgerd/statekey"
	"github.com/bitmark-inc/ledgerd/staterecord"
	"github.com/bitmark-inc/ledgerd/storage"
)

// Height - number of diffs applied so far
func Height() (uint64, error) {
	height, _, err := storage.Pool.Height.GetN(statekey.Singleton())
	return height, err
}

// Balance - native balance and lease totals of an address
func Balance(address account.Address) (staterecord.Balance, error) {
	buffer, err := storage.Pool.Balances.Get(statekey.Address(address))
	if nil != err || nil == buffer {
		return staterecord.Balance{}, err
	}
	return staterecord.BalanceFromBytes(buffer)
}

// AssetBalance - balance of one asset held by an address
func AssetBalance(address account.Address, asset merkle.Digest) (int64, error) {
	buffer, err := storage.Pool.AssetBalances.Get(statekey.AddressAsset(address, asset))
	if nil != err || nil == buffer {
		return 0, err
	}
	return staterecord.Int64FromBytes(buffer)
}

// AssetBalances - balance of every asset an address ever held
func AssetBalances(address account.Address) (map[merkle.Digest]int64, error) {
	buffer, err := storage.Pool.AccountAssets.Get(statekey.Address(address))
	if nil != err {
		return nil, err
	}

	result := make(map[merkle.Digest]int64)
	if nil == buffer {
		return result, nil
	}

	assets, err := staterecord.DigestListFromBytes(buffer)
	if nil != err {
		return nil, err
	}
	for _, asset := range assets {
		balance, err := AssetBalance(address, asset)
		if nil != err {
			return nil, err
		}
		result[asset] = balance
	}
	return result, nil
}

// AssetInfo - issuance state of an asset
//
// an unknown asset returns the empty record and false
func AssetInfo(asset merkle.Digest) (staterecord.AssetInfo, bool, error) {
	buffer, err := storage.Pool.AssetInfo.Get(statekey.Digest(asset))
	if nil != err || nil == buffer {
		return staterecord.EmptyAssetInfo(), false, err
	}
	info, err := staterecord.AssetInfoFromBytes(buffer)
	if nil != err {
		return staterecord.EmptyAssetInfo(), false, err
	}
	return info, true, nil
}

// OrderFillInfo - filled volume and fee of an order
func OrderFillInfo(order merkle.Digest) (staterecord.OrderFillInfo, error) {
	buffer, err := storage.Pool.OrderFills.Get(statekey.Digest(order))
	if nil != err || nil == buffer {
		return staterecord.OrderFillInfo{}, err
	}
	return staterecord.OrderFillInfoFromBytes(buffer)
}

// ResolveAlias - address an alias is currently bound to
func ResolveAlias(alias account.Alias) (account.Address, bool, error) {
	buffer, err := storage.Pool.AliasAddress.Get(statekey.Alias(alias))
	if nil != err || nil == buffer {
		return account.Address{}, false, err
	}
	address, err := staterecord.AddressFromRecord(buffer)
	if nil != err {
		return account.Address{}, false, err
	}
	return address, true, nil
}

// AliasesOf - every alias ever bound to an address
//
// an alias later bound elsewhere is still listed here
func AliasesOf(address account.Address) (staterecord.AliasList, error) {
	buffer, err := storage.Pool.AddressAliases.Get(statekey.Address(address))
	if nil != err || nil == buffer {
		return staterecord.AliasList{}, err
	}
	return staterecord.AliasListFromBytes(buffer)
}

// AllAliases - the complete alias table
func AllAliases() (map[account.Alias]account.Address, error) {
	result := make(map[account.Alias]account.Address)
	err := storage.Pool.AliasAddress.NewFetchCursor().Map(func(key []byte, value []byte) error {
		alias, err := account.NewAlias(string(key))
		if nil != err {
			return fault.ErrCorruptAlias
		}
		address, err := staterecord.AddressFromRecord(value)
		if nil != err {
			return err
		}
		result[alias] = address
		return nil
	})
	if nil != err {
		return nil, err
	}
	return result, nil
}

// LeaseState - true if the lease was last set active
func LeaseState(lease merkle.Digest) (bool, error) {
	buffer, err := storage.Pool.LeaseState.Get(statekey.Digest(lease))
	if nil != err || nil == buffer {
		return false, err
	}
	return staterecord.FlagFromBytes(buffer)
}

// ActiveLeases - every lease ever set active
//
// leases that were later cancelled remain in this set
func ActiveLeases() (staterecord.DigestList, error) {
	buffer, err := storage.Pool.ActiveLeases.Get(statekey.Singleton())
	if nil != err || nil == buffer {
		return staterecord.DigestList{}, err
	}
	return staterecord.DigestListFromBytes(buffer)
}

// Transaction - a stored transaction and its height
func Transaction(txId merkle.Digest) (ConfirmedTransaction, bool, error) {
	height, data, err := storage.Pool.Transactions.GetNB(statekey.Digest(txId))
	if nil != err || nil == data {
		return ConfirmedTransaction{}, false, err
	}
	tx := ConfirmedTransaction{
		Height: height,
		Bytes:  make([]byte, len(data)),
	}
	copy(tx.Bytes, data)
	return tx, true, nil
}

// TransactionCount - number of transaction ids stored for an address
func TransactionCount(address account.Address) (uint64, error) {
	count, _, err := storage.Pool.AccountTxCount.GetN(statekey.Address(address))
	return count, err
}

// AccountTransactionIds - up to count transaction ids of an address
// starting at index start
//
// ids of one diff are stored newest first, so ascending indices read
// each block's transactions in reverse
func AccountTransactionIds(address account.Address, start uint64, count int) ([]merkle.Digest, error) {
	cursor := storage.Pool.AccountTxIndex.NewPrefixCursor(statekey.Address(address))
	cursor.Seek(statekey.AddressIndex(address, start))

	elements, err := cursor.Fetch(count)
	if nil != err {
		return nil, err
	}

	result := make([]merkle.Digest, 0, len(elements))
	for _, e := range elements {
		txId, err := staterecord.DigestFromRecord(e.Value)
		if nil != err {
			return nil, err
		}
		result = append(result, txId)
	}
	return result, nil
}

// PaymentTransactionId - transaction that carried a payment hash
func PaymentTransactionId(hash merkle.Digest) (merkle.Digest, bool, error) {
	buffer, err := storage.Pool.PaymentHashes.Get(statekey.Digest(hash))
	if nil != err || nil == buffer {
		return merkle.Digest{}, false, err
	}
	txId, err := staterecord.DigestFromRecord(buffer)
	if nil != err {
		return merkle.Digest{}, false, err
	}
	return txId, true, nil
}

// BalanceAtOrBefore - the last snapshot of an address at or before height
//
// the second result is the height the snapshot was taken at
func BalanceAtOrBefore(address account.Address, height uint64) (staterecord.Snapshot, uint64, bool, error) {
	return snapshot.AtOrBefore(address, height)
}

// EffectiveBalance - lowest effective balance of an address within
// the confirmations before atHeight
func EffectiveBalance(address account.Address, atHeight uint64, confirmations uint64) (int64, error) {
	return snapshot.EffectiveBalance(address, atHeight, confirmations)
}

// ForEachBalance - visit every stored native balance in address order
func ForEachBalance(f func(account.Address, staterecord.Balance) error) error {
	return storage.Pool.Balances.NewFetchCursor().Map(func(key []byte, value []byte) error {
		address, err := staterecord.AddressFromRecord(key)
		if nil != err {
			return err
		}
		balance, err := staterecord.BalanceFromBytes(value)
		if nil != err {
			return err
		}
		return f(address, balance)
	})
}
