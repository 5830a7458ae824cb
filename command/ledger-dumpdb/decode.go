// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/staterecord"
)

type decoder func([]byte) (interface{}, error)

// value decoders indexed by pool name
var decoders = map[string]decoder{
	"Height":         counter,
	"Balances":       wrap(staterecord.BalanceFromBytes),
	"AssetBalances":  wrap(staterecord.AmountFromBytes),
	"AccountAssets":  wrap(staterecord.DigestListFromBytes),
	"AssetInfo":      wrap(staterecord.AssetInfoFromBytes),
	"OrderFills":     wrap(staterecord.OrderFillInfoFromBytes),
	"LeaseState":     wrap(staterecord.FlagFromBytes),
	"ActiveLeases":   wrap(staterecord.DigestListFromBytes),
	"AliasAddress":   wrap(staterecord.AddressFromRecord),
	"AddressAliases": wrap(staterecord.AliasListFromBytes),
	"Transactions":   transaction,
	"AccountTxCount": counter,
	"AccountTxIndex": wrap(staterecord.DigestFromRecord),
	"PaymentHashes":  wrap(staterecord.DigestFromRecord),
	"LastSnapshot":   counter,
	"Snapshots":      wrap(staterecord.SnapshotFromBytes),
}

func wrap[T any](f func([]byte) (T, error)) decoder {
	return func(buffer []byte) (interface{}, error) {
		return f(buffer)
	}
}

func counter(buffer []byte) (interface{}, error) {
	if 8 != len(buffer) {
		return nil, fault.ErrInvalidRecordLength
	}
	return binary.BigEndian.Uint64(buffer), nil
}

func transaction(buffer []byte) (interface{}, error) {
	if len(buffer) < 8 {
		return nil, fault.ErrTruncatedRecord
	}
	return struct {
		Height uint64 `json:"height"`
		Length int    `json:"length"`
	}{
		Height: binary.BigEndian.Uint64(buffer),
		Length: len(buffer) - 8,
	}, nil
}

// JSON text of a decoded record
func decodeRecord(poolName string, buffer []byte) (string, error) {
	d, ok := decoders[poolName]
	if !ok {
		return "", fmt.Errorf("no decoder for: %s", poolName)
	}
	value, err := d(buffer)
	if nil != err {
		return "", err
	}
	text, err := json.Marshal(value)
	if nil != err {
		return "", err
	}
	return string(text), nil
}
