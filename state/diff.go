// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/staterecord"
)

// ConfirmedTransaction - raw bytes of a transaction and the height
// of the block it was confirmed in
type ConfirmedTransaction struct {
	Height uint64 `json:"height"`
	Bytes  []byte `json:"bytes"`
}

// Portfolio - changes to the holdings of one address
//
// every field is a delta that is added to the stored value
type Portfolio struct {
	Balance  int64                   `json:"balance"`
	LeaseIn  int64                   `json:"leaseIn"`
	LeaseOut int64                   `json:"leaseOut"`
	Assets   map[merkle.Digest]int64 `json:"assets,omitempty"`
}

// Native - the native currency part of the portfolio
func (p Portfolio) Native() staterecord.Balance {
	return staterecord.Balance{
		Balance:  p.Balance,
		LeaseIn:  p.LeaseIn,
		LeaseOut: p.LeaseOut,
	}
}

// Diff - all changes produced by one block
//
// a diff is applied exactly once; nothing detects a second application
type Diff struct {
	Transactions                  map[merkle.Digest]ConfirmedTransaction      `json:"transactions,omitempty"`
	Portfolios                    map[account.Address]Portfolio               `json:"portfolios,omitempty"`
	IssuedAssets                  map[merkle.Digest]staterecord.AssetInfo     `json:"issuedAssets,omitempty"`
	OrderFills                    map[merkle.Digest]staterecord.OrderFillInfo `json:"orderFills,omitempty"`
	LeaseState                    map[merkle.Digest]bool                      `json:"leaseState,omitempty"`
	Aliases                       map[account.Alias]account.Address           `json:"aliases,omitempty"`
	AccountTransactionIds         map[account.Address][]merkle.Digest         `json:"accountTransactionIds,omitempty"`
	PaymentTransactionIdsByHashes map[merkle.Digest]merkle.Digest             `json:"paymentTransactionIdsByHashes,omitempty"`
}
