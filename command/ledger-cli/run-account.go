// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/staterecord"
)

type balanceReply struct {
	Address   account.Address `json:"address"`
	Balance   int64           `json:"balance"`
	LeaseIn   int64           `json:"leaseIn"`
	LeaseOut  int64           `json:"leaseOut"`
	Effective int64           `json:"effective"`
}

func newBalanceReply(address account.Address, b staterecord.Balance) balanceReply {
	return balanceReply{
		Address:   address,
		Balance:   b.Balance,
		LeaseIn:   b.LeaseIn,
		LeaseOut:  b.LeaseOut,
		Effective: b.Effective(),
	}
}

func runHeight(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	height, err := state.Height()
	if nil != err {
		return err
	}
	return printJson(m.w, struct {
		Height uint64 `json:"height"`
	}{
		Height: height,
	})
}

func runBalance(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if err := checkArgumentCount(c.Args(), 1); nil != err {
		return err
	}
	address, err := checkAddress(c.Args().Get(0))
	if nil != err {
		return err
	}

	balance, err := state.Balance(address)
	if nil != err {
		return err
	}
	return printJson(m.w, newBalanceReply(address, balance))
}

func runAssets(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if err := checkArgumentCount(c.Args(), 1); nil != err {
		return err
	}
	address, err := checkAddress(c.Args().Get(0))
	if nil != err {
		return err
	}

	assets, err := state.AssetBalances(address)
	if nil != err {
		return err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "address: %s  assets: %d\n", address, len(assets))
	}
	return printJson(m.w, assets)
}

func runBalances(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if err := checkArgumentCount(c.Args(), 0); nil != err {
		return err
	}

	balances := make([]balanceReply, 0)
	err := state.ForEachBalance(func(address account.Address, b staterecord.Balance) error {
		balances = append(balances, newBalanceReply(address, b))
		return nil
	})
	if nil != err {
		return err
	}
	return printJson(m.w, balances)
}
