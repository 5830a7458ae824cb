// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/staterecord"
)

func runHistory(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if err := checkArgumentCount(c.Args(), 2); nil != err {
		return err
	}
	address, err := checkAddress(c.Args().Get(0))
	if nil != err {
		return err
	}
	height, err := checkUint64(c.Args().Get(1))
	if nil != err {
		return err
	}

	s, at, found, err := state.BalanceAtOrBefore(address, height)
	if nil != err {
		return err
	}
	reply := struct {
		Address  account.Address       `json:"address"`
		Height   uint64                `json:"height"`
		Snapshot *staterecord.Snapshot `json:"snapshot"`
		At       uint64                `json:"at,omitempty"`
	}{
		Address: address,
		Height:  height,
	}
	if found {
		reply.Snapshot = &s
		reply.At = at
	}
	return printJson(m.w, reply)
}

func runEffective(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if err := checkArgumentCount(c.Args(), 3); nil != err {
		return err
	}
	address, err := checkAddress(c.Args().Get(0))
	if nil != err {
		return err
	}
	height, err := checkUint64(c.Args().Get(1))
	if nil != err {
		return err
	}
	confirmations, err := checkUint64(c.Args().Get(2))
	if nil != err {
		return err
	}

	balance, err := state.EffectiveBalance(address, height, confirmations)
	if nil != err {
		return err
	}
	return printJson(m.w, struct {
		Address       account.Address `json:"address"`
		Height        uint64          `json:"height"`
		Confirmations uint64          `json:"confirmations"`
		Effective     int64           `json:"effective"`
	}{
		Address:       address,
		Height:        height,
		Confirmations: confirmations,
		Effective:     balance,
	})
}
