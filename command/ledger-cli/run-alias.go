// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/state"
)

func runResolve(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if err := checkArgumentCount(c.Args(), 1); nil != err {
		return err
	}
	alias, err := checkAlias(c.Args().Get(0))
	if nil != err {
		return err
	}

	address, found, err := state.ResolveAlias(alias)
	if nil != err {
		return err
	}
	reply := struct {
		Alias   account.Alias    `json:"alias"`
		Address *account.Address `json:"address"`
	}{
		Alias: alias,
	}
	if found {
		reply.Address = &address
	}
	return printJson(m.w, reply)
}

func runAliases(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if err := checkArgumentCount(c.Args(), 1); nil != err {
		return err
	}

	if 0 == len(c.Args()) {
		aliases, err := state.AllAliases()
		if nil != err {
			return err
		}
		return printJson(m.w, aliases)
	}

	address, err := checkAddress(c.Args().Get(0))
	if nil != err {
		return err
	}
	aliases, err := state.AliasesOf(address)
	if nil != err {
		return err
	}
	return printJson(m.w, aliases)
}
