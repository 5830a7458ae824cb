// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/staterecord"
)

func runAsset(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if err := checkArgumentCount(c.Args(), 1); nil != err {
		return err
	}
	asset, err := checkDigest(c.Args().Get(0))
	if nil != err {
		return err
	}

	info, found, err := state.AssetInfo(asset)
	if nil != err {
		return err
	}
	return printJson(m.w, struct {
		Asset merkle.Digest         `json:"asset"`
		Found bool                  `json:"found"`
		Info  staterecord.AssetInfo `json:"info"`
	}{
		Asset: asset,
		Found: found,
		Info:  info,
	})
}

func runOrder(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if err := checkArgumentCount(c.Args(), 1); nil != err {
		return err
	}
	order, err := checkDigest(c.Args().Get(0))
	if nil != err {
		return err
	}

	fill, err := state.OrderFillInfo(order)
	if nil != err {
		return err
	}
	return printJson(m.w, struct {
		Order  merkle.Digest `json:"order"`
		Volume int64         `json:"volume"`
		Fee    int64         `json:"fee"`
	}{
		Order:  order,
		Volume: fill.Volume,
		Fee:    fill.Fee,
	})
}
