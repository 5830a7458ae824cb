// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/state"
)

func runLeases(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if err := checkArgumentCount(c.Args(), 0); nil != err {
		return err
	}

	leases, err := state.ActiveLeases()
	if nil != err {
		return err
	}
	return printJson(m.w, leases)
}

func runLease(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if err := checkArgumentCount(c.Args(), 1); nil != err {
		return err
	}
	lease, err := checkDigest(c.Args().Get(0))
	if nil != err {
		return err
	}

	active, err := state.LeaseState(lease)
	if nil != err {
		return err
	}
	return printJson(m.w, struct {
		Lease  merkle.Digest `json:"lease"`
		Active bool          `json:"active"`
	}{
		Lease:  lease,
		Active: active,
	})
}
