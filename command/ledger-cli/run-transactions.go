// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/state"
)

func runTransaction(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if err := checkArgumentCount(c.Args(), 1); nil != err {
		return err
	}
	txId, err := checkDigest(c.Args().Get(0))
	if nil != err {
		return err
	}

	tx, found, err := state.Transaction(txId)
	if nil != err {
		return err
	}
	reply := struct {
		TxId   merkle.Digest `json:"txId"`
		Found  bool          `json:"found"`
		Height uint64        `json:"height,omitempty"`
		Data   string        `json:"data,omitempty"`
	}{
		TxId:  txId,
		Found: found,
	}
	if found {
		reply.Height = tx.Height
		reply.Data = hex.EncodeToString(tx.Bytes)
	}
	return printJson(m.w, reply)
}

func runTransactions(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if err := checkArgumentCount(c.Args(), 1); nil != err {
		return err
	}
	address, err := checkAddress(c.Args().Get(0))
	if nil != err {
		return err
	}

	start := c.Uint64("start")
	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	total, err := state.TransactionCount(address)
	if nil != err {
		return err
	}
	ids, err := state.AccountTransactionIds(address, start, count)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "address: %s  start: %d  count: %d\n", address, start, count)
	}

	return printJson(m.w, struct {
		Address account.Address `json:"address"`
		Total   uint64          `json:"total"`
		Start   uint64          `json:"start"`
		Ids     []merkle.Digest `json:"ids"`
	}{
		Address: address,
		Total:   total,
		Start:   start,
		Ids:     ids,
	})
}

func runPayment(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if err := checkArgumentCount(c.Args(), 1); nil != err {
		return err
	}
	hash, err := checkDigest(c.Args().Get(0))
	if nil != err {
		return err
	}

	txId, found, err := state.PaymentTransactionId(hash)
	if nil != err {
		return err
	}
	reply := struct {
		Hash merkle.Digest  `json:"hash"`
		TxId *merkle.Digest `json:"txId"`
	}{
		Hash: hash,
	}
	if found {
		reply.TxId = &txId
	}
	return printJson(m.w, reply)
}
