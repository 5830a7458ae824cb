// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/storage"
)

type metadata struct {
	file    string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "ledger-cli"
	app.Usage = "read-only queries against a ledger database"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "file, f",
			Value: "",
			Usage: " ledger database `DIRECTORY`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "height",
			Usage:  "number of diffs applied",
			Action: runHeight,
		},
		{
			Name:      "balance",
			Usage:     "native balance and leases of an account",
			ArgsUsage: "ADDRESS",
			Action:    runBalance,
		},
		{
			Name:      "assets",
			Usage:     "asset balances of an account",
			ArgsUsage: "ADDRESS",
			Action:    runAssets,
		},
		{
			Name:      "asset",
			Usage:     "issuance state of an asset",
			ArgsUsage: "ASSET-ID",
			Action:    runAsset,
		},
		{
			Name:      "order",
			Usage:     "filled volume and fee of an order",
			ArgsUsage: "ORDER-ID",
			Action:    runOrder,
		},
		{
			Name:      "resolve",
			Usage:     "address bound to an alias",
			ArgsUsage: "ALIAS",
			Action:    runResolve,
		},
		{
			Name:      "aliases",
			Usage:     "aliases ever bound to an account, or all aliases if no account is given",
			ArgsUsage: "[ADDRESS]",
			Action:    runAliases,
		},
		{
			Name:   "leases",
			Usage:  "every lease ever activated",
			Action: runLeases,
		},
		{
			Name:      "lease",
			Usage:     "current state of a lease",
			ArgsUsage: "LEASE-ID",
			Action:    runLease,
		},
		{
			Name:      "transaction",
			Usage:     "a stored transaction",
			ArgsUsage: "TX-ID",
			Action:    runTransaction,
		},
		{
			Name:      "transactions",
			Usage:     "transaction ids of an account",
			ArgsUsage: "ADDRESS",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: " first `INDEX` to list",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 20,
					Usage: " maximum `COUNT` of ids",
				},
			},
			Action: runTransactions,
		},
		{
			Name:      "payment",
			Usage:     "transaction carrying a payment hash",
			ArgsUsage: "HASH",
			Action:    runPayment,
		},
		{
			Name:      "history",
			Usage:     "balance snapshot of an account at or before a height",
			ArgsUsage: "ADDRESS HEIGHT",
			Action:    runHistory,
		},
		{
			Name:      "effective",
			Usage:     "lowest effective balance within a confirmation window",
			ArgsUsage: "ADDRESS HEIGHT CONFIRMATIONS",
			Action:    runEffective,
		},
		{
			Name:   "balances",
			Usage:  "every stored native balance",
			Action: runBalances,
		},
		{
			Name:  "version",
			Usage: "display ledger-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// open the database
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		command := c.Args().Get(0)
		if "" == command || "version" == command || "help" == command || "h" == command {
			return nil
		}

		file, err := checkDatabase(c.GlobalString("file"))
		if nil != err {
			return err
		}

		logging := logger.Configuration{
			Directory: os.TempDir(),
			File:      app.Name + ".log",
			Size:      1048576,
			Count:     2,
			Console:   false,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		}
		if err := logger.Initialise(logging); nil != err {
			return err
		}

		if verbose {
			fmt.Fprintf(e, "database: %q\n", file)
		}

		mustReindex, err := storage.Initialise(file, storage.ReadOnly)
		if nil != err {
			logger.Finalise()
			return err
		}
		if mustReindex {
			fmt.Fprintf(e, "warning: database %q is being rebuilt\n", file)
		}

		c.App.Metadata["config"] = &metadata{
			file:    file,
			verbose: verbose,
			e:       e,
			w:       w,
		}
		return nil
	}

	app.After = func(c *cli.Context) error {
		if _, ok := c.App.Metadata["config"].(*metadata); !ok {
			return nil
		}
		storage.Finalise()
		logger.Finalise()
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
