// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/logger"
)

// setup command handler
//
// commands that need neither the configuration file nor the database
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "start", "run":
		return false // continue processing

	case "config-test", "cfg":
		return false // defer processing until configuration is read

	case "height", "apply":
		return false // defer processing until database is loaded

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  height                              - print the current ledger height\n")
		fmt.Printf("\n")

		fmt.Printf("  apply FILE...                       - apply diff files named HEIGHT.json in order\n")
		fmt.Printf("                                        without moving them\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the ledger database is open so these commands can read and change it
func processDataCommand(log *logger.L, arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "height":
		height, err := state.Height()
		if nil != err {
			exitwithstatus.Message("height error: %s", err)
		}
		fmt.Printf("%d\n", height)

	case "apply":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing diff file argument")
		}
		for _, fileName := range arguments {
			height, err := applyFile(fileName)
			if nil != err {
				log.Errorf("apply: %q  error: %s", fileName, err)
				exitwithstatus.Message("apply: %q  error: %s", fileName, err)
			}
			fmt.Printf("applied: %q  height: %d\n", fileName, height)
		}

	default:
		exitwithstatus.Message("error: no such command: %q", command)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// apply a single diff file, its name must be the next height
func applyFile(fileName string) (uint64, error) {
	fileHeight, err := diffHeight(fileName)
	if nil != err {
		return 0, err
	}
	height, err := state.Height()
	if nil != err {
		return 0, err
	}
	if fileHeight != height+1 {
		return 0, fmt.Errorf("file height: %d  expected: %d", fileHeight, height+1)
	}

	diff, err := loadDiff(fileName)
	if nil != err {
		return 0, err
	}
	return state.Apply(diff)
}
