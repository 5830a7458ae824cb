// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state_test

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/logger"
)

func TestMain(m *testing.M) {
	logDirectory, err := ioutil.TempDir("", "state-log")
	if nil != err {
		panic(err)
	}

	logging := logger.Configuration{
		Directory: logDirectory,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	rc := m.Run()

	logger.Finalise()
	os.RemoveAll(logDirectory)
	os.Exit(rc)
}

// fresh memory database and engine
func setup(t *testing.T) {
	if _, err := storage.Initialise("", storage.ReadWrite); nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	if err := state.Initialise(); nil != err {
		storage.Finalise()
		t.Fatalf("state initialise error: %s", err)
	}
}

func teardown() {
	_ = state.Finalise()
	storage.Finalise()
}

func apply(t *testing.T, diff *state.Diff) uint64 {
	height, err := state.Apply(diff)
	if nil != err {
		t.Fatalf("apply error: %s", err)
	}
	return height
}

func address(name string) account.Address {
	return account.NewAddress('T', []byte(name))
}

func digest(name string) merkle.Digest {
	return merkle.NewDigest([]byte(name))
}

var (
	alice   = address("alice")
	bob     = address("bob")
	charlie = address("charlie")

	gold   = digest("gold")
	silver = digest("silver")
)
