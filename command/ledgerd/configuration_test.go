// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetConfiguration(t *testing.T) {
	directory, err := ioutil.TempDir(testDirectory, "config")
	assert.Nil(t, err, "temp dir error")
	defer os.RemoveAll(directory)

	fileName := filepath.Join(directory, "ledgerd.conf")
	err = ioutil.WriteFile(fileName, []byte(`
local M = {}
M.data_directory = "."
M.database = { name = "test.leveldb" }
M.spool = { directory = "/tmp/" .. program .. "-spool-test", poll = 0 }
M.logging = {
  size = 2048,
  count = 3,
  levels = { DEFAULT = "info", state = "debug" },
}
return M
`), 0600)
	assert.Nil(t, err, "write error")
	defer os.RemoveAll("/tmp/ledgerd-spool-test")

	options, err := getConfiguration(fileName, map[string]string{"program": "ledgerd"})
	assert.Nil(t, err, "configuration error")

	assert.Equal(t, filepath.Clean(directory), options.DataDirectory, "data directory")
	assert.Equal(t, filepath.Join(directory, "data"), options.Database.Directory, "database directory")
	assert.Equal(t, filepath.Join(directory, "data", "test.leveldb"), options.Database.Name, "database")
	assert.Equal(t, "/tmp/ledgerd-spool-test", options.Spool.Directory, "absolute spool")
	assert.Equal(t, defaultSpoolPoll, options.Spool.Poll, "poll default")
	assert.Equal(t, filepath.Join(directory, "log"), options.Logging.Directory, "log directory")
	assert.Equal(t, defaultLogFile, options.Logging.File, "log file")
	assert.Equal(t, 2048, options.Logging.Size, "log size")
	assert.Equal(t, "debug", options.Logging.Levels["state"], "log level")

	info, err := os.Stat(options.Spool.Directory)
	assert.Nil(t, err, "spool created")
	assert.True(t, info.IsDir(), "spool is a directory")
}

func TestGetConfigurationErrors(t *testing.T) {
	directory, err := ioutil.TempDir(testDirectory, "config")
	assert.Nil(t, err, "temp dir error")
	defer os.RemoveAll(directory)

	tests := []string{
		`return {}`,
		`return { data_directory = "~" }`,
		`return { data_directory = "/nonexistent/ledgerd" }`,
		`return { data_directory = ".", database = { name = "sub/x.leveldb" } }`,
	}
	for i, text := range tests {
		fileName := filepath.Join(directory, "bad.conf")
		err := ioutil.WriteFile(fileName, []byte(text), 0600)
		assert.Nil(t, err, "%d: write error", i)

		_, err = getConfiguration(fileName, nil)
		assert.NotNil(t, err, "%d: expected error for: %s", i, text)
	}
}
