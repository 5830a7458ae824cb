// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strconv"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
)

var (
	ErrRequiredAddress  = fault.InvalidError("address is required")
	ErrRequiredAlias    = fault.InvalidError("alias is required")
	ErrRequiredDatabase = fault.InvalidError("database file is required")
	ErrRequiredHeight   = fault.InvalidError("height is required")
	ErrRequiredId       = fault.InvalidError("identifier is required")
	ErrTooManyArguments = fault.InvalidError("too many arguments")
)

// database is required
func checkDatabase(file string) (string, error) {
	if "" == file {
		return "", ErrRequiredDatabase
	}
	return os.ExpandEnv(file), nil
}

func checkAddress(s string) (account.Address, error) {
	if "" == s {
		return account.Address{}, ErrRequiredAddress
	}
	return account.AddressFromBase58(s)
}

func checkAlias(s string) (account.Alias, error) {
	if "" == s {
		return "", ErrRequiredAlias
	}
	return account.NewAlias(s)
}

// asset, order, lease and transaction ids and payment hashes
func checkDigest(s string) (merkle.Digest, error) {
	if "" == s {
		return merkle.Digest{}, ErrRequiredId
	}
	return merkle.DigestFromBase58(s)
}

// heights and confirmation counts
func checkUint64(s string) (uint64, error) {
	if "" == s {
		return 0, ErrRequiredHeight
	}
	return strconv.ParseUint(s, 10, 64)
}

func checkArgumentCount(args []string, maximum int) error {
	if len(args) > maximum {
		return ErrTooManyArguments
	}
	return nil
}
