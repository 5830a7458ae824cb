// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"strings"

	"github.com/bitmark-inc/ledgerd/fault"
)

// alias limits
const (
	MinimumAliasLength = 4
	MaximumAliasLength = 30

	aliasAlphabet = "-.0123456789@_abcdefghijklmnopqrstuvwxyz"
)

// Alias - a human readable name bound to an address
type Alias string

// NewAlias - validate an alias name
func NewAlias(name string) (Alias, error) {
	if len(name) < MinimumAliasLength || len(name) > MaximumAliasLength {
		return "", fault.ErrAliasLength
	}
	for _, c := range name {
		if !strings.ContainsRune(aliasAlphabet, c) {
			return "", fault.ErrAliasCharacter
		}
	}
	return Alias(name), nil
}

// Bytes - binary form of an alias
func (alias Alias) Bytes() []byte {
	return []byte(alias)
}

// String - for the fmt package
func (alias Alias) String() string {
	return string(alias)
}

// UnmarshalText - validate while decoding
func (alias *Alias) UnmarshalText(s []byte) error {
	a, err := NewAlias(string(s))
	if nil != err {
		return err
	}
	*alias = a
	return nil
}
