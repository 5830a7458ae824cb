// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"testing"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
)

func TestNewAlias(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"bob1", nil},
		{"alice@home.net", nil},
		{"a-b_c.d", nil},
		{"abc", fault.ErrAliasLength},
		{"abcdefghijklmnopqrstuvwxyz01234", fault.ErrAliasLength},
		{"Bobby", fault.ErrAliasCharacter},
		{"bob by", fault.ErrAliasCharacter},
	}

	for i, item := range tests {
		alias, err := account.NewAlias(item.name)
		if item.err != err {
			t.Errorf("%d: %q: error: %v  expected: %v", i, item.name, err, item.err)
			continue
		}
		if nil == err && item.name != alias.String() {
			t.Errorf("%d: alias: %q  expected: %q", i, alias, item.name)
		}
	}
}
