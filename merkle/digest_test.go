// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
)

func TestDigestText(t *testing.T) {
	d := merkle.NewDigest([]byte("asset one"))

	s := fmt.Sprintf("%s", d)
	d2, err := merkle.DigestFromBase58(s)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, d, d2, "text round trip")

	buffer, err := json.Marshal(map[merkle.Digest]int{d: 7})
	assert.Nil(t, err, "marshal error")

	m := map[merkle.Digest]int{}
	err = json.Unmarshal(buffer, &m)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, 7, m[d], "map key round trip")
}

func TestDigestFromBytes(t *testing.T) {
	d := merkle.Digest{}
	err := merkle.DigestFromBytes(&d, make([]byte, 31))
	assert.Equal(t, fault.ErrInvalidDigestLength, err, "short buffer")

	buffer := make([]byte, merkle.DigestLength)
	buffer[0] = 0x42
	err = merkle.DigestFromBytes(&d, buffer)
	assert.Nil(t, err, "valid buffer")
	assert.Equal(t, byte(0x42), d[0], "first byte")
}

func TestDigestFromBadText(t *testing.T) {
	_, err := merkle.DigestFromBase58("0OIl")
	assert.Equal(t, fault.ErrCannotDecodeDigest, err, "invalid base58")

	_, err = merkle.DigestFromBase58("3yZe7d")
	assert.Equal(t, fault.ErrInvalidDigestLength, err, "short digest")
}
