// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"encoding/hex"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/fault"
)

// DigestLength - number of bytes in the digest
const DigestLength = 32

// Digest - identifier of assets, transactions, leases and orders
//
// the bytes are stored exactly as received, the text form is base58
// to convert to bytes just use d[:]
type Digest [DigestLength]byte

// NewDigest - create a digest from a byte slice
func NewDigest(record []byte) Digest {
	return sha3.Sum256(record)
}

// DigestFromBytes - convert and validate a binary byte slice to a digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if DigestLength != len(buffer) {
		return fault.ErrInvalidDigestLength
	}
	copy(digest[:], buffer)
	return nil
}

// DigestFromBase58 - convert base58 text to a digest
func DigestFromBase58(s string) (Digest, error) {
	digest := Digest{}
	buffer, err := base58.Decode(s)
	if nil != err {
		return digest, fault.ErrCannotDecodeDigest
	}
	err = DigestFromBytes(&digest, buffer)
	return digest, err
}

// String - base58 text for use by the fmt package (for %s)
func (digest Digest) String() string {
	return base58.Encode(digest[:])
}

// GoString - hex form for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<digest:" + hex.EncodeToString(digest[:]) + ">"
}

// MarshalText - convert digest to base58 text
func (digest Digest) MarshalText() ([]byte, error) {
	return []byte(digest.String()), nil
}

// UnmarshalText - convert base58 text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	d, err := DigestFromBase58(string(s))
	if nil != err {
		return err
	}
	*digest = d
	return nil
}
