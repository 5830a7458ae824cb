// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package statekey - construct the pool-relative part of storage keys
//
// the pool prefix byte is added by the storage handle; every suffix
// here is built from fixed width components, except an alias which
// is always the whole suffix of its pool
package statekey

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
)

const uint64Length = 8

// Singleton - key of a pool holding a single record
func Singleton() []byte {
	return []byte{}
}

// Address - key of a per-address record
func Address(address account.Address) []byte {
	key := make([]byte, account.AddressLength)
	copy(key, address[:])
	return key
}

// Digest - key of a per-asset, per-transaction, per-lease or per-order record
func Digest(digest merkle.Digest) []byte {
	key := make([]byte, merkle.DigestLength)
	copy(key, digest[:])
	return key
}

// Alias - key of an alias binding
func Alias(alias account.Alias) []byte {
	return alias.Bytes()
}

// Uint64 - big endian bytes of an integer
func Uint64(n uint64) []byte {
	key := make([]byte, uint64Length)
	binary.BigEndian.PutUint64(key, n)
	return key
}

// AddressAsset - key of an asset balance
func AddressAsset(address account.Address, asset merkle.Digest) []byte {
	key := make([]byte, 0, account.AddressLength+merkle.DigestLength)
	key = append(key, address[:]...)
	return append(key, asset[:]...)
}

// AddressIndex - key of an account sequence entry or a snapshot height
//
// big endian index keeps one address's entries in ascending order
func AddressIndex(address account.Address, n uint64) []byte {
	key := make([]byte, account.AddressLength+uint64Length)
	copy(key, address[:])
	binary.BigEndian.PutUint64(key[account.AddressLength:], n)
	return key
}

// SplitAddressIndex - decode a key built by AddressIndex
func SplitAddressIndex(key []byte) (account.Address, uint64, error) {
	if account.AddressLength+uint64Length != len(key) {
		return account.Address{}, 0, fault.ErrInvalidRecordLength
	}
	address, err := account.AddressFromBytes(key[:account.AddressLength])
	if nil != err {
		return address, 0, err
	}
	return address, binary.BigEndian.Uint64(key[account.AddressLength:]), nil
}

// SplitAddressAsset - decode a key built by AddressAsset
func SplitAddressAsset(key []byte) (account.Address, merkle.Digest, error) {
	asset := merkle.Digest{}
	if account.AddressLength+merkle.DigestLength != len(key) {
		return account.Address{}, asset, fault.ErrInvalidRecordLength
	}
	address, err := account.AddressFromBytes(key[:account.AddressLength])
	if nil != err {
		return address, asset, err
	}
	err = merkle.DigestFromBytes(&asset, key[account.AddressLength:])
	return address, asset, err
}
