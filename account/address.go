// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/fault"
)

// layout of an address
//
//   version(1) ++ chain id(1) ++ public key hash(20) ++ checksum(4)
//
// checksum is the first 4 bytes of SHA3-256 of the preceding 22 bytes
const (
	AddressVersion = 0x01
	AddressLength  = 26

	hashLength     = 20
	checksumLength = 4
	checksumStart  = AddressLength - checksumLength
)

// Address - an account identifier
type Address [AddressLength]byte

// NewAddress - create the address of a public key on a chain
func NewAddress(chainId byte, publicKey []byte) Address {
	address := Address{}
	address[0] = AddressVersion
	address[1] = chainId

	hash := sha3.Sum256(publicKey)
	copy(address[2:checksumStart], hash[:hashLength])

	checksum := sha3.Sum256(address[:checksumStart])
	copy(address[checksumStart:], checksum[:checksumLength])
	return address
}

// AddressFromBytes - validate a binary address
func AddressFromBytes(buffer []byte) (Address, error) {
	address := Address{}
	if AddressLength != len(buffer) {
		return address, fault.ErrInvalidAddressLength
	}
	if AddressVersion != buffer[0] {
		return address, fault.ErrAddressVersion
	}
	checksum := sha3.Sum256(buffer[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], buffer[checksumStart:]) {
		return address, fault.ErrAddressChecksumMismatch
	}
	copy(address[:], buffer)
	return address, nil
}

// AddressFromBase58 - decode and validate a base58 address
func AddressFromBase58(s string) (Address, error) {
	buffer, err := base58.Decode(s)
	if nil != err || 0 == len(buffer) {
		return Address{}, fault.ErrCannotDecodeAddress
	}
	return AddressFromBytes(buffer)
}

// ChainId - the network byte of the address
func (address Address) ChainId() byte {
	return address[1]
}

// Bytes - binary form of the address
func (address Address) Bytes() []byte {
	return address[:]
}

// String - base58 form of the address
func (address Address) String() string {
	return base58.Encode(address[:])
}

// MarshalText - base58 form for JSON
func (address Address) MarshalText() ([]byte, error) {
	return []byte(address.String()), nil
}

// UnmarshalText - decode base58 text
func (address *Address) UnmarshalText(s []byte) error {
	a, err := AddressFromBase58(string(s))
	if nil != err {
		return err
	}
	*address = a
	return nil
}
