// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package staterecord - aggregate values of the ledger state and
// their fixed byte layouts
package staterecord

// Combinable - a record merged by an associative, commutative
// operation with an identity value
//
// IsEmpty reports whether the receiver is the identity, so combining
// with it leaves any record unchanged
type Combinable[T any] interface {
	Combine(T) T
	IsEmpty() bool
	Pack() []byte
}
