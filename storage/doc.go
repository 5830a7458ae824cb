// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk ledger state
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. height       = big endian uint64 (8 bytes)
// 4. address      = 26 byte account address
// 5. digest       = 32 byte identifier (asset, transaction, lease, order, hash)
// 6. count/index  = big endian uint64 (8 bytes)
// 7. amount       = big endian two's complement int64 (8 bytes)
// 8. list         = varint count ++ entries
//
// Chain:
//
//   h                          - height of last applied diff
//                                data: height
//
// Balances:
//
//   b ++ address               - native balance
//                                data: balance ++ lease in ++ lease out
//   a ++ address ++ asset id   - asset balance
//                                data: amount
//   s ++ address               - asset ids ever held by address
//                                data: list of digest
//
// Assets and orders:
//
//   i ++ asset id              - asset info
//                                data: reissuable(1) ++ volume ++ varint script length ++ script
//   o ++ order id              - order fill
//                                data: volume ++ fee
//
// Leases:
//
//   l ++ lease id              - lease flag
//                                data: 0x00 or 0x01
//   L                          - ids ever set active (never pruned)
//                                data: list of digest
//
// Aliases:
//
//   A ++ alias                 - alias binding
//                                data: address
//   r ++ address               - aliases ever bound to address (stale entries kept)
//                                data: list of (varint length ++ alias)
//
// Transactions:
//
//   T ++ tx id                 - confirmed transaction
//                                data: height ++ transaction bytes
//   c ++ address               - number of transactions for address
//                                data: count
//   t ++ address ++ index      - transaction of address
//                                data: tx id
//   p ++ hash                  - payment hash
//                                data: tx id
//
// Snapshots:
//
//   H ++ address               - height of newest snapshot
//                                data: height
//   S ++ address ++ height     - balance snapshot
//                                data: previous height ++ balance ++ effective balance
//
// Version:
//
//   0x00 ++ "VERSION"          - schema version (outside all pools)
//                                data: big endian uint32
package storage
