// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/ledgerd/counter"
)

// Stats - totals since the process started
type Stats struct {
	Applied  uint64 `json:"applied"`
	Rejected uint64 `json:"rejected"`
	Records  uint64 `json:"records"`
}

var (
	appliedCount  counter.Counter
	rejectedCount counter.Counter
	recordCount   counter.Counter
)

// Statistics - diffs applied and rejected and records written
func Statistics() Stats {
	return Stats{
		Applied:  appliedCount.Uint64(),
		Rejected: rejectedCount.Uint64(),
		Records:  recordCount.Uint64(),
	}
}
