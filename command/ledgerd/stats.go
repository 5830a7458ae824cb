// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"runtime"
	"time"

	"github.com/bitmark-inc/ledgerd/mode"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/logger"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

type memstats struct {
	log *logger.L
}

// Run - periodically log memory use and the ledger height
func (m *memstats) Run(args interface{}, shutdown <-chan struct{}) {

	m.log = logger.New("memory")

loop:
	for {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)

		text, err := json.Marshal(ms)
		if nil != err {
			m.log.Errorf("marshal error: %s", err)
		} else {
			m.log.Debugf("stats: %s", text)
		}
		a := ms.Alloc / mega
		t := ms.TotalAlloc / mega
		s := ms.Sys / mega

		height, err := state.Height()
		if nil != err {
			m.log.Errorf("height error: %s", err)
		}
		m.log.Infof("height: %d  allocated: %d M  cumulative: %d M  OS virtual: %d M", height, a, t, s)

		st := state.Statistics()
		m.log.Infof("mode: %s  diffs applied: %d  rejected: %d  records written: %d", mode.String(), st.Applied, st.Rejected, st.Records)

		select {
		case <-shutdown:
			break loop
		case <-time.After(statsDelay):
		}
	}
}
