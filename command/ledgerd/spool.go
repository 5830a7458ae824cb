// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/mode"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/logger"
)

// diff files are "<height>.json" and become "<height>.json.done"
// once applied
const (
	diffExtension = ".json"
	doneExtension = ".done"
)

type spooler struct {
	log       *logger.L
	directory string
	poll      time.Duration
	watcher   *fsnotify.Watcher
}

func newSpooler(directory string, poll time.Duration) (*spooler, error) {
	log := logger.New("spool")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}
	err = watcher.Add(directory)
	if nil != err {
		watcher.Close()
		return nil, err
	}

	return &spooler{
		log:       log,
		directory: directory,
		poll:      poll,
		watcher:   watcher,
	}, nil
}

// Run - apply diff files as they arrive
//
// a periodic rescan catches files whose events were missed
func (s *spooler) Run(args interface{}, shutdown <-chan struct{}) {

	s.log.Infof("watching: %q", s.directory)
	s.applyAvailable()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-s.watcher.Events:
			if !ok {
				break loop
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue loop
			}
			if !strings.HasSuffix(event.Name, diffExtension) {
				continue loop
			}
			s.log.Debugf("file event: %v", event)
			s.applyAvailable()

		case err, ok := <-s.watcher.Errors:
			if !ok {
				break loop
			}
			s.log.Errorf("watcher error: %s", err)

		case <-time.After(s.poll):
			s.applyAvailable()
		}
	}

	s.watcher.Close()
	s.log.Info("stopped")
}

func (s *spooler) applyAvailable() {
	if mode.Is(mode.Rebuilding) || mode.Is(mode.Stopped) {
		return
	}
	n, err := applyPending(s.log, s.directory)
	if nil != err {
		s.log.Errorf("apply error: %s", err)
		fault.Criticalf("spool: %q  stalled: %s", s.directory, err)
		mode.Set(mode.Stalled)
		return
	}
	mode.Set(mode.Following)
	if n > 0 {
		s.log.Infof("applied: %d diff files", n)
	}
}

// apply every consecutive diff file following the current height
// and mark each one done
func applyPending(log *logger.L, directory string) (int, error) {
	count := 0
	for {
		height, err := state.Height()
		if nil != err {
			return count, err
		}

		fileName := diffFileName(directory, height+1)
		diff, err := loadDiff(fileName)
		if os.IsNotExist(err) {
			return count, nil
		} else if nil != err {
			return count, err
		}

		newHeight, err := state.Apply(diff)
		if nil != err {
			return count, err
		}
		log.Infof("applied: %q  height: %d", fileName, newHeight)

		err = os.Rename(fileName, fileName+doneExtension)
		if nil != err {
			return count, err
		}
		count += 1
	}
}

// rebuild the database from every diff file, applied or not, then
// tag the database as current
func replay(log *logger.L, directory string) (uint64, error) {
	for {
		height, err := state.Height()
		if nil != err {
			return height, err
		}

		fileName := diffFileName(directory, height+1)
		diff, err := loadDiff(fileName + doneExtension)
		if os.IsNotExist(err) {
			diff, err = loadDiff(fileName)
		}
		if os.IsNotExist(err) {
			break
		} else if nil != err {
			return height, err
		}

		_, err = state.Apply(diff)
		if nil != err {
			return height, err
		}
	}

	height, err := state.Height()
	if nil != err {
		return height, err
	}
	log.Warnf("rebuilt to height: %d", height)
	return height, storage.ReindexDone()
}

func diffFileName(directory string, height uint64) string {
	return filepath.Join(directory, strconv.FormatUint(height, 10)+diffExtension)
}

// height encoded in a diff file name
func diffHeight(fileName string) (uint64, error) {
	name := strings.TrimSuffix(filepath.Base(fileName), doneExtension)
	if !strings.HasSuffix(name, diffExtension) {
		return 0, fault.ErrDiffFileName
	}
	height, err := strconv.ParseUint(strings.TrimSuffix(name, diffExtension), 10, 64)
	if nil != err || 0 == height {
		return 0, fault.ErrDiffFileName
	}
	return height, nil
}

func loadDiff(fileName string) (*state.Diff, error) {
	buffer, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	diff := &state.Diff{}
	err = json.Unmarshal(buffer, diff)
	if nil != err {
		return nil, err
	}
	return diff, nil
}
