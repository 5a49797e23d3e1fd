// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package clock - the logical block height
//
// all timestamps and expiration checks in the registry are block
// heights, not wall clock times; the height only moves forward
package clock

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/background"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/mode"
	"github.com/bitmark-inc/registryd/storage"
)

// key in the identifiers pool holding the persisted height
var heightKey = []byte("height")

// globals for this module
type clockData struct {
	sync.RWMutex // to allow locking

	log    *logger.L
	height uint64

	interval time.Duration

	// for background
	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData clockData

// Initialise - setup the clock
//
// restores the height persisted by the last run; a zero interval
// disables the background ticker so tests and tools can drive the
// height directly
func Initialise(interval time.Duration) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("clock")
	globalData.log.Info("starting…")

	height, found := storage.Pool.Identifiers.GetN(heightKey)
	if !found {
		height = 0
	}
	globalData.height = height
	globalData.interval = interval
	globalData.log.Infof("height: %d", height)

	globalData.initialised = true

	if 0 == interval {
		return nil
	}

	processes := background.Processes{
		&ticker{},
	}
	globalData.background = background.Start(processes, nil)

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	if nil != globalData.background {
		globalData.background.Stop()
	}

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// Height - the current block height
func Height() uint64 {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.height
}

// Advance - move the height forward by one block and persist it
//
// the storage transaction is acquired before the clock lock: mutating
// operations read the height while holding the transaction, so taking
// the locks in the other order would deadlock against them
func Advance() (uint64, error) {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}

	globalData.Lock()
	defer globalData.Unlock()

	height := globalData.height + 1
	storage.Pool.Identifiers.PutN(heightKey, height)
	err = trx.Commit()
	if nil != err {
		trx.Abort()
		return 0, err
	}
	globalData.height = height
	return height, nil
}

// Set - force the height, only for testing
func Set(height uint64) error {
	if !mode.IsTesting() {
		logger.Panic("clock.Set outside of testing mode")
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	globalData.Lock()
	defer globalData.Unlock()

	storage.Pool.Identifiers.PutN(heightKey, height)
	err = trx.Commit()
	if nil != err {
		trx.Abort()
		return err
	}
	globalData.height = height
	return nil
}

// background process advancing the height at a fixed interval
type ticker struct{}

func (t *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	log := globalData.log

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case <-time.After(globalData.interval):
			if mode.Is(mode.Stopped) {
				continue loop
			}
			height, err := Advance()
			if nil != err {
				log.Errorf("advance error: %s", err)
				continue loop
			}
			log.Debugf("height: %d", height)
		}
	}
}
