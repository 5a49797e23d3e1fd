// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identifier_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/registryd/identifier"
	"github.com/bitmark-inc/registryd/storage"
)

func setup(t *testing.T) func() {
	t.Helper()

	dir, err := os.MkdirTemp("", "registryd-identifier-test")
	if nil != err {
		t.Fatalf("cannot create temporary directory: %s", err)
	}

	_ = logger.Initialise(logger.Configuration{
		Directory: dir,
		File:      "test.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels:    map[string]string{logger.DefaultTag: "critical"},
	})

	err = storage.Initialise(filepath.Join(dir, "test.leveldb"), storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	return func() {
		storage.Finalise()
		logger.Finalise()
		os.RemoveAll(dir)
	}
}

// ids start at one and each name counts independently
func TestIndependentSequences(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	trx, err := storage.NewDBTransaction()
	assert.NoError(t, err, "begin transaction")

	assert.Equal(t, uint64(1), identifier.New(identifier.Asset), "first asset id")
	assert.Equal(t, uint64(2), identifier.New(identifier.Asset), "second asset id")
	assert.Equal(t, uint64(1), identifier.New(identifier.Escrow), "first escrow id")
	assert.Equal(t, uint64(1), identifier.New(identifier.History), "first history id")

	assert.NoError(t, trx.Commit(), "commit")

	assert.Equal(t, uint64(2), identifier.Current(identifier.Asset), "asset high water")
	assert.Equal(t, uint64(1), identifier.Current(identifier.Escrow), "escrow high water")
	assert.Equal(t, uint64(0), identifier.Current("unused"), "unused sequence")
}

// an aborted allocation rolls back with its transaction
func TestAbortRollsBack(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	trx, _ := storage.NewDBTransaction()
	identifier.New(identifier.Asset)
	trx.Abort()

	assert.Equal(t, uint64(0), identifier.Current(identifier.Asset), "aborted allocation persisted")

	trx, _ = storage.NewDBTransaction()
	assert.Equal(t, uint64(1), identifier.New(identifier.Asset), "restart after abort")
	assert.NoError(t, trx.Commit(), "commit")
	assert.Equal(t, uint64(1), identifier.Current(identifier.Asset), "committed allocation")
}
