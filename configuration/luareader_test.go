// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2021 Famecoin Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/famecoin/neo-scan/configuration"
)

type testSettings struct {
	Chain   string      `gluamapper:"chain"`
	Workers int         `gluamapper:"workers"`
	Storage testStorage `gluamapper:"storage"`
}

type testStorage struct {
	Backend  string `gluamapper:"backend"`
	Database string `gluamapper:"database"`
}

const sampleConfiguration = `
local M = {}

M.chain = "testnet"
M.workers = 8

M.storage = {
    backend = "leveldb",
    database = arg[0] .. ".leveldb",
}

return M
`

func TestParseConfigurationFile(t *testing.T) {
	dir := t.TempDir()
	fileName := filepath.Join(dir, "test.conf")

	err := os.WriteFile(fileName, []byte(sampleConfiguration), 0600)
	assert.NoError(t, err, "write sample")

	settings := &testSettings{}
	err = configuration.ParseConfigurationFile(fileName, settings)
	assert.NoError(t, err, "parse")

	assert.Equal(t, "testnet", settings.Chain, "wrong chain")
	assert.Equal(t, 8, settings.Workers, "wrong workers")
	assert.Equal(t, "leveldb", settings.Storage.Backend, "wrong backend")

	// arg[0] inside the script is the configuration file name
	assert.Equal(t, fileName+".leveldb", settings.Storage.Database, "wrong database")
}

func TestParseMissingFile(t *testing.T) {
	settings := &testSettings{}
	err := configuration.ParseConfigurationFile("/nonexistent/no.conf", settings)
	assert.Error(t, err, "missing file must fail")
}
