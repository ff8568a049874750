// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package sensedb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenMissingFile(t *testing.T) {
	assert := assert.New(t)

	db, err := Open(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	assert.NoError(err)

	_, ok := db.Lookup(0x24, 0x00)
	assert.False(ok)

	// The overlay over an empty database is just the built-in tables
	names := db.Names(nil)
	s, ok := names.AdditionalSenseName(0x24, 0x00)
	assert.True(ok)
	assert.Equal("Invalid field in cdb", s)
}

func TestOpenAndOverlay(t *testing.T) {
	assert := assert.New(t)

	dbfile := filepath.Join(t.TempDir(), "sensedb.yaml")
	data := `codes:
  - asc: 0x99
    ascq: 0x01
    text: frobnicator jammed
  - asc: 0x24
    ascq: 0x00
    text: vendor wording for invalid cdb field
`
	assert.NoError(os.WriteFile(dbfile, []byte(data), 0644))

	db, err := Open(dbfile)
	assert.NoError(err)

	s, ok := db.Lookup(0x99, 0x01)
	assert.True(ok)
	assert.Equal("frobnicator jammed", s)

	names := db.Names(nil)

	// Database entries win over the built-in table
	s, _ = names.AdditionalSenseName(0x24, 0x00)
	assert.Equal("vendor wording for invalid cdb field", s)

	// Everything else falls through
	s, ok = names.AdditionalSenseName(0x00, 0x1d)
	assert.True(ok)
	assert.Equal("ATA pass through information available", s)

	s, ok = names.SenseKeyName(0x5)
	assert.True(ok)
	assert.Equal("Illegal Request", s)
}

func TestOpenBadYAML(t *testing.T) {
	assert := assert.New(t)

	dbfile := filepath.Join(t.TempDir(), "bad.yaml")
	assert.NoError(os.WriteFile(dbfile, []byte("codes: {not a list"), 0644))

	_, err := Open(dbfile)
	assert.Error(err)
}
