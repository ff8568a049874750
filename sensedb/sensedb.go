// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package sensedb layers a YAML-loadable additional sense code database over
// the built-in name tables.
package sensedb

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/hreinecke/sg3-utils-sub007/scsi"
)

// Entry is one additional sense code record.
type Entry struct {
	ASC  byte   `yaml:"asc"`
	ASCQ byte   `yaml:"ascq"`
	Text string `yaml:"text"`
}

type DB struct {
	Codes []Entry `yaml:"codes"`

	index map[scsi.AscPair]string
}

// Open reads a YAML-formatted sense code database. A missing file is not an
// error; it yields an empty database so decoding falls through to the
// built-in tables.
func Open(dbfile string) (DB, error) {
	var db DB

	f, err := os.Open(dbfile)
	if err != nil {
		return db, nil
	}

	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&db); err != nil {
		return db, errors.Wrapf(err, "decoding sense code database %s", dbfile)
	}

	db.buildIndex()
	return db, nil
}

func (db *DB) buildIndex() {
	db.index = make(map[scsi.AscPair]string, len(db.Codes))
	for _, e := range db.Codes {
		db.index[scsi.AscPair{ASC: e.ASC, ASCQ: e.ASCQ}] = e.Text
	}
}

// Lookup returns the database text for an ASC/ASCQ pair.
func (db *DB) Lookup(asc, ascq byte) (string, bool) {
	s, ok := db.index[scsi.AscPair{ASC: asc, ASCQ: ascq}]
	return s, ok
}

// Names returns a resolver that prefers database entries and falls back to
// base for everything else. A nil base falls back to the built-in tables.
func (db *DB) Names(base scsi.NameResolver) scsi.NameResolver {
	if base == nil {
		base = scsi.DefaultNames{}
	}

	return overlay{db: db, base: base}
}

type overlay struct {
	db   *DB
	base scsi.NameResolver
}

func (o overlay) SenseKeyName(key byte) (string, bool) {
	return o.base.SenseKeyName(key)
}

func (o overlay) AdditionalSenseName(asc, ascq byte) (string, bool) {
	if s, ok := o.db.Lookup(asc, ascq); ok {
		return s, true
	}

	return o.base.AdditionalSenseName(asc, ascq)
}

func (o overlay) DesignatorTypeName(t byte) (string, bool) {
	return o.base.DesignatorTypeName(t)
}

func (o overlay) ProtocolName(p byte) (string, bool) {
	return o.base.ProtocolName(p)
}

func (o overlay) PeripheralTypeName(t byte) (string, bool) {
	return o.base.PeripheralTypeName(t)
}
