// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundedWriter(t *testing.T) {
	assert := assert.New(t)

	w := NewBoundedWriter(10)
	assert.Equal(5, w.Printf("%s", "hello"))
	assert.Equal(5, w.Len())

	// Only 5 characters of room remain
	assert.Equal(5, w.Printf(" world"))
	assert.Equal(10, w.Len())
	assert.Equal("hello worl", w.String())

	// Full writer accepts nothing
	assert.Equal(0, w.Printf("x"))
	assert.Equal(10, w.Len())

	n, err := w.Write([]byte("y"))
	assert.NoError(err)
	assert.Equal(0, n)
}

func TestBoundedWriterZeroCapacity(t *testing.T) {
	assert := assert.New(t)

	w := NewBoundedWriter(0)
	assert.Equal(0, w.Printf("anything"))
	assert.Equal("", w.String())

	w = NewBoundedWriter(-3)
	assert.Equal(0, w.Printf("anything"))
}

func TestHexDumpPlain(t *testing.T) {
	assert := assert.New(t)

	w := NewBoundedWriter(1024)
	Dumper{}.Dump(w, "", []byte{0x70, 0x00, 0x05})

	// Trailing whitespace from the padded hex columns must be trimmed.
	assert.Equal("        00000000  70 00 05\n", w.String())
}

func TestHexDumpASCII(t *testing.T) {
	assert := assert.New(t)

	w := NewBoundedWriter(1024)
	HexDump(w, "raw bytes", []byte("pass\x00through"))

	lines := strings.Split(strings.TrimRight(w.String(), "\n"), "\n")
	assert.Equal(2, len(lines))
	assert.Equal("raw bytes:", lines[0])
	assert.True(strings.HasSuffix(lines[1], "pass.through"))
	assert.Contains(lines[1], "70 61 73 73 00 74 68 72 6f 75 67 68")
}

func TestHexDumpWidth(t *testing.T) {
	assert := assert.New(t)

	w := NewBoundedWriter(1024)
	Dumper{BytesPerLine: 4, NoAddr: true}.Dump(w, "", []byte{1, 2, 3, 4, 5})

	assert.Equal("        01 02 03 04\n        05\n", w.String())
}
