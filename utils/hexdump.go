// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Hex dump formatting, the universal fallback for undecodable byte ranges.

package utils

import (
	"fmt"
	"strings"
)

// Dumper renders byte ranges as hex lines. The zero value prints 16 bytes per
// line with an address column and no ASCII gutter.
type Dumper struct {
	BytesPerLine int
	NoAddr       bool
	ASCII        bool
}

// Dump writes data as labelled hex lines. An empty label suppresses the label
// line. Trailing whitespace is trimmed from every line.
func (d Dumper) Dump(w *BoundedWriter, label string, data []byte) int {
	start := w.Len()
	bpl := d.BytesPerLine
	if bpl <= 0 {
		bpl = 16
	}

	if label != "" {
		w.Printf("%s:\n", label)
	}

	for i := 0; i < len(data); i += bpl {
		var line strings.Builder

		if !d.NoAddr {
			fmt.Fprintf(&line, "%08x  ", i)
		}

		for j := 0; j < bpl; j++ {
			if i+j < len(data) {
				fmt.Fprintf(&line, "%02x ", data[i+j])
			} else {
				line.WriteString("   ")
			}
		}

		if d.ASCII {
			line.WriteString(" ")
			for j := 0; j < bpl && i+j < len(data); j++ {
				b := data[i+j]
				if b >= 0x20 && b < 0x7f {
					line.WriteByte(b)
				} else {
					line.WriteByte('.')
				}
			}
		}

		w.Printf("        %s\n", strings.TrimRight(line.String(), " "))
	}

	return w.Len() - start
}

// HexDump renders data with the default layout: 16 bytes per line, address
// column, ASCII gutter.
func HexDump(w *BoundedWriter, label string, data []byte) int {
	return Dumper{ASCII: true}.Dump(w, label, data)
}
