// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Sense-key specific field decoding, shared by the fixed layout (bytes 15-17)
// and the descriptor layout (descriptor type 2, bytes 4-6).

package sense

import (
	"github.com/hreinecke/sg3-utils-sub007/scsi"
	"github.com/hreinecke/sg3-utils-sub007/utils"
)

// progressPct converts a 16-bit progress indication into whole percent and
// hundredths. The fixed-point arithmetic truncates; it must not be replaced
// with rounding.
func progressPct(p uint16) (int, int) {
	v := int(p) * 100
	return v / 65536, (v % 65536) / 656
}

// renderSKS interprets a 3-byte sense-key specific group according to the
// sense key of the surrounding buffer (not any per-descriptor key). It reports
// false when the key has no defined sense-key specific format.
func renderSKS(w *utils.BoundedWriter, key byte, sks []byte) bool {
	if len(sks) < 3 {
		return false
	}

	fp := uint16(sks[1])<<8 | uint16(sks[2])

	switch key {
	case scsi.SK_ILLEGAL_REQUEST, scsi.SK_COPY_ABORTED:
		where := "Data parameters"
		if sks[0]&0x40 != 0 {
			where = "Command"
		}

		if key == scsi.SK_COPY_ABORTED {
			w.Printf("  Segment pointer: Error in %s: byte %d", where, fp)
		} else {
			w.Printf("  Error in %s: byte %d", where, fp)
		}

		if sks[0]&0x08 != 0 {
			w.Printf(" bit %d", sks[0]&0x07)
		}
		w.Printf("\n")
	case scsi.SK_HARDWARE_ERROR, scsi.SK_MEDIUM_ERROR, scsi.SK_RECOVERED_ERROR:
		w.Printf("  Actual retry count: %d\n", fp)
	case scsi.SK_NO_SENSE, scsi.SK_NOT_READY:
		whole, frac := progressPct(fp)
		w.Printf("  Progress indication: %d.%02d%%\n", whole, frac)
	case scsi.SK_UNIT_ATTENTION:
		w.Printf("  Overflow flag: %d\n", sks[0]&0x1)
	default:
		return false
	}

	return true
}
