// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Fixed format (response codes 0x70/0x71) sense data rendering.

package sense

import (
	"github.com/hreinecke/sg3-utils-sub007/scsi"
	"github.com/hreinecke/sg3-utils-sub007/utils"
)

// renderFixedFormat renders the legacy fixed layout. The set of fields that
// can be rendered grows with the received length; each group below guards on
// the offsets it needs rather than trusting the declared additional length.
func (r *Renderer) renderFixedFormat(w *utils.BoundedWriter, sb []byte, h Header) {
	n := len(sb)
	names := r.names()

	if n < 3 {
		w.Printf("Fixed format sense buffer too short (%d bytes)\n", n)
		return
	}

	w.Printf("Fixed format, %s;  Sense key: %s\n", currency(h.Deferred),
		scsi.SenseKeyString(names, int(h.Key)))

	if h.Filemark {
		w.Printf("  Filemark\n")
	}
	if h.EOM {
		w.Printf("  EOM (end-of-medium)\n")
	}
	if h.ILI {
		w.Printf("  ILI (incorrect length indicator)\n")
	}

	if n >= 7 && (h.Valid || h.Info != 0) {
		if h.Valid {
			w.Printf("  Info fld=0x%x\n", h.Info)
		} else {
			w.Printf("  Info fld=0x%x (not valid)\n", h.Info)
		}
	}

	if n >= 8 {
		if int(sb[7])+8 > n {
			w.Printf("  Additional sense length: %d (truncated)\n", sb[7])
		} else {
			w.Printf("  Additional sense length: %d\n", sb[7])
		}
	}

	if n >= 12 && h.CmdInfo != 0 {
		w.Printf("  Command-specific information: 0x%08x\n", h.CmdInfo)
	}

	if n >= 14 {
		// SAT carries the ATA register block in the fixed format when the
		// additional sense code reports pass-through information available.
		if h.ASC == 0x00 && h.ASCQ == 0x1d {
			renderFixedATAReturn(w, sb)
		}

		w.Printf("  Additional sense: %s\n", scsi.AdditionalSenseString(names, h.ASC, h.ASCQ))
	}

	if n >= 18 {
		if h.FRU != 0 {
			w.Printf("  Field replaceable unit code: %d\n", h.FRU)
		}

		if h.SKSV {
			if !renderSKS(w, h.Key, h.SKS[:]) {
				w.Printf("  Sense key specific bytes not processed; in hex:\n")
				utils.HexDump(w, "", h.SKS[:])
			}
		}
	}
}

// renderFixedATAReturn decodes the 12-byte SAT ATA register block embedded in
// the information and command-specific fields of a fixed format buffer.
// Caller guarantees at least 14 bytes.
func renderFixedATAReturn(w *utils.BoundedWriter, sb []byte) {
	errReg := sb[3]
	status := sb[4]
	device := sb[5]
	count := sb[6]
	flags := sb[8]
	lba := uint32(sb[9]) | uint32(sb[10])<<8 | uint32(sb[11])<<16

	w.Printf("  ATA pass through: status=0x%02x error=0x%02x device=0x%02x count=0x%02x\n",
		status, errReg, device, count)
	w.Printf("   extend=%d lba=0x%06x\n", (flags>>7)&1, lba)
}
