// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Descriptor format (response codes 0x72/0x73) sense data rendering.

package sense

import (
	"encoding/binary"
	"fmt"

	"github.com/hreinecke/sg3-utils-sub007/scsi"
	"github.com/hreinecke/sg3-utils-sub007/utils"
	"github.com/hreinecke/sg3-utils-sub007/vpd"
)

// descDecoder renders one descriptor. dp spans the whole descriptor (type and
// length bytes included) and is already clamped to the received buffer.
type descDecoder func(r *Renderer, w *utils.BoundedWriter, h Header, dp []byte, depth int)

var descDecoders map[byte]descDecoder

// Populated in init to break the initialization cycle between descDecoders
// and decForwarded, which recurses through the renderer back into this map.
func init() {
	descDecoders = map[byte]descDecoder{
		scsi.SDESC_INFORMATION:        decInformation,
		scsi.SDESC_COMMAND_SPECIFIC:   decCommandSpecific,
		scsi.SDESC_SENSE_KEY_SPECIFIC: decSenseKeySpecific,
		scsi.SDESC_FRU:                decFRU,
		scsi.SDESC_STREAM_COMMANDS:    decStreamCommands,
		scsi.SDESC_BLOCK_COMMANDS:     decBlockCommands,
		scsi.SDESC_OSD_OBJECT_IDENT:   decOSD,
		scsi.SDESC_OSD_RESP_INTEGRITY: decOSD,
		scsi.SDESC_OSD_ATTR_IDENT:     decOSD,
		scsi.SDESC_ATA_RETURN:         decATAReturn,
		scsi.SDESC_PROGRESS:           decProgress,
		scsi.SDESC_REFERRAL:           decReferral,
		scsi.SDESC_FORWARDED:          decForwarded,
		scsi.SDESC_DIRECT_ACCESS:      decDirectAccess,
		scsi.SDESC_DEVICE_DESIGNATION: decDeviceDesignation,
	}
}

var forwardedSources = map[byte]string{
	0: "unknown",
	1: "extended copy source",
	2: "extended copy destination",
}

var designationReasons = map[byte]string{
	0: "not specified",
	1: "preferred administrative logical unit",
	2: "configured administrative logical unit",
	3: "physical device",
	4: "storage element",
}

// renderDescriptorFormat walks the TLV descriptor list following the 8-byte
// header. The declared additional length has already been clamped against the
// received buffer; each descriptor's own length is clamped again before use.
func (r *Renderer) renderDescriptorFormat(w *utils.BoundedWriter, sb []byte, h Header, depth int) {
	names := r.names()

	w.Printf("Descriptor format, %s;  Sense key: %s\n", currency(h.Deferred),
		scsi.SenseKeyString(names, int(h.Key)))
	w.Printf("  Additional sense: %s\n", scsi.AdditionalSenseString(names, h.ASC, h.ASCQ))

	if len(sb) < 8 || h.AddLength <= 0 {
		return
	}

	ds := sb[8 : 8+h.AddLength]

	for k := 0; k < len(ds); {
		dt := ds[k]

		if k+1 >= len(ds) {
			// Even the length byte is missing; the walk cannot continue.
			w.Printf("  short descriptor at offset %d: type 0x%02x, length unreadable\n", k, dt)
			break
		}

		dl := int(ds[k+1])
		truncated := false
		if k+2+dl > len(ds) {
			dl = len(ds) - k - 2
			truncated = true
		}

		dp := ds[k : k+2+dl]

		if dec, ok := descDecoders[dt]; ok {
			dec(r, w, h, dp, depth)
		} else if dt >= 0x80 {
			w.Printf("  Vendor specific descriptor type 0x%02x; in hex:\n", dt)
			utils.HexDump(w, "", dp)
		} else {
			w.Printf("  Unknown descriptor type 0x%02x; in hex:\n", dt)
			utils.HexDump(w, "", dp)
		}

		if truncated {
			w.Printf("  (descriptor truncated by buffer end)\n")
		}

		k += dl + 2
	}
}

func shortDesc(w *utils.BoundedWriter, what string, dp []byte) {
	w.Printf("  %s descriptor too short; in hex:\n", what)
	utils.HexDump(w, "", dp)
}

func decInformation(r *Renderer, w *utils.BoundedWriter, h Header, dp []byte, depth int) {
	if len(dp) < 12 {
		shortDesc(w, "Information", dp)
		return
	}

	if dp[2]&0x80 == 0 {
		w.Printf("  Information field not valid; in hex:\n")
		utils.HexDump(w, "", dp)
		return
	}

	w.Printf("  Information: 0x%016x\n", binary.BigEndian.Uint64(dp[4:12]))
}

func decCommandSpecific(r *Renderer, w *utils.BoundedWriter, h Header, dp []byte, depth int) {
	if len(dp) < 12 {
		shortDesc(w, "Command-specific information", dp)
		return
	}

	w.Printf("  Command-specific information: 0x%016x\n", binary.BigEndian.Uint64(dp[4:12]))
}

func decSenseKeySpecific(r *Renderer, w *utils.BoundedWriter, h Header, dp []byte, depth int) {
	if len(dp) < 8 {
		shortDesc(w, "Sense key specific", dp)
		return
	}

	// The format is selected by the sense key of the enclosing buffer, not by
	// anything inside this descriptor.
	if !renderSKS(w, h.Key, dp[4:7]) {
		w.Printf("  Sense key specific data not processed; in hex:\n")
		utils.HexDump(w, "", dp)
	}
}

func decFRU(r *Renderer, w *utils.BoundedWriter, h Header, dp []byte, depth int) {
	if len(dp) < 4 {
		shortDesc(w, "Field replaceable unit", dp)
		return
	}

	w.Printf("  Field replaceable unit code: %d\n", dp[3])
}

func decStreamCommands(r *Renderer, w *utils.BoundedWriter, h Header, dp []byte, depth int) {
	if len(dp) < 4 {
		shortDesc(w, "Stream commands", dp)
		return
	}

	w.Printf("  Stream commands: Filemark=%d EOM=%d ILI=%d\n",
		(dp[3]>>7)&1, (dp[3]>>6)&1, (dp[3]>>5)&1)
}

func decBlockCommands(r *Renderer, w *utils.BoundedWriter, h Header, dp []byte, depth int) {
	if len(dp) < 4 {
		shortDesc(w, "Block commands", dp)
		return
	}

	w.Printf("  Block commands: ILI=%d\n", (dp[3]>>5)&1)
}

func decOSD(r *Renderer, w *utils.BoundedWriter, h Header, dp []byte, depth int) {
	w.Printf("  OSD descriptor type 0x%02x not decoded; in hex:\n", dp[0])
	utils.HexDump(w, "", dp)
}

// decATAReturn decodes the SAT ATA status return descriptor. The LBA registers
// interleave current and previous values, so the 48-bit address is assembled
// from non-contiguous bytes.
func decATAReturn(r *Renderer, w *utils.BoundedWriter, h Header, dp []byte, depth int) {
	if len(dp) < 14 {
		shortDesc(w, "ATA status return", dp)
		return
	}

	extend := dp[2] & 1
	errReg := dp[3]
	count := uint16(dp[5])
	if extend != 0 {
		count |= uint16(dp[4]) << 8
	}

	lba := uint64(dp[7]) | uint64(dp[9])<<8 | uint64(dp[11])<<16
	if extend != 0 {
		lba |= uint64(dp[6])<<24 | uint64(dp[8])<<32 | uint64(dp[10])<<40
	}

	w.Printf("  ATA status return: status=0x%02x error=0x%02x device=0x%02x\n",
		dp[13], errReg, dp[12])
	w.Printf("   extend=%d count=0x%04x lba=0x%012x\n", extend, count, lba)
}

func decProgress(r *Renderer, w *utils.BoundedWriter, h Header, dp []byte, depth int) {
	if len(dp) < 8 {
		shortDesc(w, "Another progress indication", dp)
		return
	}

	names := r.names()
	// Progress field sits one byte later than in the sense key specific
	// format; the two layouts genuinely differ here.
	whole, frac := progressPct(binary.BigEndian.Uint16(dp[6:8]))

	w.Printf("  Another progress indication: Sense key: %s, Additional sense: %s\n",
		scsi.SenseKeyString(names, int(dp[2]&0xf)),
		scsi.AdditionalSenseString(names, dp[3], dp[4]))
	w.Printf("   Progress indication: %d.%02d%%\n", whole, frac)
}

func decReferral(r *Renderer, w *utils.BoundedWriter, h Header, dp []byte, depth int) {
	if len(dp) < 4 {
		shortDesc(w, "Referral", dp)
		return
	}

	w.Printf("  Referral sense data, not all referrals: %d\n", dp[2]&1)

	for s := dp[4:]; len(s) > 0; {
		if len(s) < 4 {
			w.Printf("   referral unit truncated; in hex:\n")
			utils.HexDump(w, "", s)
			break
		}

		nt := int(s[1])
		sz := 20 + 4*nt
		if sz > len(s) {
			w.Printf("   referral unit (%d bytes) overruns descriptor; in hex:\n", sz)
			utils.HexDump(w, "", s)
			break
		}

		w.Printf("   user data segment: first lba 0x%x, last lba 0x%x\n",
			binary.BigEndian.Uint64(s[4:12]), binary.BigEndian.Uint64(s[12:20]))

		for j := 0; j < nt; j++ {
			tp := s[20+4*j : 24+4*j]
			w.Printf("    target port group 0x%x, state 0x%x\n",
				binary.BigEndian.Uint16(tp[2:4]), tp[0]&0xf)
		}

		s = s[sz:]
	}
}

func decForwarded(r *Renderer, w *utils.BoundedWriter, h Header, dp []byte, depth int) {
	if len(dp) < 4 {
		shortDesc(w, "Forwarded sense data", dp)
		return
	}

	src, ok := forwardedSources[dp[2]&0xf]
	if !ok {
		src = fmt.Sprintf("reserved [0x%x]", dp[2]&0xf)
	}

	w.Printf("  Forwarded sense data (FSDT=%d), source: %s, status: 0x%02x\n",
		(dp[2]>>7)&1, src, dp[3])

	if len(dp) <= 4 {
		return
	}

	if depth+1 >= r.maxForward() {
		w.Printf("   forwarded sense data nested deeper than %d levels; in hex:\n", r.maxForward())
		utils.HexDump(w, "", dp[4:])
		return
	}

	r.render(w, dp[4:], depth+1)
}

func decDirectAccess(r *Renderer, w *utils.BoundedWriter, h Header, dp []byte, depth int) {
	if len(dp) < 30 {
		shortDesc(w, "Direct-access block device", dp)
		return
	}

	w.Printf("  Direct-access block device:\n")
	w.Printf("   ILI=%d\n", (dp[2]>>5)&1)

	if dp[2]&0x80 != 0 {
		w.Printf("   Information: 0x%016x\n", binary.BigEndian.Uint64(dp[8:16]))
	}

	w.Printf("   Command-specific information: 0x%016x\n", binary.BigEndian.Uint64(dp[16:24]))
	w.Printf("   Field replaceable unit code: %d\n", dp[7])

	if !renderSKS(w, h.Key, dp[4:7]) {
		w.Printf("   Sense key specific data not processed; in hex:\n")
		utils.HexDump(w, "", dp[4:7])
	}
}

func decDeviceDesignation(r *Renderer, w *utils.BoundedWriter, h Header, dp []byte, depth int) {
	if len(dp) < 4 {
		shortDesc(w, "Device designation", dp)
		return
	}

	reason, ok := designationReasons[dp[2]&0xf]
	if !ok {
		reason = fmt.Sprintf("reserved [0x%x]", dp[2]&0xf)
	}

	w.Printf("  Device designation, usage reason: %s\n", reason)

	if len(dp) > 4 {
		vpd.DecodeDesignator(w, r.names(), dp[4:])
	}
}
