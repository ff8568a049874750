// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Device identification designator decoding (SPC-4 7.8.6).

package vpd

import (
	"encoding/hex"
	"fmt"

	"github.com/hreinecke/sg3-utils-sub007/scsi"
	"github.com/hreinecke/sg3-utils-sub007/utils"
)

// Designator is one parsed designation descriptor.
type Designator struct {
	Protocol    byte
	CodeSet     byte
	PIV         bool
	Association byte
	Type        byte
	Body        []byte
}

type desigDecoder func(w *utils.BoundedWriter, names scsi.NameResolver, d Designator)

var desigDecoders = map[byte]desigDecoder{
	scsi.DESIG_VENDOR_SPECIFIC: decVendorSpecific,
	scsi.DESIG_T10_VENDOR:      decT10Vendor,
	scsi.DESIG_EUI64:           decEUI64,
	scsi.DESIG_NAA:             decNAA,
	scsi.DESIG_REL_TGT_PORT:    decRelTgtPort,
	scsi.DESIG_TGT_PORT_GROUP:  decTgtPortGroup,
	scsi.DESIG_LU_GROUP:        decLUGroup,
	scsi.DESIG_MD5_LUN_ID:      decMD5,
	scsi.DESIG_SCSI_NAME:       decSCSIName,
	scsi.DESIG_PROTO_PORT_ID:   decProtoPortID,
	scsi.DESIG_UUID:            decUUID,
}

// DecodeDesignator renders one designation descriptor, d spanning its 4-byte
// header and body. Malformed or mismatching input degrades to a hex dump;
// this function never fails.
func DecodeDesignator(w *utils.BoundedWriter, names scsi.NameResolver, d []byte) {
	if names == nil {
		names = scsi.DefaultNames{}
	}

	if len(d) < 4 {
		w.Printf("  designator too short (%d bytes); in hex:\n", len(d))
		utils.HexDump(w, "", d)
		return
	}

	dg := Designator{
		Protocol:    d[0] >> 4,
		CodeSet:     d[0] & 0xf,
		PIV:         d[1]&0x80 != 0,
		Association: (d[1] >> 4) & 0x3,
		Type:        d[1] & 0xf,
	}

	l := int(d[3])
	if 4+l > len(d) {
		w.Printf("  designator length %d overruns the %d available bytes; in hex:\n", l, len(d)-4)
		utils.HexDump(w, "", d)
		return
	}
	dg.Body = d[4 : 4+l]

	tn, ok := names.DesignatorTypeName(dg.Type)
	if !ok {
		tn = fmt.Sprintf("reserved [0x%x]", dg.Type)
	}

	w.Printf("  designator type: %s,  code set: %s\n", tn, codeSetString(dg.CodeSet))
	w.Printf("   associated with the %s\n", assocString(dg.Association))

	if dg.PIV && (dg.Association == scsi.ASSOC_TGT_PORT || dg.Association == scsi.ASSOC_TGT_DEVICE) {
		w.Printf("   transport protocol: %s\n", protocolString(names, dg.Protocol))
	}

	if dec, ok := desigDecoders[dg.Type]; ok {
		dec(w, names, dg)
	} else {
		w.Printf("   reserved designator type 0x%x; in hex:\n", dg.Type)
		utils.HexDump(w, "", dg.Body)
	}
}

func codeSetString(cs byte) string {
	switch cs {
	case scsi.CODE_SET_BINARY:
		return "Binary"
	case scsi.CODE_SET_ASCII:
		return "ASCII"
	case scsi.CODE_SET_UTF8:
		return "UTF-8"
	default:
		return fmt.Sprintf("Reserved [0x%x]", cs)
	}
}

func assocString(a byte) string {
	switch a {
	case scsi.ASSOC_LU:
		return "addressed logical unit"
	case scsi.ASSOC_TGT_PORT:
		return "target port"
	case scsi.ASSOC_TGT_DEVICE:
		return "target device that contains the addressed lu"
	default:
		return fmt.Sprintf("reserved association [0x%x]", a)
	}
}

func protocolString(names scsi.NameResolver, p byte) string {
	if s, ok := names.ProtocolName(p); ok {
		return s
	}

	return fmt.Sprintf("reserved protocol id [0x%x]", p)
}

// mismatch reports a designator whose code set, association or length does not
// match what its type requires, then falls back to hex.
func mismatch(w *utils.BoundedWriter, why string, body []byte) {
	w.Printf("   << %s >>; in hex:\n", why)
	utils.HexDump(w, "", body)
}

func isPrintable(b []byte) bool {
	if len(b) == 0 {
		return false
	}

	for _, c := range b {
		if c < 0x20 || c == 0x7f {
			return false
		}
	}

	return true
}

func decVendorSpecific(w *utils.BoundedWriter, names scsi.NameResolver, d Designator) {
	if (d.CodeSet == scsi.CODE_SET_ASCII || d.CodeSet == scsi.CODE_SET_UTF8) && isPrintable(d.Body) {
		w.Printf("   vendor specific: %s\n", d.Body)
		return
	}

	w.Printf("   vendor specific data in hex:\n")
	utils.HexDump(w, "", d.Body)
}

func decT10Vendor(w *utils.BoundedWriter, names scsi.NameResolver, d Designator) {
	if len(d.Body) < 8 {
		mismatch(w, "T10 vendor identification shorter than 8 bytes", d.Body)
		return
	}

	w.Printf("   vendor id: %.8s\n", d.Body)

	rest := d.Body[8:]
	if len(rest) == 0 {
		return
	}

	if isPrintable(rest) {
		w.Printf("   vendor specific identifier: %s\n", rest)
	} else {
		w.Printf("   vendor specific identifier in hex:\n")
		utils.HexDump(w, "", rest)
	}
}

func decEUI64(w *utils.BoundedWriter, names scsi.NameResolver, d Designator) {
	if d.CodeSet != scsi.CODE_SET_BINARY {
		mismatch(w, "expected binary code set for EUI-64", d.Body)
		return
	}

	switch len(d.Body) {
	case 8:
		w.Printf("   EUI-64: 0x%s\n", hex.EncodeToString(d.Body))
	case 12:
		w.Printf("   EUI-64: 0x%s\n", hex.EncodeToString(d.Body[:8]))
		w.Printf("   directory id: 0x%s\n", hex.EncodeToString(d.Body[8:12]))
	case 16:
		w.Printf("   identifier extension: 0x%s\n", hex.EncodeToString(d.Body[:8]))
		w.Printf("   EUI-64: 0x%s\n", hex.EncodeToString(d.Body[8:16]))
	default:
		mismatch(w, fmt.Sprintf("unexpected EUI-64 length %d", len(d.Body)), d.Body)
	}
}

// decNAA dispatches on the NAA nibble. The company id and vendor specific
// identifier of variants 5 and 6 straddle byte boundaries; the shifts below
// follow the wire layout and must stay as they are.
func decNAA(w *utils.BoundedWriter, names scsi.NameResolver, d Designator) {
	if d.CodeSet != scsi.CODE_SET_BINARY {
		mismatch(w, "expected binary code set for NAA", d.Body)
		return
	}

	if len(d.Body) < 1 {
		mismatch(w, "empty NAA designator", d.Body)
		return
	}

	b := d.Body
	naa := b[0] >> 4

	switch naa {
	case 2:
		if len(b) != 8 {
			mismatch(w, fmt.Sprintf("NAA 2 designator should be 8 bytes, got %d", len(b)), b)
			return
		}

		w.Printf("   NAA 2, vendor specific identifier A: 0x%x\n",
			uint32(b[0]&0xf)<<8|uint32(b[1]))
		w.Printf("    IEEE company id: 0x%06x\n",
			uint32(b[2])<<16|uint32(b[3])<<8|uint32(b[4]))
		w.Printf("    vendor specific identifier B: 0x%x\n",
			uint32(b[5])<<16|uint32(b[6])<<8|uint32(b[7]))
	case 3:
		if len(b) != 8 {
			mismatch(w, fmt.Sprintf("NAA 3 designator should be 8 bytes, got %d", len(b)), b)
			return
		}

		w.Printf("   NAA 3, Locally assigned:\n")
		utils.HexDump(w, "", b)
	case 5:
		if len(b) != 8 {
			mismatch(w, fmt.Sprintf("NAA 5 designator should be 8 bytes, got %d", len(b)), b)
			return
		}

		w.Printf("   NAA 5, IEEE Registered:\n")
		w.Printf("    IEEE company id: 0x%06x\n", naaCompanyID(b))
		w.Printf("    vendor specific identifier: 0x%09x\n", naaVendorID(b))
	case 6:
		if len(b) != 16 {
			mismatch(w, fmt.Sprintf("NAA 6 designator should be 16 bytes, got %d", len(b)), b)
			return
		}

		w.Printf("   NAA 6, IEEE Registered Extended:\n")
		w.Printf("    IEEE company id: 0x%06x\n", naaCompanyID(b))
		w.Printf("    vendor specific identifier: 0x%09x\n", naaVendorID(b))
		w.Printf("    vendor specific identifier extension: 0x%016x\n",
			uint64(b[8])<<56|uint64(b[9])<<48|uint64(b[10])<<40|uint64(b[11])<<32|
				uint64(b[12])<<24|uint64(b[13])<<16|uint64(b[14])<<8|uint64(b[15]))
	default:
		mismatch(w, fmt.Sprintf("unknown NAA variant %d", naa), b)
	}
}

// 24-bit company id spanning the low nibble of byte 0 through the high nibble
// of byte 3.
func naaCompanyID(b []byte) uint32 {
	return uint32(b[0]&0xf)<<20 | uint32(b[1])<<12 | uint32(b[2])<<4 | uint32(b[3])>>4
}

// 36-bit vendor specific identifier starting at the low nibble of byte 3.
func naaVendorID(b []byte) uint64 {
	return uint64(b[3]&0xf)<<32 | uint64(b[4])<<24 | uint64(b[5])<<16 |
		uint64(b[6])<<8 | uint64(b[7])
}

func decBinaryPortValue(w *utils.BoundedWriter, d Designator, wantAssoc byte, label string) {
	if d.CodeSet != scsi.CODE_SET_BINARY {
		mismatch(w, fmt.Sprintf("expected binary code set for %s", label), d.Body)
		return
	}
	if d.Association != wantAssoc {
		mismatch(w, fmt.Sprintf("unexpected association for %s", label), d.Body)
		return
	}
	if len(d.Body) != 4 {
		mismatch(w, fmt.Sprintf("%s designator should be 4 bytes, got %d", label, len(d.Body)), d.Body)
		return
	}

	w.Printf("   %s: 0x%x\n", label, uint16(d.Body[2])<<8|uint16(d.Body[3]))
}

func decRelTgtPort(w *utils.BoundedWriter, names scsi.NameResolver, d Designator) {
	decBinaryPortValue(w, d, scsi.ASSOC_TGT_PORT, "Relative target port")
}

func decTgtPortGroup(w *utils.BoundedWriter, names scsi.NameResolver, d Designator) {
	decBinaryPortValue(w, d, scsi.ASSOC_TGT_PORT, "Target port group")
}

func decLUGroup(w *utils.BoundedWriter, names scsi.NameResolver, d Designator) {
	decBinaryPortValue(w, d, scsi.ASSOC_LU, "Logical unit group")
}

func decMD5(w *utils.BoundedWriter, names scsi.NameResolver, d Designator) {
	w.Printf("   MD5 logical unit identifier:\n")
	utils.HexDump(w, "", d.Body)
}

func decSCSIName(w *utils.BoundedWriter, names scsi.NameResolver, d Designator) {
	// UTF-8 is what SPC requires here; plain ASCII is tolerated.
	if d.CodeSet != scsi.CODE_SET_UTF8 && d.CodeSet != scsi.CODE_SET_ASCII {
		mismatch(w, "expected UTF-8 code set for SCSI name string", d.Body)
		return
	}

	body := d.Body
	for len(body) > 0 && body[len(body)-1] == 0 {
		body = body[:len(body)-1]
	}

	if !isPrintable(body) {
		mismatch(w, "SCSI name string not printable", d.Body)
		return
	}

	w.Printf("   SCSI name string: %s\n", body)
}

func decProtoPortID(w *utils.BoundedWriter, names scsi.NameResolver, d Designator) {
	if !d.PIV {
		mismatch(w, "expected PIV to be set for protocol specific port identifier", d.Body)
		return
	}

	switch d.Protocol {
	case scsi.PROTO_UAS:
		if len(d.Body) < 4 {
			mismatch(w, "UAS port identifier shorter than 4 bytes", d.Body)
			return
		}

		w.Printf("   USB device address: 0x%x\n", d.Body[0]&0x7f)
		w.Printf("   USB interface number: 0x%x\n", d.Body[2])
	case scsi.PROTO_SOP:
		if len(d.Body) < 2 {
			mismatch(w, "SOP routing id shorter than 2 bytes", d.Body)
			return
		}

		rid := uint16(d.Body[0])<<8 | uint16(d.Body[1])
		w.Printf("   PCIe routing ID: 0x%04x\n", rid)
		w.Printf("    bus: 0x%02x, device: %d, function: %d\n",
			rid>>8, (rid>>3)&0x1f, rid&0x7)
		w.Printf("    (ARI: bus 0x%02x, function %d)\n", rid>>8, rid&0xff)
	default:
		w.Printf("   no decoding for %s port identifier\n", protocolString(names, d.Protocol))
	}
}

func decUUID(w *utils.BoundedWriter, names scsi.NameResolver, d Designator) {
	if d.CodeSet != scsi.CODE_SET_BINARY {
		mismatch(w, "expected binary code set for locally assigned UUID", d.Body)
		return
	}
	if len(d.Body) != 18 || d.Body[0]>>4 != 1 {
		mismatch(w, "bad locally assigned UUID designator", d.Body)
		return
	}

	u := d.Body[2:18]
	w.Printf("   Locally assigned UUID: %x-%x-%x-%x-%x\n",
		u[0:4], u[4:6], u[6:8], u[8:10], u[10:16])
}
