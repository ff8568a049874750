// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Numeric code to descriptive string resolution.

package scsi

import (
	"fmt"
)

// NameResolver maps numeric wire codes to descriptive strings. The decoders
// take a resolver as a collaborator so alternative tables (or none) can be
// injected.
type NameResolver interface {
	SenseKeyName(key byte) (string, bool)
	AdditionalSenseName(asc, ascq byte) (string, bool)
	DesignatorTypeName(t byte) (string, bool)
	ProtocolName(p byte) (string, bool)
	PeripheralTypeName(t byte) (string, bool)
}

// AscPair is a composite key for the additional sense code table.
type AscPair struct {
	ASC  byte
	ASCQ byte
}

// Table 27 of SPC-4 revision 37
var senseKeyNames = map[byte]string{
	SK_NO_SENSE:        "No Sense",
	SK_RECOVERED_ERROR: "Recovered Error",
	SK_NOT_READY:       "Not Ready",
	SK_MEDIUM_ERROR:    "Medium Error",
	SK_HARDWARE_ERROR:  "Hardware Error",
	SK_ILLEGAL_REQUEST: "Illegal Request",
	SK_UNIT_ATTENTION:  "Unit Attention",
	SK_DATA_PROTECT:    "Data Protect",
	SK_BLANK_CHECK:     "Blank Check",
	SK_VENDOR_SPECIFIC: "Vendor Specific",
	SK_COPY_ABORTED:    "Copy Aborted",
	SK_ABORTED_COMMAND: "Aborted Command",
	SK_EQUAL:           "Equal",
	SK_VOLUME_OVERFLOW: "Volume Overflow",
	SK_MISCOMPARE:      "Miscompare",
	SK_COMPLETED:       "Completed",
}

var additionalSenseNames = map[AscPair]string{
	{0x00, 0x00}: "No additional sense information",
	{0x00, 0x01}: "Filemark detected",
	{0x00, 0x02}: "End-of-partition/medium detected",
	{0x00, 0x05}: "End-of-data detected",
	{0x00, 0x06}: "I/O process terminated",
	{0x00, 0x16}: "Operation in progress",
	{0x00, 0x1d}: "ATA pass through information available",
	{0x02, 0x00}: "No seek complete",
	{0x03, 0x00}: "Peripheral device write fault",
	{0x04, 0x00}: "Logical unit not ready, cause not reportable",
	{0x04, 0x01}: "Logical unit is in process of becoming ready",
	{0x04, 0x02}: "Logical unit not ready, initializing command required",
	{0x04, 0x03}: "Logical unit not ready, manual intervention required",
	{0x04, 0x04}: "Logical unit not ready, format in progress",
	{0x08, 0x00}: "Logical unit communication failure",
	{0x0b, 0x01}: "Warning - specified temperature exceeded",
	{0x0c, 0x00}: "Write error",
	{0x11, 0x00}: "Unrecovered read error",
	{0x14, 0x00}: "Recorded entity not found",
	{0x15, 0x01}: "Mechanical positioning error",
	{0x17, 0x00}: "Recovered data with no error correction applied",
	{0x18, 0x00}: "Recovered data with error correction applied",
	{0x1a, 0x00}: "Parameter list length error",
	{0x20, 0x00}: "Invalid command operation code",
	{0x21, 0x00}: "Logical block address out of range",
	{0x24, 0x00}: "Invalid field in cdb",
	{0x25, 0x00}: "Logical unit not supported",
	{0x26, 0x00}: "Invalid field in parameter list",
	{0x27, 0x00}: "Write protected",
	{0x28, 0x00}: "Not ready to ready change, medium may have changed",
	{0x29, 0x00}: "Power on, reset, or bus device reset occurred",
	{0x2a, 0x01}: "Mode parameters changed",
	{0x2c, 0x00}: "Command sequence error",
	{0x31, 0x00}: "Medium format corrupted",
	{0x3a, 0x00}: "Medium not present",
	{0x3e, 0x01}: "Logical unit failure",
	{0x43, 0x00}: "Message error",
	{0x44, 0x00}: "Internal target failure",
	{0x47, 0x00}: "SCSI parity error",
	{0x4e, 0x00}: "Overlapped commands attempted",
	{0x55, 0x00}: "System resource failure",
	{0x5d, 0x00}: "Failure prediction threshold exceeded",
}

var designatorTypeNames = map[byte]string{
	DESIG_VENDOR_SPECIFIC: "vendor specific",
	DESIG_T10_VENDOR:      "T10 vendor identification",
	DESIG_EUI64:           "EUI-64 based",
	DESIG_NAA:             "NAA",
	DESIG_REL_TGT_PORT:    "Relative target port",
	DESIG_TGT_PORT_GROUP:  "Target port group",
	DESIG_LU_GROUP:        "Logical unit group",
	DESIG_MD5_LUN_ID:      "MD5 logical unit identifier",
	DESIG_SCSI_NAME:       "SCSI name string",
	DESIG_PROTO_PORT_ID:   "Protocol specific port identifier",
	DESIG_UUID:            "Locally assigned UUID",
}

var protocolNames = map[byte]string{
	PROTO_FCP:   "Fibre Channel (FCP)",
	PROTO_SPI:   "Parallel SCSI (SPI)",
	PROTO_SSA:   "SSA",
	PROTO_SBP:   "IEEE 1394 (SBP)",
	PROTO_SRP:   "Remote Direct Memory Access (SRP)",
	PROTO_ISCSI: "Internet SCSI (iSCSI)",
	PROTO_SAS:   "Serial Attached SCSI (SAS)",
	PROTO_ADT:   "Automation/Drive Interface (ADT)",
	PROTO_ATA:   "AT Attachment Interface (ATA/ATAPI)",
	PROTO_UAS:   "USB Attached SCSI (UAS)",
	PROTO_SOP:   "SCSI over PCIe (SOP)",
}

var peripheralTypeNames = map[byte]string{
	0x00: "disk",
	0x01: "tape",
	0x02: "printer",
	0x03: "processor",
	0x04: "write once optical disk",
	0x05: "cd/dvd",
	0x06: "scanner",
	0x07: "optical memory device",
	0x08: "medium changer",
	0x09: "communications",
	0x0c: "storage array controller",
	0x0d: "enclosure services device",
	0x0e: "simplified direct access device",
	0x0f: "optical card reader/writer device",
	0x11: "object based storage",
	0x12: "automation/driver interface",
	0x14: "host managed zoned block",
	0x1e: "well known logical unit",
	0x1f: "unknown or no device type",
}

// DefaultNames is the built-in table-backed resolver.
type DefaultNames struct{}

func (DefaultNames) SenseKeyName(key byte) (string, bool) {
	s, ok := senseKeyNames[key]
	return s, ok
}

func (DefaultNames) AdditionalSenseName(asc, ascq byte) (string, bool) {
	s, ok := additionalSenseNames[AscPair{asc, ascq}]
	return s, ok
}

func (DefaultNames) DesignatorTypeName(t byte) (string, bool) {
	s, ok := designatorTypeNames[t]
	return s, ok
}

func (DefaultNames) ProtocolName(p byte) (string, bool) {
	s, ok := protocolNames[p]
	return s, ok
}

func (DefaultNames) PeripheralTypeName(t byte) (string, bool) {
	s, ok := peripheralTypeNames[t]
	return s, ok
}

// SenseKeyString resolves a sense key through r, tolerating out-of-range input
// rather than indexing anything with it.
func SenseKeyString(r NameResolver, key int) string {
	if key >= 0 && key < 0x10 {
		if s, ok := r.SenseKeyName(byte(key)); ok {
			return s
		}
	}

	return fmt.Sprintf("invalid value: 0x%x", key)
}

// AdditionalSenseString resolves an ASC/ASCQ pair, falling back to the raw
// byte values for codes outside the table.
func AdditionalSenseString(r NameResolver, asc, ascq byte) string {
	if s, ok := r.AdditionalSenseName(asc, ascq); ok {
		return s
	}

	if asc >= 0x80 || ascq >= 0x80 {
		return fmt.Sprintf("vendor specific asc=0x%02x, ascq=0x%02x", asc, ascq)
	}

	return fmt.Sprintf("asc=0x%02x, ascq=0x%02x", asc, ascq)
}
