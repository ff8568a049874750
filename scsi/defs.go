// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// SCSI command and sense data wire definitions.

package scsi

const (
	// SCSI commands relevant to sense / VPD decoding
	SCSI_REQUEST_SENSE = 0x03
	SCSI_INQUIRY       = 0x12

	// Minimum length of standard INQUIRY response
	INQ_REPLY_LEN = 36

	// VPD pages
	VPD_SUPPORTED_PAGES = 0x00
	VPD_UNIT_SERIAL_NUM = 0x80
	VPD_DEVICE_ID       = 0x83

	// Sense data response codes (byte 0 & 0x7f)
	SENSE_FIXED_CURRENT  = 0x70
	SENSE_FIXED_DEFERRED = 0x71
	SENSE_DESC_CURRENT   = 0x72
	SENSE_DESC_DEFERRED  = 0x73
)

// Sense keys (SPC-4 table 54)
const (
	SK_NO_SENSE        = 0x0
	SK_RECOVERED_ERROR = 0x1
	SK_NOT_READY       = 0x2
	SK_MEDIUM_ERROR    = 0x3
	SK_HARDWARE_ERROR  = 0x4
	SK_ILLEGAL_REQUEST = 0x5
	SK_UNIT_ATTENTION  = 0x6
	SK_DATA_PROTECT    = 0x7
	SK_BLANK_CHECK     = 0x8
	SK_VENDOR_SPECIFIC = 0x9
	SK_COPY_ABORTED    = 0xa
	SK_ABORTED_COMMAND = 0xb
	SK_EQUAL           = 0xc
	SK_VOLUME_OVERFLOW = 0xd
	SK_MISCOMPARE      = 0xe
	SK_COMPLETED       = 0xf
)

// Descriptor format sense data descriptor types
const (
	SDESC_INFORMATION        = 0x00
	SDESC_COMMAND_SPECIFIC   = 0x01
	SDESC_SENSE_KEY_SPECIFIC = 0x02
	SDESC_FRU                = 0x03
	SDESC_STREAM_COMMANDS    = 0x04
	SDESC_BLOCK_COMMANDS     = 0x05
	SDESC_OSD_OBJECT_IDENT   = 0x06
	SDESC_OSD_RESP_INTEGRITY = 0x07
	SDESC_OSD_ATTR_IDENT     = 0x08
	SDESC_ATA_RETURN         = 0x09
	SDESC_PROGRESS           = 0x0a
	SDESC_REFERRAL           = 0x0b
	SDESC_FORWARDED          = 0x0c
	SDESC_DIRECT_ACCESS      = 0x0d
	SDESC_DEVICE_DESIGNATION = 0x0e
)

// Device identification VPD page designator types (SPC-4 7.8.6)
const (
	DESIG_VENDOR_SPECIFIC = 0x0
	DESIG_T10_VENDOR      = 0x1
	DESIG_EUI64           = 0x2
	DESIG_NAA             = 0x3
	DESIG_REL_TGT_PORT    = 0x4
	DESIG_TGT_PORT_GROUP  = 0x5
	DESIG_LU_GROUP        = 0x6
	DESIG_MD5_LUN_ID      = 0x7
	DESIG_SCSI_NAME       = 0x8
	DESIG_PROTO_PORT_ID   = 0x9
	DESIG_UUID            = 0xa
)

// Designator code sets
const (
	CODE_SET_BINARY = 1
	CODE_SET_ASCII  = 2
	CODE_SET_UTF8   = 3
)

// Designator associations
const (
	ASSOC_LU         = 0
	ASSOC_TGT_PORT   = 1
	ASSOC_TGT_DEVICE = 2
)

// Transport protocol identifiers
const (
	PROTO_FCP   = 0x0
	PROTO_SPI   = 0x1
	PROTO_SSA   = 0x2
	PROTO_SBP   = 0x3
	PROTO_SRP   = 0x4
	PROTO_ISCSI = 0x5
	PROTO_SAS   = 0x6
	PROTO_ADT   = 0x7
	PROTO_ATA   = 0x8
	PROTO_UAS   = 0x9
	PROTO_SOP   = 0xa
)

// SCSI CDB types
type CDB6 [6]byte
type CDB10 [10]byte
type CDB16 [16]byte
