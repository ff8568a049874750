// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Sense buffer header normalisation.

package sense

import (
	"encoding/binary"

	"github.com/hreinecke/sg3-utils-sub007/scsi"
)

// Header is the normalised view of the first bytes of a sense buffer. Fields
// whose offsets fall outside the received buffer keep their zero values; the
// declared lengths inside the buffer are untrusted and are clamped against the
// buffer's actual size.
type Header struct {
	ResponseCode byte // byte 0 & 0x7f
	Descriptor   bool // descriptor format (0x72/0x73)
	Deferred     bool
	Key          byte
	ASC          byte
	ASCQ         byte
	AddLength    int // clamped; fixed format: total sense length, descriptor format: descriptor bytes

	// Fixed format extras
	Valid    bool // information field valid
	Info     uint32
	Filemark bool
	EOM      bool
	ILI      bool
	CmdInfo  uint32
	FRU      byte
	SKSV     bool
	SKS      [3]byte
}

// Normalize extracts a Header from a raw sense buffer. It reports false only
// when the buffer is empty or byte 0 does not carry a sense data response
// code; anything else is decoded best effort.
func Normalize(sb []byte) (Header, bool) {
	var h Header

	if len(sb) == 0 {
		return h, false
	}

	rc := sb[0] & 0x7f
	if rc < 0x70 {
		return h, false
	}

	h.ResponseCode = rc

	switch rc {
	case scsi.SENSE_DESC_CURRENT, scsi.SENSE_DESC_DEFERRED:
		h.Descriptor = true
		h.Deferred = rc == scsi.SENSE_DESC_DEFERRED

		if len(sb) > 1 {
			h.Key = sb[1] & 0xf
		}
		if len(sb) > 2 {
			h.ASC = sb[2]
		}
		if len(sb) > 3 {
			h.ASCQ = sb[3]
		}
		if len(sb) > 7 {
			h.AddLength = int(sb[7])
			if h.AddLength > len(sb)-8 {
				h.AddLength = len(sb) - 8
			}
		}
	case scsi.SENSE_FIXED_CURRENT, scsi.SENSE_FIXED_DEFERRED:
		h.Deferred = rc == scsi.SENSE_FIXED_DEFERRED
		h.Valid = sb[0]&0x80 != 0

		if len(sb) > 2 {
			h.Key = sb[2] & 0xf
			h.Filemark = sb[2]&0x80 != 0
			h.EOM = sb[2]&0x40 != 0
			h.ILI = sb[2]&0x20 != 0
		}
		if len(sb) > 6 {
			h.Info = binary.BigEndian.Uint32(sb[3:7])
		}
		if len(sb) > 7 {
			h.AddLength = int(sb[7]) + 8
			if h.AddLength > len(sb) {
				h.AddLength = len(sb)
			}
		}
		if len(sb) > 11 {
			h.CmdInfo = binary.BigEndian.Uint32(sb[8:12])
		}
		if len(sb) > 13 {
			h.ASC = sb[12]
			h.ASCQ = sb[13]
		}
		if len(sb) > 14 {
			h.FRU = sb[14]
		}
		if len(sb) > 17 {
			h.SKSV = sb[15]&0x80 != 0
			copy(h.SKS[:], sb[15:18])
		}
	}

	// Response codes 0x74-0x7f are recognised as sense data but carry no
	// normalisable fields.
	return h, true
}
