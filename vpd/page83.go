// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Device identification VPD page iteration.

package vpd

import (
	"encoding/binary"
	"fmt"

	"github.com/hreinecke/sg3-utils-sub007/scsi"
	"github.com/hreinecke/sg3-utils-sub007/utils"
)

// DeviceIDPayload strips the 4-byte VPD page header off a device
// identification page, clamping the declared page length against the bytes
// actually received.
func DeviceIDPayload(page []byte) ([]byte, error) {
	if len(page) < 4 {
		return nil, fmt.Errorf("VPD page too short (%d bytes)", len(page))
	}

	if page[1] != scsi.VPD_DEVICE_ID {
		return nil, fmt.Errorf("not a device identification page (page code 0x%02x)", page[1])
	}

	l := int(binary.BigEndian.Uint16(page[2:4]))
	if l > len(page)-4 {
		l = len(page) - 4
	}

	return page[4 : 4+l], nil
}

// RenderDeviceID renders every designation descriptor in payload (the page
// body, without the VPD header). Reaching the end of the payload exactly is
// the normal outcome and returns nil; a descriptor whose header or declared
// length would overrun the payload aborts the iteration without emitting a
// designator for that entry, since the next offset cannot be trusted, and the
// overrun is returned as the page-level error.
func RenderDeviceID(w *utils.BoundedWriter, names scsi.NameResolver, payload []byte) error {
	for off := 0; off < len(payload); {
		if off+4 > len(payload) {
			return fmt.Errorf("designator header at offset %d overruns page", off)
		}

		l := int(payload[off+3])
		if off+4+l > len(payload) {
			return fmt.Errorf("designator at offset %d: declared length %d overruns page", off, l)
		}

		DecodeDesignator(w, names, payload[off:off+4+l])
		off += 4 + l
	}

	return nil
}
