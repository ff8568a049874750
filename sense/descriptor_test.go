// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package sense

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hreinecke/sg3-utils-sub007/utils"
)

// descSense builds a descriptor format sense buffer around the given
// descriptors.
func descSense(key byte, descs ...[]byte) []byte {
	var body []byte
	for _, d := range descs {
		body = append(body, d...)
	}

	hdr := []byte{0x72, key, 0x00, 0x00, 0x00, 0x00, 0x00, byte(len(body))}
	return append(hdr, body...)
}

// wrapForwarded nests a complete sense buffer inside a forwarded sense data
// descriptor.
func wrapForwarded(inner []byte) []byte {
	desc := append([]byte{0x0c, byte(len(inner) + 2), 0x01, 0x02}, inner...)
	return descSense(0x0b, desc)
}

func TestDescriptorInformation(t *testing.T) {
	assert := assert.New(t)

	d := []byte{0x00, 0x0a, 0x80, 0x00, 0, 0, 0, 0, 0x12, 0x34, 0x56, 0x78}
	out := render(descSense(0x01, d))

	assert.Contains(out, "Descriptor format, current")
	assert.Contains(out, "Recovered Error")
	assert.Contains(out, "Information: 0x0000000012345678")

	// Valid bit clear: the raw payload is dumped rather than discarded
	d[2] = 0x00
	out = render(descSense(0x01, d))
	assert.Contains(out, "Information field not valid")
	assert.Contains(out, "12 34 56 78")
}

func TestDescriptorCommandSpecific(t *testing.T) {
	assert := assert.New(t)

	d := []byte{0x01, 0x0a, 0x00, 0x00, 0xde, 0xad, 0xbe, 0xef, 0, 0, 0, 0x01}
	out := render(descSense(0x00, d))

	assert.Contains(out, "Command-specific information: 0xdeadbeef00000001")
}

func TestDescriptorSenseKeySpecific(t *testing.T) {
	assert := assert.New(t)

	// Field pointer format is selected by the buffer's sense key
	d := []byte{0x02, 0x06, 0x00, 0x00, 0x8a, 0x00, 0x07, 0x00}
	out := render(descSense(0x05, d))
	assert.Contains(out, "Error in Data parameters: byte 7 bit 2")

	// Progress format for NOT READY, read from descriptor bytes 5-6
	d = []byte{0x02, 0x06, 0x00, 0x00, 0x80, 0x80, 0x00, 0x00}
	out = render(descSense(0x02, d))
	assert.Contains(out, "Progress indication: 50.00%")

	// Retry count for MEDIUM ERROR
	d = []byte{0x02, 0x06, 0x00, 0x00, 0x80, 0x00, 0x2a, 0x00}
	out = render(descSense(0x03, d))
	assert.Contains(out, "Actual retry count: 42")

	// Overflow flag for UNIT ATTENTION
	d = []byte{0x02, 0x06, 0x00, 0x00, 0x81, 0x00, 0x00, 0x00}
	out = render(descSense(0x06, d))
	assert.Contains(out, "Overflow flag: 1")

	// Keys with no sense key specific format degrade to hex
	d = []byte{0x02, 0x06, 0x00, 0x00, 0x80, 0x11, 0x22, 0x00}
	out = render(descSense(0x07, d))
	assert.Contains(out, "not processed")
	assert.Contains(out, "11 22")
}

// The structurally identical progress fields of descriptor types 2 and 0xa
// sit one byte apart; both offsets must be preserved.
func TestDescriptorAnotherProgress(t *testing.T) {
	assert := assert.New(t)

	d := []byte{0x0a, 0x06, 0x02, 0x04, 0x01, 0x00, 0x40, 0x9e}
	out := render(descSense(0x00, d))

	assert.Contains(out, "Another progress indication")
	assert.Contains(out, "Not Ready")
	assert.Contains(out, "Logical unit is in process of becoming ready")
	assert.Contains(out, "Progress indication: 25.24%")
}

func TestDescriptorFRUAndFlags(t *testing.T) {
	assert := assert.New(t)

	out := render(descSense(0x03,
		[]byte{0x03, 0x02, 0x00, 0x63},
		[]byte{0x04, 0x02, 0x00, 0xe0},
		[]byte{0x05, 0x02, 0x00, 0x20},
	))

	assert.Contains(out, "Field replaceable unit code: 99")
	assert.Contains(out, "Stream commands: Filemark=1 EOM=1 ILI=1")
	assert.Contains(out, "Block commands: ILI=1")
}

func TestDescriptorATAStatusReturn(t *testing.T) {
	assert := assert.New(t)

	d := []byte{0x09, 0x0c, 0x01, 0x01, 0x02, 0x03, 0x66, 0x11, 0x55, 0x22, 0x44, 0x33, 0xa0, 0x50}
	out := render(descSense(0x01, d))

	assert.Contains(out, "ATA status return: status=0x50 error=0x01 device=0xa0")
	assert.Contains(out, "extend=1 count=0x0203 lba=0x445566332211")

	// Without extend, only the low LBA bytes and count byte apply
	d[2] = 0x00
	out = render(descSense(0x01, d))
	assert.Contains(out, "extend=0 count=0x0003 lba=0x000000332211")
}

func TestDescriptorReferral(t *testing.T) {
	assert := assert.New(t)

	unit := make([]byte, 24)
	unit[1] = 0x01 // one target port group descriptor
	binary.BigEndian.PutUint64(unit[4:12], 0x10)
	binary.BigEndian.PutUint64(unit[12:20], 0x1f)
	unit[20] = 0x02 // asymmetric access state
	binary.BigEndian.PutUint16(unit[22:24], 0x05)

	d := append([]byte{0x0b, byte(len(unit) + 2), 0x01, 0x00}, unit...)
	out := render(descSense(0x00, d))

	assert.Contains(out, "not all referrals: 1")
	assert.Contains(out, "first lba 0x10, last lba 0x1f")
	assert.Contains(out, "target port group 0x5, state 0x2")

	// A unit whose declared target port group count overruns the descriptor
	// stops the walk without reading out of bounds.
	unit[1] = 0x7f
	d = append([]byte{0x0b, byte(len(unit) + 2), 0x01, 0x00}, unit...)
	out = render(descSense(0x00, d))
	assert.Contains(out, "overruns descriptor")
}

func TestDescriptorDirectAccess(t *testing.T) {
	assert := assert.New(t)

	d := make([]byte, 30)
	d[0] = 0x0d
	d[1] = 0x1c
	d[2] = 0xa0 // valid + ILI
	d[4] = 0x80 // SKSV
	d[6] = 0x03 // field pointer
	d[7] = 0x09
	binary.BigEndian.PutUint64(d[8:16], 0x1234)
	binary.BigEndian.PutUint64(d[16:24], 0x5678)

	out := render(descSense(0x05, d))
	assert.Contains(out, "Direct-access block device")
	assert.Contains(out, "ILI=1")
	assert.Contains(out, "Information: 0x0000000000001234")
	assert.Contains(out, "Command-specific information: 0x0000000000005678")
	assert.Contains(out, "Field replaceable unit code: 9")
	assert.Contains(out, "Error in Data parameters: byte 3")
}

func TestDescriptorDeviceDesignation(t *testing.T) {
	assert := assert.New(t)

	desig := []byte{0x01, 0x03, 0x00, 0x08, 0x53, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99}
	d := append([]byte{0x0e, byte(len(desig) + 2), 0x02, 0x00}, desig...)
	out := render(descSense(0x00, d))

	assert.Contains(out, "Device designation, usage reason: configured administrative logical unit")
	assert.Contains(out, "NAA 5, IEEE Registered")
	assert.Contains(out, "IEEE company id: 0x333445")
}

func TestDescriptorForwardedSense(t *testing.T) {
	assert := assert.New(t)

	inner := []byte{
		0x70, 0x00, 0x05, 0x00, 0x00, 0x00, 0x00, 0x0a,
		0x00, 0x00, 0x00, 0x00, 0x24, 0x00, 0x00, 0x00,
		0x00, 0x00,
	}

	out := render(wrapForwarded(inner))
	assert.Contains(out, "Forwarded sense data (FSDT=0), source: extended copy source, status: 0x02")
	assert.Contains(out, "Fixed format, current")
	assert.Contains(out, "Invalid field in cdb")
}

func TestForwardedRecursionBound(t *testing.T) {
	assert := assert.New(t)

	inner := []byte{0x70, 0x00, 0x05}
	buf := inner
	for i := 0; i < 10; i++ {
		buf = wrapForwarded(buf)
	}

	// Ten levels of nesting must terminate at the default bound
	out := render(buf)
	assert.Contains(out, "nested deeper than 4 levels")
	assert.NotContains(out, "Fixed format")

	// A tighter explicit bound stops at the first forwarded payload
	w := utils.NewBoundedWriter(1 << 16)
	r := Renderer{MaxForward: 1}
	r.Render(w, wrapForwarded(inner))
	assert.Contains(w.String(), "nested deeper than 1 levels")
}

func TestDescriptorShortAndTruncated(t *testing.T) {
	assert := assert.New(t)

	// Lone type byte: even the length is unreadable
	out := render(descSense(0x00, []byte{0x00}))
	assert.Contains(out, "short descriptor at offset 0")

	// Declared length overruns the received buffer: clamp, render what can
	// be rendered, and mark the truncation
	out = render(descSense(0x00, []byte{0x00, 0x0a, 0x80, 0x00}))
	assert.Contains(out, "descriptor too short")
	assert.Contains(out, "(descriptor truncated by buffer end)")
}

func TestDescriptorUnknownAndVendor(t *testing.T) {
	assert := assert.New(t)

	out := render(descSense(0x00, []byte{0x21, 0x02, 0xde, 0xad}))
	assert.Contains(out, "Unknown descriptor type 0x21")
	assert.Contains(out, "de ad")

	out = render(descSense(0x00, []byte{0x80, 0x02, 0xde, 0xad}))
	assert.Contains(out, "Vendor specific descriptor type 0x80")
}

func TestDescriptorWalkDeterminism(t *testing.T) {
	assert := assert.New(t)

	b := descSense(0x05,
		[]byte{0x03, 0x02, 0x00, 0x63},
		[]byte{0x02, 0x06, 0x00, 0x00, 0x8a, 0x00, 0x07, 0x00},
		[]byte{0x21, 0x02, 0xde, 0xad},
	)

	assert.Equal(render(b), render(b))
}
