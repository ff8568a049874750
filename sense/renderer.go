// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Top-level sense data rendering entry point.

package sense

import (
	"github.com/hreinecke/sg3-utils-sub007/scsi"
	"github.com/hreinecke/sg3-utils-sub007/utils"
)

// DefaultMaxForward bounds how deeply forwarded sense data descriptors may
// nest before rendering degrades to a hex dump.
const DefaultMaxForward = 4

// Renderer renders raw sense buffers as diagnostic text. The zero value uses
// the built-in name tables and the default forwarded-sense nesting bound.
type Renderer struct {
	Names      scsi.NameResolver
	MaxForward int
}

func (r *Renderer) names() scsi.NameResolver {
	if r.Names != nil {
		return r.Names
	}

	return scsi.DefaultNames{}
}

func (r *Renderer) maxForward() int {
	if r.MaxForward > 0 {
		return r.MaxForward
	}

	return DefaultMaxForward
}

// Render writes the textual form of sb and returns the number of characters
// actually written. It never fails: undecodable input degrades to a hex dump
// or a one-line diagnostic.
func (r *Renderer) Render(w *utils.BoundedWriter, sb []byte) int {
	start := w.Len()
	r.render(w, sb, 0)

	return w.Len() - start
}

func (r *Renderer) render(w *utils.BoundedWriter, sb []byte, depth int) {
	if len(sb) == 0 {
		w.Printf("sense buffer empty\n")
		return
	}

	h, ok := Normalize(sb)
	if !ok {
		w.Printf("Not sense data; in hex:\n")
		utils.HexDump(w, "", sb)
		return
	}

	switch {
	case h.Descriptor:
		r.renderDescriptorFormat(w, sb, h, depth)
	case h.ResponseCode == scsi.SENSE_FIXED_CURRENT || h.ResponseCode == scsi.SENSE_FIXED_DEFERRED:
		r.renderFixedFormat(w, sb, h)
	default:
		w.Printf("Sense data, response code 0x%02x not decodable; in hex:\n", h.ResponseCode)
		utils.HexDump(w, "", sb)
	}
}

func currency(deferred bool) string {
	if deferred {
		return "deferred"
	}

	return "current"
}
