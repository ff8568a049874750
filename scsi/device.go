// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Pass-through transport collaborator interface. The decoders in this module
// perform no I/O themselves; a transport hands them whatever the device
// returned.

package scsi

import (
	"fmt"
)

// Device is a SCSI pass-through transport. Implementations issue command
// descriptor blocks and copy back raw response bytes; they live outside this
// module.
type Device interface {
	Open() error
	Close() error

	// Exec issues cdb and fills data with the transferred bytes, returning the
	// number of bytes the device actually returned. A command that completed
	// with CHECK CONDITION status returns a *CheckCondition error carrying the
	// raw sense buffer.
	Exec(cdb []byte, data []byte) (int, error)
}

// CheckCondition is the error a transport returns when a command completes
// with sense data available.
type CheckCondition struct {
	ScsiStatus   uint8
	HostStatus   uint16
	DriverStatus uint16
	Sense        []byte // raw sense buffer, possibly shorter than declared
}

func (e *CheckCondition) Error() string {
	return fmt.Sprintf("SCSI status: %#02x, host status: %#02x, driver status: %#02x, %d sense bytes",
		e.ScsiStatus, e.HostStatus, e.DriverStatus, len(e.Sense))
}
