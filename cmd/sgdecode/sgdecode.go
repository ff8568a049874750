// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// sgdecode renders hex-encoded SCSI sense buffers and device identification
// VPD pages as diagnostic text. It reads bytes from a file (or stdin) and
// performs no device I/O.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hreinecke/sg3-utils-sub007/scsi"
	"github.com/hreinecke/sg3-utils-sub007/sense"
	"github.com/hreinecke/sg3-utils-sub007/sensedb"
	"github.com/hreinecke/sg3-utils-sub007/utils"
	"github.com/hreinecke/sg3-utils-sub007/vpd"
)

// readHex parses whitespace- or comma-separated hex bytes, tolerating 0x
// prefixes and full-line # comments.
func readHex(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}

	var out []byte

	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		for _, tok := range strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ','
		}) {
			tok = strings.TrimPrefix(tok, "0x")
			v, err := strconv.ParseUint(tok, 16, 8)
			if err != nil {
				return nil, errors.Wrapf(err, "bad hex byte %q", tok)
			}

			out = append(out, byte(v))
		}
	}

	return out, nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	return os.Open(path)
}

func main() {
	fmt.Println("sgdecode - SCSI sense / device identification decoder")
	fmt.Printf("Built with %s on %s (%s)\n\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	senseFile := flag.String("sense", "", "File with hex-encoded sense data, '-' for stdin")
	vpdFile := flag.String("vpd", "", "File with a hex-encoded device identification VPD page, '-' for stdin")
	rawPage := flag.Bool("rawpage", false, "VPD input includes the 4-byte page header")
	dbFile := flag.String("db", "sensedb.yaml", "Additional sense code database")
	maxLen := flag.Int("maxlen", 1<<16, "Output capacity in characters")
	depth := flag.Int("depth", sense.DefaultMaxForward, "Forwarded sense data nesting limit")
	flag.Parse()

	if *senseFile == "" && *vpdFile == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	db, err := sensedb.Open(*dbFile)
	if err != nil {
		logrus.WithError(err).Warn("sense code database unusable, using built-in tables")
	}
	names := db.Names(scsi.DefaultNames{})

	w := utils.NewBoundedWriter(*maxLen)

	if *senseFile != "" {
		in, err := openInput(*senseFile)
		if err != nil {
			logrus.WithError(err).Fatal("cannot open sense input")
		}

		buf, err := readHex(in)
		in.Close()
		if err != nil {
			logrus.WithError(err).Fatal("cannot parse sense input")
		}

		r := sense.Renderer{Names: names, MaxForward: *depth}
		r.Render(w, buf)
	}

	if *vpdFile != "" {
		in, err := openInput(*vpdFile)
		if err != nil {
			logrus.WithError(err).Fatal("cannot open VPD input")
		}

		page, err := readHex(in)
		in.Close()
		if err != nil {
			logrus.WithError(err).Fatal("cannot parse VPD input")
		}

		if *rawPage {
			if page, err = vpd.DeviceIDPayload(page); err != nil {
				logrus.WithError(err).Fatal("bad device identification page")
			}
		}

		w.Printf("Device identification designators:\n")
		if err := vpd.RenderDeviceID(w, names, page); err != nil {
			logrus.WithError(err).Warn("device identification page malformed")
		}
	}

	fmt.Print(w.String())

	if w.Len() >= *maxLen {
		logrus.Warnf("output truncated at %d characters", *maxLen)
	}
}
