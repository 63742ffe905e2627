// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tck reads the MRtrix3 track file format (.tck) far enough to
// count streamlines. The format is a text header (key: value lines between
// a "mrtrix tracks" magic line and an END marker) followed by binary
// float triplets; each streamline is terminated by a NaN triplet and the
// stream by an Inf triplet.
package tck

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const magic = "mrtrix tracks"

// Header holds the parsed .tck header fields needed for counting.
type Header struct {
	// Datatype is the on-disk point encoding (e.g. "Float32LE").
	Datatype string

	// Offset is the byte offset of the binary track data, from the
	// header's "file: . <offset>" field.
	Offset int64

	// Count is the streamline count declared in the header, or -1 when
	// the header omits or leaves the count field unparseable. Writers
	// that were interrupted leave it blank, so it cannot be required.
	Count int64

	// Fields holds all raw header key/value pairs (last value wins).
	Fields map[string]string
}

// ReadHeader parses the text header from r. It stops at the END marker and
// does not read track data.
func ReadHeader(r io.Reader) (Header, error) {
	br := bufio.NewReader(r)

	first, err := br.ReadString('\n')
	if err != nil {
		return Header{}, fmt.Errorf("reading magic line: %w", err)
	}
	if strings.TrimSpace(first) != magic {
		return Header{}, fmt.Errorf("not a tck file: magic line %q", strings.TrimSpace(first))
	}

	h := Header{Count: -1, Fields: make(map[string]string)}
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return Header{}, fmt.Errorf("reading header line: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "END" {
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return Header{}, fmt.Errorf("malformed header line %q", line)
		}
		h.Fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	h.Datatype = h.Fields["datatype"]
	if h.Datatype == "" {
		return Header{}, fmt.Errorf("header missing datatype field")
	}
	if _, _, err := pointCodec(h.Datatype); err != nil {
		return Header{}, err
	}

	fileField := h.Fields["file"]
	name, offsetStr, ok := strings.Cut(fileField, " ")
	if !ok || strings.TrimSpace(name) != "." {
		return Header{}, fmt.Errorf("unsupported file field %q (only single-file tracks)", fileField)
	}
	offset, err := strconv.ParseInt(strings.TrimSpace(offsetStr), 10, 64)
	if err != nil || offset <= 0 {
		return Header{}, fmt.Errorf("invalid data offset in file field %q", fileField)
	}
	h.Offset = offset

	if raw, ok := h.Fields["count"]; ok {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n >= 0 {
			h.Count = n
		}
	}

	return h, nil
}

// Info opens a .tck file and returns its parsed header.
func Info(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()
	h, err := ReadHeader(f)
	if err != nil {
		return Header{}, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}

// Count returns the number of streamlines in the .tck file at path. The
// header count field is trusted when present; otherwise the binary track
// data is scanned and streamline terminators counted.
func Count(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h, err := ReadHeader(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	if h.Count >= 0 {
		return h.Count, nil
	}

	if _, err := f.Seek(h.Offset, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%s: seeking to track data: %w", path, err)
	}
	n, err := scanCount(bufio.NewReader(f), h.Datatype)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// pointCodec maps a header datatype to the point size in bytes and its byte
// order. Only float track encodings exist in the format.
func pointCodec(datatype string) (width int, order binary.ByteOrder, err error) {
	switch datatype {
	case "Float32LE":
		return 4, binary.LittleEndian, nil
	case "Float32BE":
		return 4, binary.BigEndian, nil
	case "Float64LE":
		return 8, binary.LittleEndian, nil
	case "Float64BE":
		return 8, binary.BigEndian, nil
	default:
		return 0, nil, fmt.Errorf("unsupported datatype %q", datatype)
	}
}

// scanCount walks the binary track data counting NaN triplets until the
// Inf triplet that terminates the stream. Truncated data is an error.
func scanCount(r io.Reader, datatype string) (int64, error) {
	width, order, err := pointCodec(datatype)
	if err != nil {
		return 0, err
	}

	buf := make([]byte, 3*width)
	var count int64
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return 0, fmt.Errorf("track data truncated: %w", err)
		}
		x, y, z := decodeTriplet(buf, width, order)
		switch {
		case math.IsInf(x, 0) && math.IsInf(y, 0) && math.IsInf(z, 0):
			return count, nil
		case math.IsNaN(x) && math.IsNaN(y) && math.IsNaN(z):
			count++
		}
	}
}

func decodeTriplet(buf []byte, width int, order binary.ByteOrder) (x, y, z float64) {
	at := func(i int) float64 {
		b := buf[i*width : (i+1)*width]
		if width == 4 {
			return float64(math.Float32frombits(order.Uint32(b)))
		}
		return math.Float64frombits(order.Uint64(b))
	}
	return at(0), at(1), at(2)
}
