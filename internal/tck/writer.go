// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tck

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// WriteFile writes a Float32LE .tck file holding the given streamlines.
// The pipeline itself never produces track files (the MRtrix3 tools do);
// this writer backs fixtures and synthetic subject directories.
func WriteFile(path string, streamlines [][][3]float32) error {
	header := buildHeader(len(streamlines))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(header); err != nil {
		return err
	}

	writeTriplet := func(x, y, z float32) error {
		for _, v := range []float32{x, y, z} {
			if err := binary.Write(w, binary.LittleEndian, v); err != nil {
				return err
			}
		}
		return nil
	}

	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	for _, sl := range streamlines {
		for _, p := range sl {
			if err := writeTriplet(p[0], p[1], p[2]); err != nil {
				return err
			}
		}
		if err := writeTriplet(nan, nan, nan); err != nil {
			return err
		}
	}
	if err := writeTriplet(inf, inf, inf); err != nil {
		return err
	}
	return w.Flush()
}

// buildHeader renders the text header with a self-consistent data offset.
// The offset appears inside the header, so the length is resolved by
// iterating until it stabilizes.
func buildHeader(count int) string {
	render := func(offset int) string {
		return fmt.Sprintf("%s\ndatatype: Float32LE\ncount: %d\nfile: . %d\nEND\n",
			magic, count, offset)
	}
	offset := len(render(0))
	for {
		h := render(offset)
		if len(h) == offset {
			return h
		}
		offset = len(h)
	}
}
