package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const bytesPerSample = 4

var errTruncated = errors.New("input length is not a multiple of 4 bytes")

func readFloat32(r io.Reader) ([]float64, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if len(raw)%bytesPerSample != 0 {
		return nil, fmt.Errorf("%w: %d bytes", errTruncated, len(raw))
	}

	out := make([]float64, len(raw)/bytesPerSample)
	for i := range out {
		bits := binary.LittleEndian.Uint32(raw[i*bytesPerSample:])
		out[i] = float64(math.Float32frombits(bits))
	}

	return out, nil
}

func writeFloat32(w io.Writer, samples []float64) error {
	bw := bufio.NewWriter(w)

	var buf [bytesPerSample]byte
	for _, v := range samples {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(v)))

		if _, err := bw.Write(buf[:]); err != nil {
			return err
		}
	}

	return bw.Flush()
}
