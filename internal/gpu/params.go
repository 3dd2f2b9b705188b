// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/hqx"
)

// paramsSize is the size of the Params uniform in hqx.wgsl:
// four u32 followed by four vec4<f32>.
const paramsSize = 16 + 4*16

// packParams serializes the uniform block for a pass.
func packParams(srcW, srcH uint32, cfg hqx.Config) []byte {
	buf := make([]byte, paramsSize)
	le := binary.LittleEndian
	le.PutUint32(buf[0:], srcW)
	le.PutUint32(buf[4:], srcH)
	le.PutUint32(buf[8:], uint32(cfg.Scale))      //nolint:gosec // scale validated to [1,4]
	le.PutUint32(buf[12:], uint32(cfg.LUTRows())) //nolint:gosec // at most 256 rows

	putVec4(buf[16:], cfg.Thresholds.Y, cfg.Thresholds.U, cfg.Thresholds.V, 0)
	for i := range 3 {
		r := cfg.Matrix.Row(i)
		putVec4(buf[32+i*16:], r[0], r[1], r[2], 0)
	}
	return buf
}

func putVec4(b []byte, x, y, z, w float32) {
	le := binary.LittleEndian
	le.PutUint32(b[0:], math.Float32bits(x))
	le.PutUint32(b[4:], math.Float32bits(y))
	le.PutUint32(b[8:], math.Float32bits(z))
	le.PutUint32(b[12:], math.Float32bits(w))
}

// packSource quantizes the source image to RGBA8 words, R in the low byte.
func packSource(src *hqx.Image) []byte {
	w, h := src.Size()
	out := make([]byte, w*h*4)
	for y := range h {
		for x := range w {
			c := src.Texel(x, y).NRGBA()
			i := (y*w + x) * 4
			packed := uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | 0xFF<<24
			binary.LittleEndian.PutUint32(out[i:], packed)
		}
	}
	return out
}

// unpackOutput writes RGBA8 words read back from the GPU into dst.
func unpackOutput(packed []byte, dst *hqx.Image) {
	w, h := dst.Size()
	for y := range h {
		for x := range w {
			val := binary.LittleEndian.Uint32(packed[(y*w+x)*4:])
			dst.Set(x, y, hqx.RGB{
				R: float32(val&0xFF) / 255,
				G: float32((val>>8)&0xFF) / 255,
				B: float32((val>>16)&0xFF) / 255,
			})
		}
	}
}
