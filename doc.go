// Package hqx implements the HQx family of edge-adaptive pixel-art
// upscaling filters (hq2x, hq3x, hq4x) driven by precomputed lookup tables.
//
// For every output pixel the filter:
//
//  1. samples the 3x3 texel block around the source texel containing it,
//  2. converts the block to YUV and compares the center against its eight
//     neighbors (EdgePattern) and four pairs of edge neighbors (CrossPattern),
//  3. composes a LUT address from the patterns and the pixel's sub-position
//     inside the texel (QuadrantIndex),
//  4. blends four candidate texels with the normalized LUT weights.
//
// Each output pixel is independent, so a pass is a pure data-parallel map.
// The software backend runs it on a CPU worker pool; a GPU backend runs the
// same kernel as a compute shader when registered:
//
//	import _ "github.com/gogpu/hqx/gpu" // enables GPU acceleration
//
// # Quick Start
//
//	lut, err := hqx.LoadLUT("resources/hq2x.png", 2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	f, err := hqx.New(lut, hqx.DefaultConfig(2))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	src, err := hqx.LoadImage("sprite.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := f.Upscale(context.Background(), src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = out.SavePNG("sprite@2x.png")
//
// # LUT contract
//
// The LUT must be 256 x 16*scale^2 with non-negative weights whose sum is
// positive at every entry. The table is not authored by this package; use
// the reference hq2x/hq3x/hq4x assets or IdentityLUT. Shape is validated on
// load; weight sums are checked only with WithStrictLUT.
//
// Colors are blended as given: no gamma or color management is applied.
package hqx
