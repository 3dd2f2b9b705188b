package hqx

import "math"

// Address is a LUT coordinate: Col is the edge pattern, Row combines the
// cross pattern with the quadrant index.
type Address struct {
	Col, Row int
}

// SubPixel maps an output coordinate to the source texel that contains it
// and the fractional position of the output pixel center inside that texel.
// frac is in (0, 1).
func SubPixel(o, scale int) (texel int, frac float32) {
	texel = o / scale
	sub := o - texel*scale
	frac = (float32(sub) + 0.5) / float32(scale)
	return texel, frac
}

// QuadrantIndex returns which of the scale x scale sub-positions the
// fractional position (fx, fy) falls into, linearized as qy*scale + qx.
func QuadrantIndex(fx, fy float32, scale int) int {
	qx := subIndex(fx, scale)
	qy := subIndex(fy, scale)
	return qy*scale + qx
}

func subIndex(f float32, scale int) int {
	q := int(math.Floor(float64(f * float32(scale))))
	if q < 0 {
		return 0
	}
	if q >= scale {
		return scale - 1
	}
	return q
}

// ComposeAddress combines the patterns and quadrant into a LUT address:
// (edge, cross*scale^2 + quadrant).
func ComposeAddress(edge EdgePattern, cross CrossPattern, quadrant, scale int) Address {
	return Address{
		Col: int(edge),
		Row: int(cross)*scale*scale + quadrant,
	}
}
