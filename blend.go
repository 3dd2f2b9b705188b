package hqx

// Candidate slots, in weight channel order.
const (
	CandidateCenter = iota
	CandidateDiagonal
	CandidateHorizontal
	CandidateVertical
)

// offsetSign returns the direction of the sub-pixel position from the texel
// center: -1, +1, or 0 when it sits exactly on the center line (the middle
// sub-pixel of odd scales).
func offsetSign(f float32) int {
	switch d := f - 0.5; {
	case d < 0:
		return -1
	case d > 0:
		return 1
	default:
		return 0
	}
}

// Candidates selects the four texels eligible for blending at the
// fractional position (fx, fy) inside texel (tx, ty): the center, the
// diagonal neighbor in the direction of the offset, and the horizontal and
// vertical neighbors in that direction.
func Candidates(src Sampler, tx, ty int, fx, fy float32) [4]RGB {
	dx := offsetSign(fx)
	dy := offsetSign(fy)
	return [4]RGB{
		CandidateCenter:     src.Texel(tx, ty),
		CandidateDiagonal:   src.Texel(tx+dx, ty+dy),
		CandidateHorizontal: src.Texel(tx+dx, ty),
		CandidateVertical:   src.Texel(tx, ty+dy),
	}
}

// Blend returns the weighted mean of the candidates, w[i] applying to c[i].
// With non-negative weights the result lies in the convex hull of the
// candidates. A zero weight sum violates the LUT contract; the center
// candidate is returned instead of NaN.
func Blend(w [4]float32, c [4]RGB) RGB {
	sum := w[0] + w[1] + w[2] + w[3]
	if sum == 0 {
		return c[CandidateCenter]
	}
	var out RGB
	for i := range c {
		out = out.add(c[i].scale(w[i] / sum))
	}
	return out
}
