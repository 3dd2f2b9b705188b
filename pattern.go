package hqx

// Pattern space sizes.
const (
	// EdgePatterns is the number of distinct edge patterns (LUT columns).
	EdgePatterns = 256

	// CrossPatterns is the number of distinct cross patterns.
	CrossPatterns = 16
)

// Neighborhood holds the converted colors of a 3x3 texel block in
// row-major order. Index 4 is the center texel.
//
//	+----+----+----+
//	| 0  | 1  | 2  |
//	+----+----+----+
//	| 3  | 4  | 5  |
//	+----+----+----+
//	| 6  | 7  | 8  |
//	+----+----+----+
type Neighborhood [9]YUV

// Neighborhood slots.
const (
	nTopLeft = iota
	nTop
	nTopRight
	nLeft
	nCenter
	nRight
	nBottomLeft
	nBottom
	nBottomRight
)

// EdgePattern is an 8-bit mask of neighbors that differ from the center.
// Bits follow row-major grid order with the center skipped:
// 1, 2, 4 on the top row, 8 left, 16 right, 32, 64, 128 on the bottom row.
type EdgePattern uint8

// CrossPattern is a 4-bit mask of differences between pairs of
// edge-adjacent neighbors:
//
//	bit 0 (1): left vs top
//	bit 1 (2): top vs right
//	bit 2 (4): bottom vs left
//	bit 3 (8): right vs bottom
//
// The order matches the layout of the reference hq2x/hq3x/hq4x LUTs.
type CrossPattern uint8

// edgeWeights maps neighborhood slots to edge pattern bits.
// The center slot never contributes.
var edgeWeights = [9]EdgePattern{1, 2, 4, 8, 0, 16, 32, 64, 128}

// crossPairs lists the compared slots for each cross pattern bit.
var crossPairs = [4][2]int{
	{nLeft, nTop},
	{nTop, nRight},
	{nBottom, nLeft},
	{nRight, nBottom},
}

// Differ reports whether two converted colors differ by strictly more than
// the threshold on any channel. Equality at the threshold is not an edge.
func Differ(a, b, threshold YUV) bool {
	return abs32(a.Y-b.Y) > threshold.Y ||
		abs32(a.U-b.U) > threshold.U ||
		abs32(a.V-b.V) > threshold.V
}

// Classify computes the edge and cross patterns of a neighborhood.
func Classify(n *Neighborhood, threshold YUV) (EdgePattern, CrossPattern) {
	center := n[nCenter]

	var edge EdgePattern
	for i, w := range edgeWeights {
		if i == nCenter {
			continue
		}
		if Differ(center, n[i], threshold) {
			edge |= w
		}
	}

	var cross CrossPattern
	for bit, pair := range crossPairs {
		if Differ(n[pair[0]], n[pair[1]], threshold) {
			cross |= 1 << bit
		}
	}

	return edge, cross
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
