package hqx

// YUV is a color converted into a luma/chroma space used only for edge
// detection. Components are not clamped.
type YUV struct {
	Y, U, V float32
}

// YUVMatrix is a 3x3 RGB to YUV transform in row-major order:
//
//	[Y]   [m0 m1 m2]   [R]
//	[U] = [m3 m4 m5] * [G]
//	[V]   [m6 m7 m8]   [B]
type YUVMatrix [9]float32

// DefaultYUVMatrix approximates BT.601 luma with two chroma difference rows.
var DefaultYUVMatrix = YUVMatrix{
	0.299, 0.587, 0.114,
	-0.169, -0.331, 0.5,
	0.5, -0.419, -0.081,
}

// Convert maps an RGB triple into YUV.
func (m *YUVMatrix) Convert(c RGB) YUV {
	return YUV{
		Y: m[0]*c.R + m[1]*c.G + m[2]*c.B,
		U: m[3]*c.R + m[4]*c.G + m[5]*c.B,
		V: m[6]*c.R + m[7]*c.G + m[8]*c.B,
	}
}

// Row returns row i (0 = Y, 1 = U, 2 = V) of the matrix.
func (m *YUVMatrix) Row(i int) [3]float32 {
	return [3]float32{m[i*3], m[i*3+1], m[i*3+2]}
}
