// Package parallel provides the CPU parallel-for used by the software
// backend of hqx.
//
// The output image is divided into 64x64 pixel tiles that are shaded
// independently on a WorkerPool. Tiles carry no pixel storage: every
// output pixel depends only on read-only inputs, so workers write
// straight into disjoint regions of the destination.
//
// Thread safety: TileGrid is immutable after creation. WorkerPool is safe
// for concurrent use.
package parallel

// Tile size constants.
const (
	// TileWidth is the width of a tile in pixels.
	TileWidth = 64

	// TileHeight is the height of a tile in pixels.
	TileHeight = 64

	// TilePixels is the number of pixels in a full tile.
	TilePixels = TileWidth * TileHeight
)

// Tile is a rectangular region of the output image.
// Edge tiles may be smaller than TileWidth x TileHeight.
type Tile struct {
	// X and Y are the tile column and row indices.
	X, Y int

	// MinX, MinY are the inclusive pixel bounds; MaxX, MaxY are exclusive.
	MinX, MinY int
	MaxX, MaxY int
}

// Width returns the tile width in pixels.
func (t Tile) Width() int {
	return t.MaxX - t.MinX
}

// Height returns the tile height in pixels.
func (t Tile) Height() int {
	return t.MaxY - t.MinY
}

// Pixels returns the number of pixels covered by the tile.
func (t Tile) Pixels() int {
	return t.Width() * t.Height()
}

// Contains reports whether pixel (px, py) lies inside the tile.
func (t Tile) Contains(px, py int) bool {
	return px >= t.MinX && px < t.MaxX && py >= t.MinY && py < t.MaxY
}
