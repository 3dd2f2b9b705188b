package parallel

// TileGrid divides an output image into tiles.
//
// Tiles are stored in a flat slice in row-major order:
// index = ty * tilesX + tx.
type TileGrid struct {
	tiles  []Tile
	tilesX int
	tilesY int
	width  int
	height int
}

// NewTileGrid creates a grid covering a width x height image.
// A non-positive size yields an empty grid.
func NewTileGrid(width, height int) *TileGrid {
	if width <= 0 || height <= 0 {
		return &TileGrid{}
	}

	g := &TileGrid{
		tilesX: (width + TileWidth - 1) / TileWidth,
		tilesY: (height + TileHeight - 1) / TileHeight,
		width:  width,
		height: height,
	}
	g.tiles = make([]Tile, 0, g.tilesX*g.tilesY)

	for ty := range g.tilesY {
		for tx := range g.tilesX {
			g.tiles = append(g.tiles, Tile{
				X:    tx,
				Y:    ty,
				MinX: tx * TileWidth,
				MinY: ty * TileHeight,
				MaxX: min((tx+1)*TileWidth, width),
				MaxY: min((ty+1)*TileHeight, height),
			})
		}
	}
	return g
}

// TileAt returns the tile at tile coordinates (tx, ty).
// ok is false if the coordinates are out of range.
func (g *TileGrid) TileAt(tx, ty int) (Tile, bool) {
	if tx < 0 || tx >= g.tilesX || ty < 0 || ty >= g.tilesY {
		return Tile{}, false
	}
	return g.tiles[ty*g.tilesX+tx], true
}

// TileAtPixel returns the tile containing pixel (px, py).
// ok is false if the pixel is outside the image.
func (g *TileGrid) TileAtPixel(px, py int) (Tile, bool) {
	if px < 0 || px >= g.width || py < 0 || py >= g.height {
		return Tile{}, false
	}
	return g.TileAt(px/TileWidth, py/TileHeight)
}

// Tiles returns all tiles. The slice must not be modified.
func (g *TileGrid) Tiles() []Tile {
	return g.tiles
}

// TileCount returns the total number of tiles.
func (g *TileGrid) TileCount() int {
	return len(g.tiles)
}

// TilesX returns the number of tile columns.
func (g *TileGrid) TilesX() int {
	return g.tilesX
}

// TilesY returns the number of tile rows.
func (g *TileGrid) TilesY() int {
	return g.tilesY
}

// Width returns the covered image width in pixels.
func (g *TileGrid) Width() int {
	return g.width
}

// Height returns the covered image height in pixels.
func (g *TileGrid) Height() int {
	return g.height
}
