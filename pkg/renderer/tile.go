package renderer

import (
	"math/rand"
)

// Tile is a contiguous run of pixels [Start, End) in row-major order
type Tile struct {
	ID     int        // Unique tile identifier
	Start  int        // First pixel index
	End    int        // One past the last pixel index
	Random *rand.Rand // Tile-specific random generator for deterministic results
}

// NewTile creates a tile covering pixels [start, end)
func NewTile(id, start, end int) *Tile {
	return &Tile{
		ID:     id,
		Start:  start,
		End:    end,
		Random: rand.New(rand.NewSource(int64(id))),
	}
}

// Len returns the number of pixels in the tile
func (t *Tile) Len() int {
	return t.End - t.Start
}

// Reseed resets the tile's random sequence. Called once per frame so a
// frame's samples depend only on the seed and tile ID.
func (t *Tile) Reseed(seed int64) {
	t.Random.Seed(seed)
}

// NewTiles splits pixelCount pixels into at most numTiles contiguous tiles.
// Tiles hold ceil(pixelCount/numTiles) pixels each and the last one takes
// whatever remains, so every pixel belongs to exactly one tile.
func NewTiles(pixelCount, numTiles int) []*Tile {
	if pixelCount <= 0 || numTiles <= 0 {
		return nil
	}

	tileSize := (pixelCount + numTiles - 1) / numTiles // Ceiling division

	var tiles []*Tile
	for start := 0; start < pixelCount; start += tileSize {
		end := min(start+tileSize, pixelCount)
		tiles = append(tiles, NewTile(len(tiles), start, end))
	}
	return tiles
}
