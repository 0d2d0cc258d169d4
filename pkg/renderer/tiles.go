package renderer

import "image"

// Tile is a rectangular region of the output image rendered as one task
type Tile struct {
	ID     int
	Bounds image.Rectangle
}

// NewTileGrid divides the image into tiles of at most tileSize x tileSize
func NewTileGrid(width, height, tileSize int) []Tile {
	var tiles []Tile
	id := 0

	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			tiles = append(tiles, Tile{
				ID:     id,
				Bounds: image.Rect(x, y, min(x+tileSize, width), min(y+tileSize, height)),
			})
			id++
		}
	}

	return tiles
}
