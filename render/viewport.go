package render

// Viewport is the world-space window drawn by the terminal renderer
// The scene is seen from the side: X runs across columns and Z runs up the rows
type Viewport struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
}

// NewBoxViewport frames a box of the given half extent, showing headroom above its floor
func NewBoxViewport(halfExtent, headroom float64) Viewport {
	return Viewport{
		MinX: -halfExtent,
		MaxX: halfExtent,
		MinZ: -halfExtent,
		MaxZ: halfExtent + headroom,
	}
}

// Project maps world (x, z) into a cols x rows grid with row 0 at the top
// Points outside the viewport report false
func (v Viewport) Project(x, z float64, cols, rows int) (int, int, bool) {
	if cols <= 0 || rows <= 0 || v.MaxX <= v.MinX || v.MaxZ <= v.MinZ {
		return 0, 0, false
	}
	if x < v.MinX || x > v.MaxX || z < v.MinZ || z > v.MaxZ {
		return 0, 0, false
	}

	col := int((x - v.MinX) / (v.MaxX - v.MinX) * float64(cols))
	up := int((z - v.MinZ) / (v.MaxZ - v.MinZ) * float64(rows))
	col = min(col, cols-1)
	up = min(up, rows-1)
	return col, rows - 1 - up, true
}
