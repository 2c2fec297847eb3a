package component

// RenderableComponent marks an entity for terminal drawing
type RenderableComponent struct {
	Glyph rune
	Color uint32 // 0xRRGGBB
}
