package sprite

import "image/color"

// Full-intensity RGB565 colors used by the demo.
var (
	Black   = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	Red     = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	Magenta = color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}
	White   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// RGB565 packs c into 16 bits: rrrrrggggggbbbbb.
func RGB565(c color.RGBA) uint16 {
	rr := uint16(c.R>>3) & 0x1F
	gg := uint16(c.G>>2) & 0x3F
	bb := uint16(c.B>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

// FromRGB565 expands a packed pixel back to 8 bits per channel.
func FromRGB565(p uint16) color.RGBA {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F
	return color.RGBA{
		R: uint8((uint32(rr) * 255) / 31),
		G: uint8((uint32(gg) * 255) / 63),
		B: uint8((uint32(bb) * 255) / 31),
		A: 0xff,
	}
}
