package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Atlas layout: the low cells hold procedural pattern glyphs for terrain,
// features, and gun parts; cells 32..126 hold the matching ASCII characters
// so HUD text can be drawn from the same texture.
const (
	glyphBlank = iota
	glyphSolid
	glyphShade
	glyphBoxThin
	glyphBoxHorizontal
	glyphBoxVertical
	glyphBoxSolid
	glyphMuzzle
	glyphSight
	glyphTrigger
	glyphCrosshair
	glyphMushroom
	glyphCandle

	glyphASCIIStart = 32
	glyphASCIIEnd   = 126
)

// glyphRect returns the atlas pixel rectangle of a glyph index. Out of range
// indexes map to the blank cell.
func glyphRect(index int) image.Rectangle {
	if index < 0 || index >= atlasColumns*atlasRows {
		index = glyphBlank
	}
	x := (index % atlasColumns) * glyphWidth
	y := (index / atlasColumns) * glyphHeight
	return image.Rect(x, y, x+glyphWidth, y+glyphHeight)
}

// glyphForRune maps a text rune to its atlas cell.
func glyphForRune(r rune) int {
	if r < glyphASCIIStart || r > glyphASCIIEnd {
		return glyphBlank
	}
	return int(r)
}

// glyphPixelOn defines the procedural glyph shapes over the 8x16 cell.
func glyphPixelOn(glyph, x, y int) bool {
	switch glyph {
	case glyphSolid:
		return true
	case glyphShade:
		return (x+y)%2 == 0
	case glyphBoxThin:
		return y >= 7 && y <= 8
	case glyphBoxHorizontal:
		return y >= 5 && y <= 10
	case glyphBoxVertical:
		return x >= 2 && x <= 5 && y >= 1 && y <= 14
	case glyphBoxSolid:
		return x >= 1 && x <= 6 && y >= 3 && y <= 12
	case glyphMuzzle:
		if x < 1 || x > 6 || y < 4 || y > 11 {
			return false
		}
		return x == 1 || x == 6 || y == 4 || y == 11
	case glyphSight:
		if x >= 3 && x <= 4 && y >= 2 && y <= 9 {
			return true
		}
		return x >= 1 && x <= 6 && y >= 10 && y <= 11
	case glyphTrigger:
		if y >= 2 && y <= 3 && x >= 1 && x <= 6 {
			return true
		}
		if x >= 5 && x <= 6 && y >= 4 && y <= 9 {
			return true
		}
		return y >= 10 && y <= 11 && x >= 3 && x <= 6
	case glyphCrosshair:
		if x >= 3 && x <= 4 && y >= 4 && y <= 11 {
			return true
		}
		return y >= 7 && y <= 8 && x >= 1 && x <= 6
	case glyphMushroom:
		if y >= 3 && y <= 7 && x >= 1 && x <= 6 {
			return !(y == 3 && (x == 1 || x == 6))
		}
		return x >= 3 && x <= 4 && y >= 8 && y <= 12
	case glyphCandle:
		if x >= 3 && x <= 4 && y >= 1 && y <= 3 {
			return true
		}
		return x >= 2 && x <= 5 && y >= 5 && y <= 13
	}
	return false
}

// buildGlyphAtlasRGBA renders the full atlas into a CPU-side image: pattern
// glyphs from glyphPixelOn, ASCII cells with the basicfont face. Glyphs are
// white on transparent so sprite tints multiply cleanly.
func buildGlyphAtlasRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, atlasColumns*glyphWidth, atlasRows*glyphHeight))
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for g := glyphBlank; g <= glyphCandle; g++ {
		r := glyphRect(g)
		for y := 0; y < glyphHeight; y++ {
			for x := 0; x < glyphWidth; x++ {
				if glyphPixelOn(g, x, y) {
					img.SetRGBA(r.Min.X+x, r.Min.Y+y, white)
				}
			}
		}
	}
	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: basicfont.Face7x13,
	}
	for ch := glyphASCIIStart; ch <= glyphASCIIEnd; ch++ {
		r := glyphRect(ch)
		d.Dot = fixed.P(r.Min.X, r.Min.Y+basicfont.Face7x13.Ascent)
		d.DrawString(string(rune(ch)))
	}
	return img
}

// buildGlyphImages uploads the atlas and slices it into per-glyph
// subimages, indexed by glyph constant.
func buildGlyphImages() []*ebiten.Image {
	atlas := ebiten.NewImageFromImage(buildGlyphAtlasRGBA())
	out := make([]*ebiten.Image, atlasColumns*atlasRows)
	for i := range out {
		out[i] = atlas.SubImage(glyphRect(i)).(*ebiten.Image)
	}
	return out
}
