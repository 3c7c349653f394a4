package display

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/vovakirdan/tui-pathfind/internal/maps/formats"
	"github.com/vovakirdan/tui-pathfind/internal/world"
)

var (
	colorBlack   = color.RGBA{A: 0xff}
	colorGray    = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	colorWhite   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorYellow  = color.RGBA{R: 0xff, G: 0xd7, A: 0xff}
	colorMagenta = color.RGBA{R: 0xff, B: 0xff, A: 0xff}
)

// imageColor returns the pixel colour of a tag. World tags use the palette
// so that an exported image can be loaded back as a map.
func imageColor(f world.Field, p formats.Palette) color.RGBA {
	switch f {
	case world.Start:
		return p.Start
	case world.Goal:
		return p.Goal
	case world.Impassable:
		return p.Wall
	case world.Visited:
		return colorGray
	case world.Frontier:
		return colorYellow
	case world.Current:
		return colorMagenta
	case world.Path:
		return colorWhite
	default:
		return colorBlack
	}
}

// Image draws the buffer with scale×scale pixels per cell.
func (b *Buffer) Image(scale int, p formats.Palette) *image.RGBA {
	scale = max(scale, 1)
	img := image.NewRGBA(image.Rect(0, 0, b.W*scale, b.H*scale))
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			r := image.Rect(x*scale, y*scale, (x+1)*scale, (y+1)*scale)
			c := imageColor(b.cells[y*b.W+x], p)
			draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
		}
	}
	return img
}

// EncodePNG writes the buffer as a PNG image.
func (b *Buffer) EncodePNG(w io.Writer, scale int, p formats.Palette) error {
	return png.Encode(w, b.Image(scale, p))
}
