package formats

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/vovakirdan/tui-pathfind/internal/world"
)

// Palette maps pixel colours to cell tags. Alpha is ignored; any other
// colour is Passable.
type Palette struct {
	Start color.RGBA
	Goal  color.RGBA
	Wall  color.RGBA
}

// DefaultPalette returns pure green starts, pure red goals and pure blue walls.
func DefaultPalette() Palette {
	return Palette{
		Start: color.RGBA{G: 0xff, A: 0xff},
		Goal:  color.RGBA{R: 0xff, A: 0xff},
		Wall:  color.RGBA{B: 0xff, A: 0xff},
	}
}

// NewPalette builds a palette from "#rrggbb" strings.
// Empty strings keep the default colour.
func NewPalette(start, goal, wall string) (Palette, error) {
	p := DefaultPalette()
	for _, f := range []struct {
		s   string
		dst *color.RGBA
	}{
		{start, &p.Start},
		{goal, &p.Goal},
		{wall, &p.Wall},
	} {
		if f.s == "" {
			continue
		}
		c, err := ParseHexColor(f.s)
		if err != nil {
			return Palette{}, err
		}
		*f.dst = c
	}
	return p, nil
}

// ParseHexColor parses "#rrggbb" (the '#' is optional).
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Field classifies a pixel colour.
func (p Palette) Field(c color.Color) world.Field {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	switch {
	case sameRGB(n, p.Goal):
		return world.Goal
	case sameRGB(n, p.Start):
		return world.Start
	case sameRGB(n, p.Wall):
		return world.Impassable
	default:
		return world.Passable
	}
}

func sameRGB(n color.NRGBA, c color.RGBA) bool {
	return n.R == c.R && n.G == c.G && n.B == c.B
}

// DecodeImage builds a grid with one cell per pixel.
func DecodeImage(img image.Image, p Palette) *world.Grid {
	b := img.Bounds()
	grid := world.NewGrid(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			grid.Set(world.P(x, y), p.Field(img.At(b.Min.X+x, b.Min.Y+y)))
		}
	}
	return grid
}

// ParsePNG parses a PNG bitmap map.
func ParsePNG(data []byte, p Palette) (Map, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return Map{}, fmt.Errorf("png decode: %w", err)
	}
	return Map{Grid: DecodeImage(img, p)}, nil
}

// ParseBMP parses a BMP bitmap map.
func ParseBMP(data []byte, p Palette) (Map, error) {
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return Map{}, fmt.Errorf("bmp decode: %w", err)
	}
	return Map{Grid: DecodeImage(img, p)}, nil
}

// EncodeImage draws a grid with one pixel per cell, the inverse of
// DecodeImage. Passable cells are black.
func EncodeImage(g *world.Grid, p Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	for _, pos := range g.Positions() {
		c := color.RGBA{A: 0xff}
		switch g.At(pos) {
		case world.Start:
			c = p.Start
		case world.Goal:
			c = p.Goal
		case world.Impassable:
			c = p.Wall
		}
		img.SetRGBA(pos.X, pos.Y, c)
	}
	return img
}
