/*
Package heatmap renders the cost of each block of a packed plane as an image.

Every 8 by 8 block becomes one cell colored by the number of words it packs
to, from blue for a block that is a lone terminator to red for a block of 64
non-zero coefficients. The map can be scaled up so one cell covers the pixels
of its block, and is written out as a GIF.
*/
package heatmap

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"

	"github.com/bodgit/gpeg/coeff"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/nfnt/resize"
)

const (
	blockWidth  = 8
	blockHeight = blockWidth
	maxWords    = blockWidth * blockHeight
	maxColors   = 256
)

var errBadScale = errors.New("heatmap: invalid scale")

// stops of the color ramp, evenly spaced
var stops = []color.RGBA{
	{0x00, 0x00, 0xff, 0xff},
	{0x00, 0xff, 0xff, 0xff},
	{0x00, 0xff, 0x00, 0xff},
	{0xff, 0xff, 0x00, 0xff},
	{0xff, 0x00, 0x00, 0xff},
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// Color returns the ramp color for a block packing to n words.
func Color(n int) color.RGBA {
	if n < 1 {
		n = 1
	}
	if n > maxWords {
		n = maxWords
	}
	t := float64(n-1) / float64(maxWords-1) * float64(len(stops)-1)
	i := int(t)
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	f := t - float64(i)
	a, b := stops[i], stops[i+1]
	return color.RGBA{lerp(a.R, b.R, f), lerp(a.G, b.G, f), lerp(a.B, b.B, f), 0xff}
}

// Render returns the map of p with each block covering scale by scale
// pixels.
func Render(p *coeff.Packed, scale int) (image.Image, error) {
	if scale < 1 {
		return nil, errBadScale
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	bw, bh := p.Width/blockWidth, p.Height/blockHeight
	m := image.NewRGBA(image.Rect(0, 0, bw, bh))
	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			n, err := p.BlockWords(by*bw + bx)
			if err != nil {
				return nil, err
			}
			m.SetRGBA(bx, by, Color(n))
		}
	}

	if scale == 1 {
		return m, nil
	}
	return resize.Resize(uint(bw*scale), uint(bh*scale), m, resize.NearestNeighbor), nil
}

// Encode writes the map of p to w as a GIF.
func Encode(w io.Writer, p *coeff.Packed, scale int) error {
	m, err := Render(p, scale)
	if err != nil {
		return err
	}

	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, maxColors), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return gif.Encode(w, pm, nil)
}
