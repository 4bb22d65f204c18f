/*
Package plane implements a rectangular plane of transform coefficients and
a reader and writer for its text form.

The text form is a sequence of whitespace separated decimal integers, one
per coefficient, in natural row-major order. It is the format produced by
instrumented decoders when dumping the dequantized coefficients of each color
component, so the dimensions are not stored and must be supplied by the
caller.
*/
package plane

import (
	"errors"
	"fmt"
)

const (
	blockWidth  = 8
	blockHeight = blockWidth
	blockSize   = blockWidth * blockHeight
)

// ErrDimensions is returned when a plane is not a positive whole number of
// 8 by 8 blocks in each direction, or its data does not match.
var ErrDimensions = errors.New("plane: invalid dimensions")

// Plane is a natural-order grid of signed coefficients.
type Plane struct {
	Width  int
	Height int
	Data   []int16
}

// New returns a zeroed plane of the given size.
func New(width, height int) (*Plane, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	return &Plane{
		Width:  width,
		Height: height,
		Data:   make([]int16, width*height),
	}, nil
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 || width%blockWidth != 0 || height%blockHeight != 0 {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	return nil
}

// Validate checks the dimensions agree with the data.
func (p *Plane) Validate() error {
	if err := checkDimensions(p.Width, p.Height); err != nil {
		return err
	}
	if len(p.Data) != p.Width*p.Height {
		return fmt.Errorf("%w: %d values for %dx%d", ErrDimensions, len(p.Data), p.Width, p.Height)
	}
	return nil
}

// BlocksWide returns the number of block columns.
func (p *Plane) BlocksWide() int {
	return p.Width / blockWidth
}

// BlocksHigh returns the number of block rows.
func (p *Plane) BlocksHigh() int {
	return p.Height / blockHeight
}

// Block returns the 8 by 8 block at block column bx and block row by in
// natural order.
func (p *Plane) Block(bx, by int) (b [blockSize]int16) {
	offset := by*blockHeight*p.Width + bx*blockWidth
	for y := 0; y < blockHeight; y++ {
		copy(b[y*blockWidth:(y+1)*blockWidth], p.Data[offset+y*p.Width:])
	}
	return
}

// Mismatch records a coefficient that differs between two planes.
type Mismatch struct {
	X, Y      int
	Want, Got int16
}

func (m Mismatch) String() string {
	return fmt.Sprintf("mismatch at (%d,%d) in block (%d, %d): %d != %d", m.X, m.Y, m.X/blockWidth, m.Y/blockHeight, m.Want, m.Got)
}

// Compare returns every coefficient where other differs from p.
func (p *Plane) Compare(other *Plane) ([]Mismatch, error) {
	if p.Width != other.Width || p.Height != other.Height || len(p.Data) != len(other.Data) {
		return nil, fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensions, p.Width, p.Height, other.Width, other.Height)
	}
	var m []Mismatch
	for i := range p.Data {
		if p.Data[i] != other.Data[i] {
			m = append(m, Mismatch{
				X:    i % p.Width,
				Y:    i / p.Width,
				Want: p.Data[i],
				Got:  other.Data[i],
			})
		}
	}
	return m, nil
}
