package coeff

import (
	"fmt"
	"io"

	"github.com/bodgit/gpeg/plane"
	"github.com/bodgit/gpeg/zigzag"
)

type decoder struct {
	stream []Word
	pos    int
}

// decode unpacks the next block, calling set with each zigzag position and
// non-zero coefficient. Positions that are not set are zero.
func (d *decoder) decode(set func(k int, v int16)) error {
	for k := 0; k < blockSize; {
		if d.pos >= len(d.stream) {
			return io.ErrUnexpectedEOF
		}
		w := d.stream[d.pos]
		d.pos++
		if w.IsTerminator() {
			break
		}
		k += w.Zeros()
		if k >= blockSize {
			return ErrMalformedBlock
		}
		set(k, w.Value())
		k++
	}
	return nil
}

// Unpack reverses Pack, returning the natural-order coefficients of a
// width by height plane. The stream is read in block-row-major order.
func Unpack(width, height int, stream []Word) (*plane.Plane, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	p, err := plane.New(width, height)
	if err != nil {
		return nil, err
	}

	d := decoder{stream: stream}
	zz := zigzag.Forward(width)
	for by := 0; by < p.BlocksHigh(); by++ {
		for bx := 0; bx < p.BlocksWide(); bx++ {
			block := p.Data[by*blockHeight*width+bx*blockWidth:]
			if err := d.decode(func(k int, v int16) {
				block[zz.At(k)] = v
			}); err != nil {
				return nil, fmt.Errorf("block (%d, %d): %w", bx, by, err)
			}
		}
	}
	return p, nil
}

// Unpack reverses Pack.
func (p *Packed) Unpack() (*plane.Plane, error) {
	return Unpack(p.Width, p.Height, p.Stream)
}

func (p *Packed) seek(i int) (*decoder, error) {
	if i < 0 || i >= len(p.Index) {
		return nil, fmt.Errorf("%w: no block %d", ErrInvalidIndex, i)
	}
	return &decoder{stream: p.Stream, pos: int(p.Index[i])}, nil
}

// Block decodes block i, in block-row-major order, using the index. The
// coefficients are returned in natural 8 by 8 order.
func (p *Packed) Block(i int) ([blockSize]int16, error) {
	var b [blockSize]int16
	d, err := p.seek(i)
	if err != nil {
		return b, err
	}
	zz := zigzag.Forward(blockWidth)
	if err := d.decode(func(k int, v int16) {
		b[zz.At(k)] = v
	}); err != nil {
		return b, fmt.Errorf("block %d: %w", i, err)
	}
	return b, nil
}

// BlockWords returns the number of words used by block i, including any
// terminator.
func (p *Packed) BlockWords(i int) (int, error) {
	d, err := p.seek(i)
	if err != nil {
		return 0, err
	}
	if i+1 < len(p.Index) {
		return int(p.Index[i+1] - p.Index[i]), nil
	}
	if err := d.decode(func(int, int16) {}); err != nil {
		return 0, fmt.Errorf("block %d: %w", i, err)
	}
	return d.pos - int(p.Index[i]), nil
}
