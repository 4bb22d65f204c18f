package coeff

import (
	"fmt"

	"github.com/bodgit/gpeg/plane"
	"github.com/bodgit/gpeg/zigzag"
)

type encoder struct {
	stream []Word
}

func (e *encoder) emit(w Word) {
	e.stream = append(e.stream, w)
}

// encode packs the 64 coefficients of one block in zigzag order.
func (e *encoder) encode(coeffs *[blockSize]int16) {
	var run int
	for _, v := range coeffs {
		if v == 0 {
			run++
			continue
		}
		// A filler word spends 15 zeros plus the zero it carries
		for run > maxRun {
			e.emit(NewWord(maxRun, 0))
			run -= maxRun + 1
		}
		e.emit(NewWord(run, v))
		run = 0
	}
	if run > 0 {
		e.emit(Terminator)
	}
}

func (e *encoder) pad() {
	if mod := len(e.stream) % Alignment; mod > 0 {
		e.stream = append(e.stream, make([]Word, Alignment-mod)...)
	}
}

// Pack packs the natural-order coefficients of a plane.
func Pack(width, height int, data []int16) (*Packed, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrDimensions, len(data), width, height)
	}
	for i, v := range data {
		if v < MinValue || v > MaxValue {
			return nil, fmt.Errorf("%w: %d at (%d,%d)", ErrRange, v, i%width, i/width)
		}
	}

	blocksWide, blocksHigh := width/blockWidth, height/blockHeight
	p := &Packed{
		Width:  width,
		Height: height,
		Index:  make([]uint32, 0, blocksWide*blocksHigh),
	}

	e := encoder{
		stream: make([]Word, 0, len(data)/4),
	}
	zz := zigzag.Forward(width)
	var coeffs [blockSize]int16
	for by := 0; by < blocksHigh; by++ {
		for bx := 0; bx < blocksWide; bx++ {
			p.Index = append(p.Index, uint32(len(e.stream)))
			offset := by*blockHeight*width + bx*blockWidth
			for k := range coeffs {
				coeffs[k] = data[offset+zz.At(k)]
			}
			e.encode(&coeffs)
		}
	}
	e.pad()
	p.Stream = e.stream

	return p, nil
}

// PackPlane packs p.
func PackPlane(p *plane.Plane) (*Packed, error) {
	return Pack(p.Width, p.Height, p.Data)
}
