/*
Package coeff implements a run-length packing of 8 by 8 blocks of transform
coefficients into a stream of 16-bit words with a per-block index.

Each word holds a 4-bit count of zero coefficients in its top nibble followed
by a 12-bit two's complement coefficient. A word with both fields zero
terminates a block, every remaining coefficient in zigzag order is zero. The
stream is padded with zero words to a multiple of 512 words so it can be laid
out as fixed width rows, and the index records where each block starts so
any block can be decoded without scanning from the start.
*/
package coeff

import (
	"errors"
	"fmt"
)

const (
	blockWidth  = 8
	blockHeight = blockWidth
	blockSize   = blockWidth * blockHeight

	maxRun    = 15
	valueBits = 12
	valueMask = 1<<valueBits - 1

	// MinValue is the smallest coefficient that can be packed.
	MinValue = -1 << (valueBits - 1)
	// MaxValue is the largest coefficient that can be packed.
	MaxValue = 1<<(valueBits-1) - 1

	// Alignment is the number of words the packed stream is padded to.
	Alignment = 512
)

var (
	// ErrDimensions is returned when a plane is not a whole number of
	// blocks or its data length does not match its dimensions.
	ErrDimensions = errors.New("coeff: invalid dimensions")
	// ErrRange is returned when a coefficient does not fit in 12 bits.
	ErrRange = errors.New("coeff: coefficient out of range")
	// ErrMalformedBlock is returned when a packed block runs past 64
	// coefficients.
	ErrMalformedBlock = errors.New("coeff: malformed packed block")
	// ErrInvalidIndex is returned when the block index is inconsistent
	// with the stream.
	ErrInvalidIndex = errors.New("coeff: invalid block index")
	// ErrPadding is returned when the stream is not padded correctly.
	ErrPadding = errors.New("coeff: invalid stream padding")
)

// Word is a packed zero run and coefficient.
type Word uint16

// Terminator ends a block early, the rest of the block is zero.
const Terminator Word = 0

// NewWord packs a zero run of 0 to 15 and a coefficient. The coefficient is
// truncated to 12 bits.
func NewWord(zeros int, value int16) Word {
	return Word(zeros&maxRun)<<valueBits | Word(uint16(value)&valueMask)
}

// Zeros returns the number of zero coefficients preceding the value.
func (w Word) Zeros() int {
	return int(w >> valueBits)
}

// Value returns the sign extended coefficient.
func (w Word) Value() int16 {
	return int16(w<<(16-valueBits)) >> (16 - valueBits)
}

// IsTerminator reports whether w ends a block.
func (w Word) IsTerminator() bool {
	return w == Terminator
}

func (w Word) String() string {
	return fmt.Sprintf("(%d,%d)", w.Zeros(), w.Value())
}

// Packed is a plane in packed form.
type Packed struct {
	Width  int
	Height int
	Stream []Word
	// Index holds the offset into Stream of the first word of each block
	// in block-row-major order
	Index []uint32
}

// Blocks returns the number of 8 by 8 blocks in the plane.
func (p *Packed) Blocks() int {
	return (p.Width / blockWidth) * (p.Height / blockHeight)
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 || width%blockWidth != 0 || height%blockHeight != 0 {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	return nil
}

// Validate checks the index and padding invariants of p.
func (p *Packed) Validate() error {
	if err := checkDimensions(p.Width, p.Height); err != nil {
		return err
	}
	if len(p.Stream)%Alignment != 0 {
		return fmt.Errorf("%w: %d words", ErrPadding, len(p.Stream))
	}
	if len(p.Index) != p.Blocks() {
		return fmt.Errorf("%w: %d entries for %d blocks", ErrInvalidIndex, len(p.Index), p.Blocks())
	}
	if p.Index[0] != 0 {
		return fmt.Errorf("%w: first block at %d", ErrInvalidIndex, p.Index[0])
	}
	for i := 1; i < len(p.Index); i++ {
		if p.Index[i] < p.Index[i-1] {
			return fmt.Errorf("%w: block %d before block %d", ErrInvalidIndex, i, i-1)
		}
	}
	if int(p.Index[len(p.Index)-1]) >= len(p.Stream) {
		return fmt.Errorf("%w: block %d past end of stream", ErrInvalidIndex, len(p.Index)-1)
	}
	return nil
}

// Stats summarises the size of a packed plane.
type Stats struct {
	Blocks int
	// RawSize is the size in bytes of the plane as 16-bit coefficients
	RawSize int
	// PackedSize is the size in bytes of the padded stream
	PackedSize int
}

// Ratio returns the packed size as a percentage of the raw size.
func (s Stats) Ratio() float64 {
	if s.RawSize == 0 {
		return 0
	}
	return float64(s.PackedSize) / float64(s.RawSize) * 100
}

// Stats returns the size summary of p.
func (p *Packed) Stats() Stats {
	n := p.Blocks()
	return Stats{
		Blocks:     n,
		RawSize:    n * blockSize * 2,
		PackedSize: len(p.Stream) * 2,
	}
}
