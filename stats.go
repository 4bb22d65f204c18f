package gpeg

import (
	"fmt"
	"io"

	"github.com/bodgit/gpeg/coeff"
	"github.com/bodgit/gpeg/plane"
)

// WriteStats packs every plane of f and writes a size summary of each to w.
func WriteStats(w io.Writer, f *Frame) error {
	packed, err := f.Pack()
	if err != nil {
		return err
	}
	for i, p := range packed {
		s := p.Stats()
		if _, err := fmt.Fprintf(w, "plane %d: total blocks: %d\nplane %d: raw size: %d\nplane %d: packed size: %d\nplane %d: %% of original size: %.2f%%\n",
			i, s.Blocks, i, s.RawSize, i, s.PackedSize, i, s.Ratio()); err != nil {
			return err
		}
	}
	return nil
}

// Verify packs and unpacks p, returning every coefficient that did not
// survive the round trip along with the unpacked plane.
func Verify(p *plane.Plane) ([]plane.Mismatch, *plane.Plane, error) {
	packed, err := coeff.PackPlane(p)
	if err != nil {
		return nil, nil, err
	}
	unpacked, err := packed.Unpack()
	if err != nil {
		return nil, nil, err
	}
	m, err := p.Compare(unpacked)
	if err != nil {
		return nil, nil, err
	}
	return m, unpacked, nil
}

// WriteBlock writes the 8 by 8 block at block column bx and block row by of
// p to w.
func WriteBlock(w io.Writer, p *plane.Plane, bx, by int) error {
	if bx < 0 || by < 0 || bx >= p.BlocksWide() || by >= p.BlocksHigh() {
		return fmt.Errorf("block (%d, %d) outside %dx%d plane", bx, by, p.Width, p.Height)
	}
	b := p.Block(bx, by)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if _, err := fmt.Fprintf(w, "%5d", b[y*8+x]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
