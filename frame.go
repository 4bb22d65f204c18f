package gpeg

import (
	"fmt"
	"os"

	"github.com/bodgit/gpeg/coeff"
	"github.com/bodgit/gpeg/plane"
)

// Frame holds the three coefficient planes of one image. The chroma planes
// are half the width and height of the luma plane.
type Frame struct {
	Width  int
	Height int
	Planes [3]*plane.Plane
}

func loadPlane(file string, width, height int) (*plane.Plane, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := plane.Decode(f, width, height)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return p, nil
}

// LoadFrame reads the planes of a frame from base plus the extension of
// each component. width and height are the luma dimensions.
func LoadFrame(base string, width, height int) (*Frame, error) {
	f := &Frame{
		Width:  width,
		Height: height,
	}
	for _, c := range Components {
		p, err := loadPlane(base+c.Ext(), width>>c.Shift(), height>>c.Shift())
		if err != nil {
			return nil, err
		}
		f.Planes[c] = p
	}
	return f, nil
}

// Pack packs every plane of the frame.
func (f *Frame) Pack() ([3]*coeff.Packed, error) {
	var packed [3]*coeff.Packed
	for _, c := range Components {
		p, err := coeff.PackPlane(f.Planes[c])
		if err != nil {
			return packed, fmt.Errorf("%s: %w", c, err)
		}
		packed[c] = p
	}
	return packed, nil
}
