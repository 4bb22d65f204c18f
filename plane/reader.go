package plane

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var (
	errNotEnough = errors.New("plane: not enough coefficient data")
	errTooMuch   = errors.New("plane: too much coefficient data")
)

type decoder struct {
	s *bufio.Scanner

	plane *Plane
}

func (d *decoder) next() (int16, bool, error) {
	if !d.s.Scan() {
		return 0, false, d.s.Err()
	}
	v, err := strconv.ParseInt(d.s.Text(), 10, 16)
	if err != nil {
		return 0, false, fmt.Errorf("plane: %w", err)
	}
	return int16(v), true, nil
}

func (d *decoder) decode(r io.Reader, width, height int) error {
	p, err := New(width, height)
	if err != nil {
		return err
	}

	d.s = bufio.NewScanner(r)
	d.s.Split(bufio.ScanWords)

	for i := range p.Data {
		v, ok, err := d.next()
		if err != nil {
			return err
		}
		if !ok {
			return errNotEnough
		}
		p.Data[i] = v
	}

	if _, ok, err := d.next(); ok || err != nil {
		if err != nil {
			return err
		}
		return errTooMuch
	}

	d.plane = p
	return nil
}

// Decode reads a plane of the given dimensions in text form from r.
func Decode(r io.Reader, width, height int) (*Plane, error) {
	var d decoder
	if err := d.decode(r, width, height); err != nil {
		return nil, err
	}
	return d.plane, nil
}
