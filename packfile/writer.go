package packfile

import (
	"encoding/binary"
	"io"

	"github.com/bodgit/gpeg/coeff"
	"github.com/klauspost/compress/zstd"
)

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(p *coeff.Packed) error {
	var tmp [headerSize]byte
	copy(tmp[:], magic)
	tmp[4] = version
	binary.LittleEndian.PutUint32(tmp[8:], uint32(p.Width))
	binary.LittleEndian.PutUint32(tmp[12:], uint32(p.Height))
	binary.LittleEndian.PutUint32(tmp[16:], uint32(len(p.Stream)))
	if _, err := e.w.Write(tmp[:]); err != nil {
		return err
	}

	zw, err := zstd.NewWriter(e.w)
	if err != nil {
		return err
	}
	if err := binary.Write(zw, binary.LittleEndian, p.Index); err != nil {
		zw.Close()
		return err
	}
	if err := binary.Write(zw, binary.LittleEndian, p.Stream); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// Encode writes the packed plane p to w.
func Encode(w io.Writer, p *coeff.Packed) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Width > maxDimension || p.Height > maxDimension {
		return errBadHeader
	}

	e := encoder{w: w}

	return e.encode(p)
}
