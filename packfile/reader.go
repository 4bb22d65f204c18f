package packfile

import (
	"encoding/binary"
	"io"

	"github.com/bodgit/gpeg/coeff"
	"github.com/klauspost/compress/zstd"
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader

	config Config
	packed *coeff.Packed

	tmp [headerSize]byte
}

func (d *decoder) readHeader() error {
	if err := readFull(d.r, d.tmp[:]); err != nil {
		return err
	}
	if string(d.tmp[0:4]) != magic {
		return errBadMagic
	}
	if d.tmp[4] != version {
		return errBadVersion
	}
	if d.tmp[5] != 0 || d.tmp[6] != 0 || d.tmp[7] != 0 {
		return errBadHeader
	}

	width := binary.LittleEndian.Uint32(d.tmp[8:])
	height := binary.LittleEndian.Uint32(d.tmp[12:])
	words := binary.LittleEndian.Uint32(d.tmp[16:])
	if width == 0 || height == 0 || width > maxDimension || height > maxDimension || int(words) > int(width)*int(height)+coeff.Alignment {
		return errBadHeader
	}
	if words == 0 || words%coeff.Alignment != 0 {
		return errBadHeader
	}
	d.config = Config{
		Width:  int(width),
		Height: int(height),
		Words:  int(words),
	}
	return nil
}

func (d *decoder) readBody() error {
	zr, err := zstd.NewReader(d.r)
	if err != nil {
		return err
	}
	defer zr.Close()

	p := &coeff.Packed{
		Width:  d.config.Width,
		Height: d.config.Height,
	}
	p.Index = make([]uint32, p.Blocks())

	if err := binary.Read(zr, binary.LittleEndian, p.Index); err != nil {
		return err
	}

	// Grow the stream with what the body holds, not what the header claims
	chunk := make([]coeff.Word, streamChunk)
	for len(p.Stream) < d.config.Words {
		n := d.config.Words - len(p.Stream)
		if n > streamChunk {
			n = streamChunk
		}
		if err := binary.Read(zr, binary.LittleEndian, chunk[:n]); err != nil {
			return err
		}
		p.Stream = append(p.Stream, chunk[:n]...)
	}

	if n, err := zr.Read(d.tmp[:1]); n != 0 || err != io.EOF {
		if err != nil && err != io.EOF {
			return err
		}
		return errTooMuch
	}

	d.packed = p
	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	if configOnly {
		return nil
	}

	if err := d.readBody(); err != nil {
		if err != io.ErrUnexpectedEOF && err != io.EOF {
			return err
		}
		return errNotEnough
	}

	return d.packed.Validate()
}

// Decode reads a packed plane from r.
func Decode(r io.Reader) (*coeff.Packed, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.packed, nil
}

// DecodeConfig returns the dimensions and stream length of a packfile
// without decoding the body.
func DecodeConfig(r io.Reader) (Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return Config{}, err
	}
	return d.config, nil
}
