/*
Package packfile implements a binary container for a packed coefficient
plane.

A file starts with a 20 byte header: the magic "GPAK", a version byte, three
reserved zero bytes, then the width, height and number of stream words as
little-endian 32-bit values. The rest of the file is a single zstd frame
holding the block index, one little-endian 32-bit offset per block, followed
by the stream as little-endian 16-bit words.
*/
package packfile

import (
	"errors"

	"github.com/bodgit/gpeg/coeff"
)

const (
	magic   = "GPAK"
	version = 1

	headerSize = 20

	// Limits taken from the largest texture the display pipeline accepts.
	maxDimension = 16384

	// Stream words decoded per read.
	streamChunk = 64 * coeff.Alignment
)

var (
	errBadMagic   = errors.New("packfile: invalid magic")
	errBadVersion = errors.New("packfile: unsupported version")
	errBadHeader  = errors.New("packfile: invalid header")
	errNotEnough  = errors.New("packfile: not enough data")
	errTooMuch    = errors.New("packfile: too much data")
)

// Config holds the header of a packfile.
type Config struct {
	Width  int
	Height int
	Words  int
}
