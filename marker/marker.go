/*
Package marker implements a scanner for the marker segments of a baseline
DCT JPEG stream.

A segment starts with 0xFF followed by a code byte. Apart from start and end
of image every segment carries a big-endian 16-bit length that counts itself.
Entropy coded data follows a start of scan segment with no declared length
and is terminated by the next marker; any 0xFF inside it is stuffed with a
following 0x00.
*/
package marker

import (
	"errors"
	"fmt"
)

const (
	markerStart = 0xff
	markerSOF0  = 0xc0
	markerDHT   = 0xc4
	markerJPG   = 0xc8
	markerDAC   = 0xcc
	markerSOI   = 0xd8
	markerEOI   = 0xd9
	markerSOS   = 0xda
	markerDQT   = 0xdb
	markerAPP0  = 0xe0
	markerAPP15 = 0xef
	markerSOF15 = 0xcf
)

var (
	// ErrInvalidMarkerPrefix is returned when a header does not start with
	// 0xFF, the stream is no longer synchronised.
	ErrInvalidMarkerPrefix = errors.New("marker: invalid marker prefix")
	// ErrUnsupportedPrecision is returned for quantization tables that are
	// not 8-bit.
	ErrUnsupportedPrecision = errors.New("marker: unsupported quantization table precision")
	// ErrInvalidTableID is returned for quantization table ids above 3.
	ErrInvalidTableID = errors.New("marker: invalid quantization table id")
	// ErrInvalidLength is returned when a length field or a payload read
	// does not fit the current segment.
	ErrInvalidLength = errors.New("marker: invalid segment length")
	// ErrInvalidState is returned when an operation is not valid in the
	// current scanner state.
	ErrInvalidState = errors.New("marker: invalid scanner state")
)

// UnsupportedMarkerError is returned for a marker code outside the baseline
// subset.
type UnsupportedMarkerError byte

func (e UnsupportedMarkerError) Error() string {
	return fmt.Sprintf("marker: unsupported marker 0x%02X", byte(e))
}

// UnsupportedFrameTypeError is returned for a start of frame marker other
// than baseline DCT.
type UnsupportedFrameTypeError byte

func (e UnsupportedFrameTypeError) Error() string {
	return fmt.Sprintf("marker: unsupported frame type SOF%d", byte(e)-markerSOF0)
}

// Type identifies the kind of a segment.
type Type int

const (
	StartOfImage Type = iota + 1
	App
	DefineQuantizationTable
	StartOfFrame
	DefineHuffmanTables
	StartOfScan
	EndOfImage
)

var typeNames = map[Type]string{
	StartOfImage:            "StartOfImage",
	App:                     "App",
	DefineQuantizationTable: "DefineQuantizationTable",
	StartOfFrame:            "StartOfFrame",
	DefineHuffmanTables:     "DefineHuffmanTables",
	StartOfScan:             "StartOfScan",
	EndOfImage:              "EndOfImage",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// FrameType identifies the coding process of a start of frame segment.
type FrameType int

const (
	// BaselineDCT is the only supported frame type.
	BaselineDCT FrameType = iota + 1
)

func (f FrameType) String() string {
	if f == BaselineDCT {
		return "BaselineDct"
	}
	return fmt.Sprintf("FrameType(%d)", int(f))
}

// Segment describes a marker segment header.
type Segment struct {
	Type Type
	// App is the application id, 0 to 15, for App segments
	App uint8
	// Frame is set for StartOfFrame segments
	Frame FrameType
	// Length is the payload length, excluding the length field itself
	Length int
}

func (s Segment) String() string {
	var name string
	switch s.Type {
	case App:
		name = fmt.Sprintf("App(%d)", s.App)
	case StartOfFrame:
		name = fmt.Sprintf("StartOfFrame(%s)", s.Frame)
	default:
		name = s.Type.String()
	}
	if s.Type == StartOfImage || s.Type == EndOfImage {
		return name
	}
	return fmt.Sprintf("%s length=%d", name, s.Length)
}

// hasLength reports whether a length field follows the marker code.
func (s Segment) hasLength() bool {
	return s.Type != StartOfImage && s.Type != EndOfImage
}

func lookupSegment(code byte) (Segment, error) {
	switch {
	case code == markerSOI:
		return Segment{Type: StartOfImage}, nil
	case code == markerEOI:
		return Segment{Type: EndOfImage}, nil
	case code >= markerAPP0 && code <= markerAPP15:
		return Segment{Type: App, App: code & 0x0f}, nil
	case code == markerDQT:
		return Segment{Type: DefineQuantizationTable}, nil
	case code == markerSOF0:
		return Segment{Type: StartOfFrame, Frame: BaselineDCT}, nil
	case code == markerDHT:
		return Segment{Type: DefineHuffmanTables}, nil
	case code == markerSOS:
		return Segment{Type: StartOfScan}, nil
	case code > markerSOF0 && code <= markerSOF15 && code != markerDHT && code != markerJPG && code != markerDAC:
		return Segment{}, UnsupportedFrameTypeError(code)
	}
	return Segment{}, UnsupportedMarkerError(code)
}
