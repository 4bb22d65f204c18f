package marker

import (
	"bufio"
	"io"
)

// State is the position of a Scanner within the segment structure.
type State int

const (
	// Idle means the next bytes are a marker header.
	Idle State = iota
	// InSegment means the payload of the last header is being consumed.
	InSegment
	// InScanData means entropy coded data is being skipped.
	InScanData
	// Done means the end of image marker has been read.
	Done
)

var stateNames = [...]string{"Idle", "InSegment", "InScanData", "Done"}

func (s State) String() string {
	if s >= Idle && s <= Done {
		return stateNames[s]
	}
	return "State(?)"
}

// Scanner reads marker segments from a byte stream one at a time.
type Scanner struct {
	r io.ByteReader

	state     State
	segment   Segment
	remaining int
	offset    int64
}

// NewScanner returns a Scanner reading from r. If r does not implement
// io.ByteReader it is buffered.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br}
}

// State returns the current scanner state.
func (s *Scanner) State() State {
	return s.state
}

// Segment returns the header of the segment currently being read.
func (s *Scanner) Segment() Segment {
	return s.segment
}

// Remaining returns the number of unread payload bytes in the current
// segment.
func (s *Scanner) Remaining() int {
	return s.remaining
}

// Offset returns the number of bytes consumed so far.
func (s *Scanner) Offset() int64 {
	return s.offset
}

func (s *Scanner) readByte() (byte, error) {
	b, err := s.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	s.offset++
	return b, nil
}

func (s *Scanner) readWord() (uint16, error) {
	hi, err := s.readByte()
	if err != nil {
		return 0, err
	}
	lo, err := s.readByte()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// consume reads one byte of the current segment payload.
func (s *Scanner) consume() (byte, error) {
	if s.remaining < 1 {
		return 0, ErrInvalidLength
	}
	b, err := s.readByte()
	if err != nil {
		return 0, err
	}
	s.remaining--
	s.settle()
	return b, nil
}

// settle moves back to Idle once a payload other than the scan header has
// been fully consumed.
func (s *Scanner) settle() {
	if s.state == InSegment && s.remaining == 0 && s.segment.Type != StartOfScan {
		s.state = Idle
	}
}

func (s *Scanner) parseHeader(hi, lo byte) (Segment, error) {
	if hi != markerStart {
		return Segment{}, ErrInvalidMarkerPrefix
	}
	seg, err := lookupSegment(lo)
	if err != nil {
		return Segment{}, err
	}
	if seg.hasLength() {
		n, err := s.readWord()
		if err != nil {
			return Segment{}, err
		}
		if n < 2 {
			return Segment{}, ErrInvalidLength
		}
		seg.Length = int(n) - 2
	}

	s.segment = seg
	s.remaining = seg.Length
	switch {
	case seg.Type == EndOfImage:
		s.state = Done
	case seg.Type == StartOfScan:
		s.state = InSegment
	case seg.Length == 0:
		s.state = Idle
	default:
		s.state = InSegment
	}
	return seg, nil
}

// ReadHeader reads the next marker and its length field. It is only valid
// when the scanner is Idle.
func (s *Scanner) ReadHeader() (Segment, error) {
	switch s.state {
	case Done:
		return Segment{}, io.EOF
	case Idle:
	default:
		return Segment{}, ErrInvalidState
	}
	hi, err := s.readByte()
	if err != nil {
		return Segment{}, err
	}
	lo, err := s.readByte()
	if err != nil {
		return Segment{}, err
	}
	return s.parseHeader(hi, lo)
}

// Skip advances past n bytes of the current segment payload.
func (s *Scanner) Skip(n int) error {
	switch {
	case s.state == Done:
		return io.EOF
	case n == 0:
		return nil
	case s.state != InSegment:
		return ErrInvalidState
	case n < 0 || n > s.remaining:
		return ErrInvalidLength
	}
	for ; n > 0; n-- {
		if _, err := s.readByte(); err != nil {
			return err
		}
		s.remaining--
	}
	s.settle()
	return nil
}

// FindMarker skips any unread scan header and the entropy coded data that
// follows it, then reads the header of the next marker. A 0xFF 0x00 pair is
// stuffed data, not a marker.
func (s *Scanner) FindMarker() (Segment, error) {
	switch {
	case s.state == Done:
		return Segment{}, io.EOF
	case s.segment.Type != StartOfScan || (s.state != InSegment && s.state != InScanData):
		return Segment{}, ErrInvalidState
	}
	if s.state == InSegment {
		if err := s.Skip(s.remaining); err != nil {
			return Segment{}, err
		}
		s.state = InScanData
	}

	for {
		hi, err := s.readByte()
		if err != nil {
			return Segment{}, err
		}
		if hi != markerStart {
			continue
		}
		lo, err := s.readByte()
		if err != nil {
			return Segment{}, err
		}
		if lo != 0x00 {
			return s.parseHeader(hi, lo)
		}
	}
}

// Next skips whatever is left of the current segment and returns the next
// segment header. It returns io.EOF after the end of image has been read.
func (s *Scanner) Next() (Segment, error) {
	switch s.state {
	case Done:
		return Segment{}, io.EOF
	case InScanData:
		return s.FindMarker()
	case InSegment:
		if s.segment.Type == StartOfScan {
			return s.FindMarker()
		}
		if err := s.Skip(s.remaining); err != nil {
			return Segment{}, err
		}
	}
	return s.ReadHeader()
}
