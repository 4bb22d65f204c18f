package marker

import "github.com/bodgit/gpeg/zigzag"

const (
	numQuantTables = 4
	quantTableSize = 1 + 64
)

// QuantizationTable is a decoded 8-bit quantization table in natural order.
type QuantizationTable struct {
	ID     uint8
	Values [64]int16
}

// ReadQuantizationTable reads one table from the current define
// quantization table segment.
func (s *Scanner) ReadQuantizationTable() (QuantizationTable, error) {
	if s.state != InSegment || s.segment.Type != DefineQuantizationTable {
		return QuantizationTable{}, ErrInvalidState
	}

	pqtq, err := s.consume()
	if err != nil {
		return QuantizationTable{}, err
	}
	// Only baseline, Pq is always 0
	if pqtq&0xf0 != 0 {
		return QuantizationTable{}, ErrUnsupportedPrecision
	}
	t := QuantizationTable{ID: pqtq & 0x0f}
	if t.ID >= numQuantTables {
		return QuantizationTable{}, ErrInvalidTableID
	}
	if s.remaining < quantTableSize-1 {
		return QuantizationTable{}, ErrInvalidLength
	}

	zz := zigzag.Forward(8)
	for k := 0; k < 64; k++ {
		b, err := s.consume()
		if err != nil {
			return QuantizationTable{}, err
		}
		t.Values[zz.At(k)] = int16(b)
	}
	return t, nil
}

// ReadQuantizationTables reads every table in the current define
// quantization table segment, leaving the scanner Idle. An empty segment
// is an invalid length.
func (s *Scanner) ReadQuantizationTables() ([]QuantizationTable, error) {
	if s.segment.Type == DefineQuantizationTable && s.segment.Length == 0 && s.state == Idle {
		return nil, ErrInvalidLength
	}
	var tables []QuantizationTable
	for s.state == InSegment && s.segment.Type == DefineQuantizationTable {
		t, err := s.ReadQuantizationTable()
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	if len(tables) == 0 {
		return nil, ErrInvalidState
	}
	return tables, nil
}
