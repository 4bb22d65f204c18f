package gpeg

import (
	"fmt"
	"io"

	"github.com/bodgit/gpeg/marker"
)

// DumpSegments walks the marker segments of the JPEG stream in r, writing
// each header to w along with the contents of any quantization tables.
func DumpSegments(w io.Writer, r io.Reader) error {
	s := marker.NewScanner(r)
	for {
		seg, err := s.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("offset %d: %w", s.Offset(), err)
		}
		fmt.Fprintf(w, "segment %s\n", seg)

		switch seg.Type {
		case marker.StartOfScan:
			fmt.Fprintln(w, "skipping to next marker")
		case marker.DefineQuantizationTable:
			tables, err := s.ReadQuantizationTables()
			if err != nil {
				return fmt.Errorf("offset %d: segment %s: %w", s.Offset(), s.Segment(), err)
			}
			for _, t := range tables {
				fmt.Fprintf(w, "QUANT TABLE %d\n", t.ID)
				for j := 0; j < 8; j++ {
					for i := 0; i < 8; i++ {
						fmt.Fprintf(w, "%4d ", t.Values[j*8+i])
					}
					fmt.Fprintln(w)
				}
			}
		case marker.EndOfImage, marker.StartOfImage:
		default:
			if seg.Length > 0 {
				fmt.Fprintf(w, "skipping %d bytes\n", seg.Length)
			}
		}
	}
}
