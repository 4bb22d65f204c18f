package plane

import (
	"bufio"
	"io"
	"strconv"
)

// Encode writes p to w in text form, one row of coefficients per line.
func Encode(w io.Writer, p *Plane) error {
	if err := p.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	var tmp []byte
	for y := 0; y < p.Height; y++ {
		for x, v := range p.Data[y*p.Width : (y+1)*p.Width] {
			tmp = tmp[:0]
			if x > 0 {
				tmp = append(tmp, ' ')
			}
			tmp = strconv.AppendInt(tmp, int64(v), 10)
			if _, err := bw.Write(tmp); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
