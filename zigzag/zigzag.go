/*
Package zigzag generates the 8 by 8 permutation tables used to walk a block
of transform coefficients in zigzag scan order.

Each table entry is a linear offset that already includes the row stride of
the plane the block is embedded in, so the same logical permutation can
address an isolated block (stride 8) or a block inside a full resolution
plane (stride equal to the plane width).
*/
package zigzag

import "sync"

const (
	blockWidth = 8
	blockSize  = blockWidth * blockWidth
)

// unzig maps from the zigzag ordering to the natural ordering.
var unzig = [blockSize]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// zig maps from the natural ordering to the zigzag ordering.
var zig = invert(unzig)

func invert(p [blockSize]int) (q [blockSize]int) {
	for i, v := range p {
		q[v] = i
	}
	return
}

// Table maps a flattened index, as [index/8][index%8], to a linear offset.
type Table [blockWidth][blockWidth]int

// At returns the offset stored for flattened index k.
func (t *Table) At(k int) int {
	return t[k>>3][k&7]
}

func scale(base *[blockSize]int, stride int) Table {
	var t Table
	for j := 0; j < blockWidth; j++ {
		for i := 0; i < blockWidth; i++ {
			row, col := base[j*blockWidth+i]/blockWidth, base[j*blockWidth+i]%blockWidth
			t[j][i] = row*stride + col
		}
	}
	return t
}

var forward, inverse sync.Map

func lookup(cache *sync.Map, base *[blockSize]int, stride int) Table {
	if t, ok := cache.Load(stride); ok {
		return t.(Table)
	}
	t, _ := cache.LoadOrStore(stride, scale(base, stride))
	return t.(Table)
}

// Forward returns the table mapping zigzag position k to the offset of that
// coefficient within a plane of the given row stride.
func Forward(stride int) Table {
	return lookup(&forward, &unzig, stride)
}

// Inverse returns the de-zigzag table; natural position p, taken as
// [p/8][p%8], maps to the zigzag position of that coefficient scaled by the
// given row stride.
func Inverse(stride int) Table {
	return lookup(&inverse, &zig, stride)
}
