package heatmap

import (
	"bytes"
	"image/color"
	"image/gif"
	"testing"

	"github.com/bodgit/gpeg/coeff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColor(t *testing.T) {
	assert.Equal(t, color.RGBA{0x00, 0x00, 0xff, 0xff}, Color(0))
	assert.Equal(t, color.RGBA{0x00, 0x00, 0xff, 0xff}, Color(1))
	assert.Equal(t, color.RGBA{0xff, 0x00, 0x00, 0xff}, Color(64))
	assert.Equal(t, color.RGBA{0xff, 0x00, 0x00, 0xff}, Color(100))
	assert.NotEqual(t, Color(10), Color(20))
}

func testPlane(t *testing.T) *coeff.Packed {
	t.Helper()
	data := make([]int16, 32*16)
	// Block (1, 0) is fully populated
	for y := 0; y < 8; y++ {
		for x := 8; x < 16; x++ {
			data[y*32+x] = 1
		}
	}
	p, err := coeff.Pack(32, 16, data)
	require.NoError(t, err)
	return p
}

func TestRender(t *testing.T) {
	m, err := Render(testPlane(t), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Bounds().Dx())
	assert.Equal(t, 2, m.Bounds().Dy())
	assert.Equal(t, color.RGBA{0x00, 0x00, 0xff, 0xff}, m.At(0, 0))
	assert.Equal(t, color.RGBA{0xff, 0x00, 0x00, 0xff}, m.At(1, 0))

	m, err = Render(testPlane(t), 8)
	require.NoError(t, err)
	assert.Equal(t, 32, m.Bounds().Dx())
	assert.Equal(t, 16, m.Bounds().Dy())

	_, err = Render(testPlane(t), 0)
	assert.Equal(t, errBadScale, err)
}

func TestEncode(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, testPlane(t), 8))

	m, err := gif.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, 32, m.Bounds().Dx())
	assert.Equal(t, 16, m.Bounds().Dy())
}
