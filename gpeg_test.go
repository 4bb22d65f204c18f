package gpeg

import (
	"bytes"
	"io/ioutil"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/gpeg/plane"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempDir(t *testing.T) (string, func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "gpeg")
	require.NoError(t, err)
	return dir, func() { os.RemoveAll(dir) }
}

func randomPlane(r *rand.Rand, width, height int) *plane.Plane {
	p, _ := plane.New(width, height)
	for i := range p.Data {
		if r.Intn(5) == 0 {
			p.Data[i] = int16(r.Intn(512) - 256)
		}
	}
	return p
}

// writeFrame writes the three planes of a random frame to base.
func writeFrame(t *testing.T, r *rand.Rand, base string, width, height int) *Frame {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(base), 0755))
	f := &Frame{Width: width, Height: height}
	for _, c := range Components {
		p := randomPlane(r, width>>c.Shift(), height>>c.Shift())
		b := new(bytes.Buffer)
		require.NoError(t, plane.Encode(b, p))
		require.NoError(t, ioutil.WriteFile(base+c.Ext(), b.Bytes(), 0644))
		f.Planes[c] = p
	}
	return f
}

func newTestGPEG(t *testing.T) (*GPEG, func()) {
	t.Helper()
	dir, cleanup := tempDir(t)
	g, err := New(filepath.Join(dir, "gpeg.db"), log.New(ioutil.Discard, "", 0))
	if err != nil {
		cleanup()
		t.Fatal(err)
	}
	return g, func() {
		g.Close()
		cleanup()
	}
}

func TestComponent(t *testing.T) {
	assert.Equal(t, ".Cb", BlueChroma.Ext())
	assert.Equal(t, uint(0), Luma.Shift())
	assert.Equal(t, uint(1), RedChroma.Shift())
	assert.Equal(t, "Y", Luma.String())

	c, err := ParseComponent("cr")
	require.NoError(t, err)
	assert.Equal(t, RedChroma, c)

	_, err = ParseComponent("alpha")
	assert.Error(t, err)
}

func TestLoadFrame(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()
	want := writeFrame(t, rand.New(rand.NewSource(1)), filepath.Join(dir, "f1"), 32, 16)

	f, err := LoadFrame(filepath.Join(dir, "f1"), 32, 16)
	require.NoError(t, err)
	assert.Equal(t, want, f)
	assert.Equal(t, 16, f.Planes[BlueChroma].Width)
	assert.Equal(t, 8, f.Planes[RedChroma].Height)

	_, err = LoadFrame(filepath.Join(dir, "f1"), 64, 16)
	assert.Error(t, err)

	_, err = LoadFrame(filepath.Join(dir, "f2"), 32, 16)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteStats(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()
	f := writeFrame(t, rand.New(rand.NewSource(2)), filepath.Join(dir, "f1"), 64, 32)

	b := new(bytes.Buffer)
	require.NoError(t, WriteStats(b, f))
	assert.Contains(t, b.String(), "plane 0: total blocks: 32\n")
	assert.Contains(t, b.String(), "plane 0: raw size: 4096\n")
	assert.Contains(t, b.String(), "plane 0: packed size: ")
	assert.Contains(t, b.String(), "plane 2: total blocks: 8\n")
}

func TestVerify(t *testing.T) {
	p := randomPlane(rand.New(rand.NewSource(3)), 64, 64)
	m, u, err := Verify(p)
	require.NoError(t, err)
	assert.Empty(t, m)
	assert.Equal(t, p, u)

	p.Data[10] = 3000
	_, _, err = Verify(p)
	assert.Error(t, err)
}

func TestWriteBlock(t *testing.T) {
	p, _ := plane.New(16, 8)
	p.Data[8] = -12
	b := new(bytes.Buffer)
	require.NoError(t, WriteBlock(b, p, 1, 0))
	assert.Equal(t, "  -12    0    0    0    0    0    0    0\n", b.String()[:41])
	assert.Equal(t, 8*41, b.Len())

	assert.Error(t, WriteBlock(b, p, 2, 0))
}
