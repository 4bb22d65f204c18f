package gpeg

import (
	"io/ioutil"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImport(t *testing.T) {
	g, cleanup := newTestGPEG(t)
	defer cleanup()

	dir, cleanupDir := tempDir(t)
	defer cleanupDir()

	r := rand.New(rand.NewSource(6))
	frames := map[string]*Frame{
		"f1":        writeFrame(t, r, filepath.Join(dir, "f1"), 32, 16),
		"f2":        writeFrame(t, r, filepath.Join(dir, "f2"), 32, 16),
		"clip/f001": writeFrame(t, r, filepath.Join(dir, "clip", "f001"), 32, 16),
	}
	// Hidden directories are ignored
	writeFrame(t, r, filepath.Join(dir, ".cache", "f1"), 32, 16)
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "notes.txt"), []byte("1 2 3"), 0644))

	require.NoError(t, g.Import(dir, 32, 16))

	names, err := g.DB().Frames()
	require.NoError(t, err)
	assert.Equal(t, []string{"clip/f001", "f1", "f2"}, names)

	for name, f := range frames {
		for _, c := range Components {
			p, err := g.DB().FindPlane(name, c)
			require.NoError(t, err)
			require.NotNil(t, p)

			u, err := p.Unpack()
			require.NoError(t, err)
			assert.Equal(t, f.Planes[c], u, "%s %s", name, c)
		}
	}
}

func TestImportError(t *testing.T) {
	g, cleanup := newTestGPEG(t)
	defer cleanup()

	dir, cleanupDir := tempDir(t)
	defer cleanupDir()

	r := rand.New(rand.NewSource(7))
	writeFrame(t, r, filepath.Join(dir, "f1"), 32, 16)
	require.NoError(t, os.Remove(filepath.Join(dir, "f1"+RedChroma.Ext())))

	err := g.Import(dir, 32, 16)
	assert.True(t, os.IsNotExist(err))

	err = g.Import(dir, 12, 16)
	assert.Error(t, err)
}
