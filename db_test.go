package gpeg

import (
	"math/rand"
	"testing"

	"github.com/bodgit/gpeg/coeff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaneDB(t *testing.T) {
	g, cleanup := newTestGPEG(t)
	defer cleanup()
	db := g.DB()

	r := rand.New(rand.NewSource(4))
	a, err := coeff.PackPlane(randomPlane(r, 32, 16))
	require.NoError(t, err)
	b, err := coeff.PackPlane(randomPlane(r, 16, 8))
	require.NoError(t, err)

	require.NoError(t, db.AddPlane("f1", 32, 16, Luma, a))
	require.NoError(t, db.AddPlane("f1", 32, 16, BlueChroma, b))
	require.NoError(t, db.AddPlane("f1", 32, 16, RedChroma, b))
	require.NoError(t, db.AddPlane("f2", 32, 16, Luma, a))

	n, err := db.Planes()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	frames, err := db.Frames()
	require.NoError(t, err)
	assert.Equal(t, []string{"f1", "f2"}, frames)

	p, err := db.FindPlane("f1", RedChroma)
	require.NoError(t, err)
	assert.Equal(t, b, p)

	p, err = db.FindPlane("f2", Luma)
	require.NoError(t, err)
	assert.Equal(t, a, p)

	p, err = db.FindPlane("f2", BlueChroma)
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = db.FindPlane("f3", Luma)
	require.NoError(t, err)
	assert.Nil(t, p)

	// Replacing a component keeps one row per component
	require.NoError(t, db.AddPlane("f1", 32, 16, RedChroma, a))
	p, err = db.FindPlane("f1", RedChroma)
	require.NoError(t, err)
	assert.Equal(t, a, p)

	assert.Error(t, db.AddPlane("f1", 64, 16, Luma, a))
}

func TestPlaneDBChecksum(t *testing.T) {
	g, cleanup := newTestGPEG(t)
	defer cleanup()
	db := g.DB()

	a, err := coeff.PackPlane(randomPlane(rand.New(rand.NewSource(5)), 16, 16))
	require.NoError(t, err)
	require.NoError(t, db.AddPlane("f1", 16, 16, Luma, a))

	_, err = db.db.Exec("UPDATE plane SET crc = ?", "00000000")
	require.NoError(t, err)

	_, err = db.FindPlane("f1", Luma)
	assert.Equal(t, errBadChecksum, err)
}
