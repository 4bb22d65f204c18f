package packfile

import (
	"bytes"
	"encoding/binary"
	"io"
	"io/ioutil"
	"math/rand"
	"testing"

	"github.com/bodgit/gpeg/coeff"
	"github.com/bodgit/gpeg/plane"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packed(t *testing.T, width, height int) *coeff.Packed {
	t.Helper()
	r := rand.New(rand.NewSource(int64(width * height)))
	p, err := plane.New(width, height)
	require.NoError(t, err)
	for i := range p.Data {
		if r.Intn(3) == 0 {
			p.Data[i] = int16(r.Intn(coeff.MaxValue-coeff.MinValue+1) + coeff.MinValue)
		}
	}
	pk, err := coeff.PackPlane(p)
	require.NoError(t, err)
	return pk
}

func TestEncodeDecode(t *testing.T) {
	for _, dims := range [][2]int{{8, 8}, {64, 32}, {512, 288}} {
		p := packed(t, dims[0], dims[1])

		b := new(bytes.Buffer)
		require.NoError(t, Encode(b, p))
		assert.Equal(t, []byte("GPAK\x01\x00\x00\x00"), b.Bytes()[:8])

		c, err := DecodeConfig(bytes.NewReader(b.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, Config{Width: dims[0], Height: dims[1], Words: len(p.Stream)}, c)

		q, err := Decode(b)
		require.NoError(t, err)
		assert.Equal(t, p, q)
	}
}

func TestDecodeErrors(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, packed(t, 16, 16)))
	good := b.Bytes()

	mangle := func(f func([]byte) []byte) []byte {
		dup := append([]byte(nil), good...)
		return f(dup)
	}

	tables := []struct {
		name  string
		input []byte
		err   error
	}{
		{
			name:  "empty",
			input: nil,
			err:   errNotEnough,
		},
		{
			name:  "short header",
			input: good[:10],
			err:   errNotEnough,
		},
		{
			name:  "magic",
			input: mangle(func(b []byte) []byte { b[0] = 'X'; return b }),
			err:   errBadMagic,
		},
		{
			name:  "version",
			input: mangle(func(b []byte) []byte { b[4] = 2; return b }),
			err:   errBadVersion,
		},
		{
			name:  "reserved",
			input: mangle(func(b []byte) []byte { b[6] = 1; return b }),
			err:   errBadHeader,
		},
		{
			name:  "width",
			input: mangle(func(b []byte) []byte { b[8], b[9] = 0, 0; return b }),
			err:   errBadHeader,
		},
		{
			name:  "words",
			input: mangle(func(b []byte) []byte { b[19] = 0x10; return b }),
			err:   errBadHeader,
		},
		{
			name:  "unaligned words",
			input: mangle(func(b []byte) []byte { b[16]++; return b }),
			err:   errBadHeader,
		},
		{
			name:  "no words",
			input: mangle(func(b []byte) []byte { b[16], b[17], b[18], b[19] = 0, 0, 0, 0; return b }),
			err:   errBadHeader,
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(table.input))
			assert.Equal(t, table.err, err)
		})
	}

	_, err := Decode(bytes.NewReader(good[:len(good)-8]))
	assert.Error(t, err)
}

func TestDecodeTooMuch(t *testing.T) {
	p := packed(t, 8, 8)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, p))
	raw := b.Bytes()[:headerSize]

	// Body holds one word more than the header claims
	body := new(bytes.Buffer)
	zw, err := zstd.NewWriter(body)
	require.NoError(t, err)
	require.NoError(t, binary.Write(zw, binary.LittleEndian, p.Index))
	require.NoError(t, binary.Write(zw, binary.LittleEndian, p.Stream))
	require.NoError(t, binary.Write(zw, binary.LittleEndian, coeff.Terminator))
	require.NoError(t, zw.Close())

	_, err = Decode(io.MultiReader(bytes.NewReader(raw), body))
	assert.Equal(t, errTooMuch, err)
}

func TestDecodeShortStream(t *testing.T) {
	p := packed(t, 512, 288)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, p))
	raw := append([]byte(nil), b.Bytes()...)

	// Claim more words than the body holds
	binary.LittleEndian.PutUint32(raw[16:], uint32(len(p.Stream)+4*coeff.Alignment))
	_, err := Decode(bytes.NewReader(raw))
	assert.Equal(t, errNotEnough, err)
}

func TestEncodeInvalid(t *testing.T) {
	p := packed(t, 8, 8)
	p.Stream = p.Stream[:100]
	assert.Error(t, Encode(ioutil.Discard, p))
}
