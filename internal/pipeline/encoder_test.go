package pipeline

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRaw_RoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	inputs := [][]byte{nil, {}, {0}, []byte("hello"), bytes.Repeat([]byte{0xff, 0x00}, 1000)}
	for i := 0; i < 20; i++ {
		b := make([]byte, rnd.Intn(4096))
		rnd.Read(b)
		inputs = append(inputs, b)
	}

	for _, in := range inputs {
		got, err := DecodeRaw(EncodeRaw(in))
		require.NoError(t, err)
		assert.Equal(t, len(in), len(got))
		assert.True(t, bytes.Equal(in, got))
	}
}

func TestEncodeRaw_Standard(t *testing.T) {
	assert.Equal(t, "aGVsbG8=", EncodeRaw([]byte("hello")))
	assert.Equal(t, "", EncodeRaw(nil))
}
