package entropy

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemSource(t *testing.T) {
	src := NewSystemSource()

	a, err := src.RandomBytes(32)
	require.NoError(t, err)
	b, err := src.RandomBytes(32)
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)

	empty, err := src.RandomBytes(0)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = src.RandomBytes(-1)
	assert.Error(t, err)
}

func TestReaderSource(t *testing.T) {
	src := NewReaderSource(bytes.NewReader([]byte{1, 2, 3, 4, 5}))

	out, err := src.RandomBytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, out)

	_, err = src.RandomBytes(3)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
