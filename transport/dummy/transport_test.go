package dummy

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransport_SequentialReads(t *testing.T) {
	tr := New([]byte("Hello"), []byte("world!"))

	buf := make([]byte, 64)

	n, err := tr.ReadSome(buf)
	require.NoError(t, err)
	require.Equal(t, "Hello", string(buf[:n]))

	n, err = tr.ReadSome(buf)
	require.NoError(t, err)
	require.Equal(t, "world!", string(buf[:n]))

	_, err = tr.ReadSome(buf)
	require.ErrorIs(t, err, io.EOF)
	require.False(t, tr.IsOpen())
}

func TestTransport_Loop(t *testing.T) {
	tr := New([]byte("a"), []byte("b")).Loop()
	buf := make([]byte, 8)

	for i := 0; i < 5; i++ {
		n, err := tr.ReadSome(buf)
		require.NoError(t, err)
		require.Len(t, buf[:n], 1)
	}
}

func TestTransport_WriteJournaling(t *testing.T) {
	tr := New()

	_, err := tr.Write([]byte("resp"))
	require.NoError(t, err)
	require.Equal(t, "resp", string(tr.Written()))
}

func TestTransport_Nop(t *testing.T) {
	tr := NewNop()
	_, err := tr.ReadSome(make([]byte, 4))
	require.ErrorIs(t, err, io.EOF)
}
