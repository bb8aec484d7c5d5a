package hexconv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHalfbyte_Digits(t *testing.T) {
	require.EqualValues(t, 0, Halfbyte['0'])
	require.EqualValues(t, 9, Halfbyte['9'])
	require.EqualValues(t, 0xa, Halfbyte['a'])
	require.EqualValues(t, 0xf, Halfbyte['f'])
	require.EqualValues(t, 0xA, Halfbyte['A'])
	require.EqualValues(t, 0xF, Halfbyte['F'])
}

func TestHalfbyte_RejectsNonHex(t *testing.T) {
	require.EqualValues(t, 0xFF, Halfbyte['g'])
	require.EqualValues(t, 0xFF, Halfbyte[';'])
	require.EqualValues(t, 0xFF, Halfbyte[' '])
}

func TestAppendUint(t *testing.T) {
	require.Equal(t, "0", string(AppendUint(nil, 0)))
	require.Equal(t, "f", string(AppendUint(nil, 0xf)))
	require.Equal(t, "ff", string(AppendUint(nil, 0xff)))
	require.Equal(t, "1a2b3c", string(AppendUint(nil, 0x1a2b3c)))
	require.Equal(t, "size: 2a", string(AppendUint([]byte("size: "), 0x2a)))
}

// decodeChunkSize mirrors what parser.execChunk's chunkSize label does with
// each incoming byte, so the benchmark reflects the actual hot loop rather
// than a synthetic one.
func decodeChunkSize(b *testing.B, str string) {
	b.SetBytes(int64(len(str)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var size uint64

		for j := range str {
			size = (size << 4) | uint64(Halfbyte[str[j]])
		}
	}
}

func BenchmarkDecodeChunkSize(b *testing.B) {
	b.Run("short", func(b *testing.B) {
		decodeChunkSize(b, "1a2b")
	})

	b.Run("long", func(b *testing.B) {
		decodeChunkSize(b, strings.Repeat("1a2b", 100))
	})
}
