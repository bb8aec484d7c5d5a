package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.Equal(t, 8*1024, cfg.Buffer.Size)
	require.Equal(t, uint32(1024*1024), cfg.Body.MaxChunkSize)
}
