package kv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func getHeaders() *Storage {
	return New().
		Add("Foo", "bar").
		Add("Hello", "World").
		Add("Lorem", "ipsum").
		Add("hello", "Pavlo")
}

func TestStorage(t *testing.T) {
	t.Run("get is case-insensitive", func(t *testing.T) {
		s := getHeaders()

		value, found := s.Get("HELLO")
		require.True(t, found)
		require.Equal(t, "World", value)
	})

	t.Run("values collects every entry under a key in order", func(t *testing.T) {
		s := getHeaders()
		require.Equal(t, []string{"World", "Pavlo"}, s.Values("hello"))
	})

	t.Run("count matches values length", func(t *testing.T) {
		s := getHeaders()
		require.Equal(t, 2, s.Count("hello"))
		require.Equal(t, 1, s.Count("foo"))
		require.Equal(t, 0, s.Count("missing"))
	})

	t.Run("delete all drops every entry under a key", func(t *testing.T) {
		s := getHeaders().DeleteAll("HELLO")

		require.Equal(t, 2, s.Len())
		require.False(t, s.Has("hello"))
		require.Equal(t, []string{"Foo", "Lorem"}, s.Keys())
	})

	t.Run("keys returns unique keys in first-appearance order", func(t *testing.T) {
		s := getHeaders()
		require.Equal(t, []string{"Foo", "Hello", "Lorem"}, s.Keys())
	})

	t.Run("iter yields pairs in insertion order", func(t *testing.T) {
		s := getHeaders()

		var got []Pair
		for p := range s.Iter() {
			got = append(got, p)
		}

		require.Equal(t, s.Expose(), got)
	})

	t.Run("clear empties without losing capacity", func(t *testing.T) {
		s := getHeaders()
		before := cap(s.Expose())
		s.Clear()

		require.Equal(t, before, cap(s.Expose()))
		require.True(t, s.Empty())
		require.Equal(t, 0, s.Len())
	})
}
