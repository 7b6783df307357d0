package caching

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrLoadCachesResult(t *testing.T) {
	c := NewCache()
	calls := 0
	load := func() ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	v, err := GetOrLoad(c, "k", load)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)

	v, err = GetOrLoad(c, "k", load)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.ItemCount())

	_, err = GetOrLoad(c, "other", load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetOrLoadDoesNotCacheErrors(t *testing.T) {
	c := NewCache()
	_, err := GetOrLoad(c, "k", func() (int, error) { return 0, errors.New("boom") })
	assert.Error(t, err)
	assert.Zero(t, c.ItemCount())
}

func TestNilCacheAlwaysLoads(t *testing.T) {
	var c *Cache
	calls := 0
	for i := 0; i < 3; i++ {
		_, _ = GetOrLoad(c, "k", func() (int, error) { calls++; return 1, nil })
	}
	assert.Equal(t, 3, calls)
	assert.Zero(t, c.ItemCount())
}
