package pick

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomweaver/pkg/engine/rng"
)

func TestSpawnListIndexAccess(t *testing.T) {
	s := NewSpawnList[string]()
	require.NoError(t, s.Add("apple", 10))
	require.NoError(t, s.Add("orange", 20))
	require.NoError(t, s.Add("banana", 30))

	v, err := s.GetSpawn(1)
	require.NoError(t, err)
	assert.Equal(t, "orange", v)

	rate, err := s.GetSpawnRate(2)
	require.NoError(t, err)
	assert.Equal(t, 30, rate)

	require.NoError(t, s.SetSpawnRate(0, 4))
	assert.Equal(t, 4, s.Weight("apple"))

	require.NoError(t, s.RemoveAt(0))
	v, err = s.GetSpawn(0)
	require.NoError(t, err)
	assert.Equal(t, "orange", v)
	assert.Equal(t, 2, s.Count())
}

func TestSpawnListOutOfRange(t *testing.T) {
	s := NewSpawnList[int]()
	_, err := s.GetSpawn(0)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	require.NoError(t, s.Add(1, 1))
	_, err = s.GetSpawnRate(-1)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.True(t, errors.Is(s.SetSpawnRate(0, 0), ErrOutOfRange))
}

func TestSpawnListClone(t *testing.T) {
	s := NewSpawnList[string]()
	require.NoError(t, s.Add("a", 1))
	require.NoError(t, s.Add("b", 1))
	c := s.CopyState().(*SpawnList[string])
	require.NoError(t, c.RemoveAt(0))
	v, err := s.GetSpawn(0)
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	p, err := c.Pick(rng.New(1))
	require.NoError(t, err)
	assert.Equal(t, "b", p)
}
