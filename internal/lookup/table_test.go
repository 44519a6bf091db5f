package lookup

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery-simulation-service/internal/domain"
)

func TestTable_InsertGetOverwrite(t *testing.T) {
	tbl := New[int, string](8)

	tbl.Insert(9, "Council Hall")
	tbl.Insert(9, "Third District Juvenile Court")
	tbl.Insert(10, "City Hall")

	v, err := tbl.Get(9)
	require.NoError(t, err)
	assert.Equal(t, "Third District Juvenile Court", v)
	assert.Equal(t, 2, tbl.Len())
	assert.True(t, tbl.ContainsKey(10))
	assert.False(t, tbl.ContainsKey(11))
}

func TestTable_GetMissing(t *testing.T) {
	tbl := New[string, int](0)

	_, err := tbl.Get("nowhere")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrKeyNotFound))
}

func TestTable_Remove(t *testing.T) {
	tbl := New[int, int](4)
	for i := 1; i <= 20; i++ {
		tbl.Insert(i, i*i)
	}

	require.NoError(t, tbl.Remove(7))
	assert.False(t, tbl.ContainsKey(7))
	assert.Equal(t, 19, tbl.Len())

	err := tbl.Remove(7)
	assert.True(t, errors.Is(err, domain.ErrKeyNotFound))

	// Everything else in the same chains is still reachable.
	for i := 1; i <= 20; i++ {
		if i == 7 {
			continue
		}
		v, err := tbl.Get(i)
		require.NoError(t, err)
		assert.Equal(t, i*i, v)
	}
}

func TestTable_KeysAndValuesAlign(t *testing.T) {
	tbl := New[string, int](3)
	names := []string{"HUB", "A", "B", "C", "D"}
	for i, n := range names {
		tbl.Insert(n, i)
	}

	keys := tbl.Keys()
	values := tbl.Values()
	require.Len(t, keys, len(names))
	require.Len(t, values, len(names))
	for i, k := range keys {
		assert.Equal(t, slices.Index(names, k), values[i])
	}
}

func TestHash_StableAcrossKeyTypes(t *testing.T) {
	// An int key and its string form share a canonical form and so a hash.
	assert.Equal(t, Hash(9), Hash("9"))
	assert.Equal(t, Hash("HUB"), Hash(fmt.Sprint("HUB")))
}
