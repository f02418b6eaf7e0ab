package net

import (
	"encoding/json"
	"math"
	"sync"
	"testing"

	"github.com/sooomo/bst/collection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
		err  bool
	}{
		{name: "json number", in: json.Number("42"), want: 42},
		{name: "json fraction", in: json.Number("4.2"), err: true},
		{name: "int8", in: int8(-4), want: -4},
		{name: "uint8", in: uint8(200), want: 200},
		{name: "uint32", in: uint32(70000), want: 70000},
		{name: "uint64 overflow", in: uint64(math.MaxUint64), err: true},
		{name: "float64 integral", in: float64(12), want: 12},
		{name: "float64 fraction", in: 1.5, err: true},
		{name: "string", in: "12", err: true},
		{name: "bool", in: true, err: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toInt64(tt.in)
			if tt.err {
				assert.ErrorIs(t, err, ErrValueType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHostedTree_Insert(t *testing.T) {
	tree := newHostedTree(KindInt)
	require.NotNil(t, tree)

	assert.ErrorIs(t, tree.Insert(nil), collection.ErrInvalidArgument)
	assert.True(t, tree.IsEmpty())

	require.NoError(t, tree.Insert(json.Number("10")))
	require.NoError(t, tree.Insert(uint8(5)))
	assert.Equal(t, 2, tree.Size())

	found, err := tree.ContainsRaw("5")
	require.NoError(t, err)
	assert.True(t, found)

	_, err = tree.ContainsRaw("five")
	assert.ErrorIs(t, err, ErrValueType)

	assert.Nil(t, newHostedTree(Kind("float")))
}

func TestTreeStore(t *testing.T) {
	store := NewTreeStore(16)

	_, _, err := store.Create(Kind("float"))
	assert.ErrorIs(t, err, ErrUnknownKind)

	var wg sync.WaitGroup
	ids := make([]string, 16)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			treeId, _, err := store.Create(KindString)
			assert.NoError(t, err)
			ids[i] = treeId
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 16, store.Len())

	_, _, err = store.Create(KindInt)
	assert.ErrorIs(t, err, ErrTooManyTrees)

	tree, err := store.Get(ids[3])
	require.NoError(t, err)
	assert.Equal(t, KindString, tree.Kind())

	require.NoError(t, store.Remove(ids[3]))
	_, err = store.Get(ids[3])
	assert.ErrorIs(t, err, ErrTreeNotFound)
	assert.ErrorIs(t, store.Remove(ids[3]), ErrTreeNotFound)
}
