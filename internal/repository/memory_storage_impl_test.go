package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	storage := CreateMemoryStorage()

	value, err := storage.Get(ctx, "cart:abc")
	require.NoError(t, err)
	assert.Nil(t, value)

	require.NoError(t, storage.Set(ctx, "cart:abc", []byte(`[1]`)))
	value, err = storage.Get(ctx, "cart:abc")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(value))

	// returned slices are copies
	value[0] = 'x'
	again, err := storage.Get(ctx, "cart:abc")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(again))

	require.NoError(t, storage.Clear(ctx, "cart:abc"))
	value, err = storage.Get(ctx, "cart:abc")
	require.NoError(t, err)
	assert.Nil(t, value)

	require.NoError(t, storage.Clear(ctx, "missing"))
}
