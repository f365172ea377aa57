package expr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencypher-go/algebra-eval/graphstore"
	"github.com/opencypher-go/algebra-eval/matrix"
)

func TestFetch_ResolvesOperands(t *testing.T) {
	store := graphstore.NewMemStore()
	backend := matrix.NewBitBackend()
	mR, err := backend.New(2, 2)
	require.NoError(t, err)
	store.Put("R", mR)

	r := NewOperand("R", Outgoing)
	tr, err := NewTranspose(r)
	require.NoError(t, err)

	require.NoError(t, Fetch(context.Background(), tr, store))
	require.True(t, r.IsFetched())
	require.Equal(t, mR, r.OperandMatrix())
}

func TestFetch_CollectsAllUnresolved(t *testing.T) {
	store := graphstore.NewMemStore()
	r := NewOperand("R", Outgoing)
	s := NewOperand("S", Outgoing)
	mul, err := NewMultiply(r, s)
	require.NoError(t, err)

	err = Fetch(context.Background(), mul, store)
	require.Error(t, err)
	require.Contains(t, err.Error(), "R")
	require.Contains(t, err.Error(), "S")
}

func TestFetch_IsIdempotent(t *testing.T) {
	store := graphstore.NewMemStore()
	backend := matrix.NewBitBackend()
	mR, err := backend.New(2, 2)
	require.NoError(t, err)
	store.Put("R", mR)

	r := NewOperand("R", Outgoing)
	tr, err := NewTranspose(r)
	require.NoError(t, err)
	require.NoError(t, Fetch(context.Background(), tr, store))

	// Remove R from the store; a second Fetch must not re-resolve it.
	store2 := graphstore.NewMemStore()
	require.NoError(t, Fetch(context.Background(), tr, store2))
	require.Equal(t, mR, r.OperandMatrix())
}
