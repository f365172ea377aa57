package expr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTranspose_RequiresOneChild(t *testing.T) {
	r := NewOperand("R", Outgoing)
	s := NewOperand("S", Outgoing)
	_, err := NewTranspose(r)
	require.NoError(t, err)

	_, err = newOperation(Transpose, []Node{r, s})
	require.Error(t, err)
	require.True(t, ErrMalformedTree.Is(err))
}

func TestNewMultiply_RequiresTwoChildren(t *testing.T) {
	r := NewOperand("R", Outgoing)
	_, err := NewMultiply(r)
	require.Error(t, err)
	require.True(t, ErrMalformedTree.Is(err))
}

func TestNewAdd_RejectsIdentityOperand(t *testing.T) {
	r := NewOperand("R", Outgoing)
	id := NewIdentityOperand()
	_, err := NewAdd(r, id)
	require.Error(t, err)
	require.True(t, ErrMalformedTree.Is(err))
}

func TestIdentityOperand_IsPreFetched(t *testing.T) {
	id := NewIdentityOperand()
	require.True(t, id.IsFetched())
	require.True(t, id.IsIdentity())
}
