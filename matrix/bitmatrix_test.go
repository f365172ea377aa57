package matrix

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// rowsFromMasks builds a *BitMatrix from row bitmasks, MSB-left, matching
// spec.md §8's scenario notation (e.g. "0100" means column 1 is set).
func rowsFromMasks(t *testing.T, b *BitBackend, masks ...string) *BitMatrix {
	t.Helper()
	n := len(masks)
	m, err := b.New(n, n)
	require.NoError(t, err)
	bm := m.(*BitMatrix)
	for i, mask := range masks {
		require.Len(t, mask, n)
		for j, c := range mask {
			if c == '1' {
				bm.SetBit(i, j)
			}
		}
	}
	return bm
}

func toMasks(bm *BitMatrix) []string {
	out := make([]string, bm.rows)
	for i := 0; i < bm.rows; i++ {
		row := make([]byte, bm.cols)
		for j := 0; j < bm.cols; j++ {
			if bm.Contains(i, j) {
				row[j] = '1'
			} else {
				row[j] = '0'
			}
		}
		out[i] = string(row)
	}
	return out
}

func TestBitBackend_MatMul(t *testing.T) {
	b := NewBitBackend()
	a := rowsFromMasks(t, b, "0100", "0010", "0001", "0000")
	b2 := rowsFromMasks(t, b, "0010", "0001", "0000", "0000")
	res, err := b.New(4, 4)
	require.NoError(t, err)

	require.NoError(t, b.MatMul(res, a, b2, &Descriptor{}))
	require.Equal(t, []string{"0001", "0000", "0000", "0000"}, toMasks(res.(*BitMatrix)))
}

func TestBitBackend_ApplyIdentity(t *testing.T) {
	b := NewBitBackend()
	a := rowsFromMasks(t, b, "1000", "0100", "0010", "0001")
	res, err := b.New(4, 4)
	require.NoError(t, err)

	require.NoError(t, b.ApplyIdentity(res, a, &Descriptor{}))
	require.Equal(t, toMasks(a), toMasks(res.(*BitMatrix)))
}

func TestBitBackend_EWiseAddTranspose(t *testing.T) {
	b := NewBitBackend()
	a := rowsFromMasks(t, b, "0100", "0000", "0000", "0000")
	res, err := b.New(4, 4)
	require.NoError(t, err)

	d := &Descriptor{Input1: Transposed}
	require.NoError(t, b.EWiseAdd(res, a, a, d))
	require.Equal(t, []string{"0100", "1000", "0000", "0000"}, toMasks(res.(*BitMatrix)))
}

func TestBitBackend_TransposeInPlace(t *testing.T) {
	b := NewBitBackend()
	a := rowsFromMasks(t, b, "0100", "0000", "0000", "0000")
	require.NoError(t, b.TransposeInPlace(a))
	require.Equal(t, []string{"0000", "1000", "0000", "0000"}, toMasks(a))
}

func TestIdentitySentinel(t *testing.T) {
	require.True(t, IsIdentity(Identity))
	b := NewBitBackend()
	m, err := b.New(2, 2)
	require.NoError(t, err)
	require.False(t, IsIdentity(m))
}
