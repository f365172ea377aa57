package matrix

import (
	"github.com/pilosa/pilosa/roaring"
	"github.com/sirupsen/logrus"
)

// BitMatrix is the reference Matrix implementation: each row is a roaring
// bitmap (github.com/pilosa/pilosa/roaring) of its nonzero column indices.
// It exists so the evaluator can be built and exercised without a real
// GraphBLAS binding — the same "set of nonzero positions" idea Pilosa uses
// for bitmap-indexed table columns (sql/index/pilosalib in the teacher),
// applied here to matrix rows instead of index terms.
type BitMatrix struct {
	rows, cols int
	row        []*roaring.Bitmap
}

// Rows implements Matrix.
func (m *BitMatrix) Rows() int { return m.rows }

// Cols implements Matrix.
func (m *BitMatrix) Cols() int { return m.cols }

// Contains reports whether entry (i, j) is set. Exposed for tests.
func (m *BitMatrix) Contains(i, j int) bool {
	return m.row[i].Contains(uint64(j))
}

// SetBit sets entry (i, j). Exposed for test fixtures that build matrices
// by hand rather than through the evaluator.
func (m *BitMatrix) SetBit(i, j int) {
	_, _ = m.row[i].Add(uint64(j))
}

func newBitMatrix(rows, cols int) *BitMatrix {
	rb := make([]*roaring.Bitmap, rows)
	for i := range rb {
		rb[i] = roaring.NewBitmap()
	}
	return &BitMatrix{rows: rows, cols: cols, row: rb}
}

// NewBitMatrixFromRows rebuilds a *BitMatrix from a sparse row listing
// (nonzero[i] is the sorted set of columns set in row i). It exists so
// other packages (e.g. graphstore's durable Store) can deserialize a
// matrix without reaching into BitMatrix's unexported fields.
func NewBitMatrixFromRows(rows, cols int, nonzero [][]int) *BitMatrix {
	bm := newBitMatrix(rows, cols)
	for i, cols := range nonzero {
		for _, j := range cols {
			bm.SetBit(i, j)
		}
	}
	return bm
}

// NonzeroRows returns, for each row, the sorted set of nonzero columns —
// the inverse of NewBitMatrixFromRows, used for serialization.
func (m *BitMatrix) NonzeroRows() [][]int {
	out := make([][]int, m.rows)
	for i, r := range m.row {
		bits := r.Slice()
		cols := make([]int, len(bits))
		for k, b := range bits {
			cols[k] = int(b)
		}
		out[i] = cols
	}
	return out
}

// BitBackend is the Backend driving BitMatrix values.
type BitBackend struct {
	log *logrus.Logger
}

// BackendOption configures a BitBackend.
type BackendOption func(*BitBackend)

// WithLogger overrides the backend's diagnostic logger.
func WithLogger(l *logrus.Logger) BackendOption {
	return func(b *BitBackend) { b.log = l }
}

// NewBitBackend constructs the reference Backend.
func NewBitBackend(opts ...BackendOption) *BitBackend {
	b := &BitBackend{log: logrus.StandardLogger()}
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *BitBackend) as(m Matrix, op string) (*BitMatrix, error) {
	bm, ok := m.(*BitMatrix)
	if !ok {
		err := ErrBackend.New(op + ": not a *matrix.BitMatrix")
		b.log.WithField("op", op).WithError(err).Warn("matrix: backend call given a foreign Matrix value")
		return nil, err
	}
	return bm, nil
}

// New implements Backend.
func (b *BitBackend) New(rows, cols int) (Matrix, error) {
	if rows < 0 || cols < 0 {
		err := ErrInvalidShape.New(rows, cols)
		b.log.WithFields(logrus.Fields{"rows": rows, "cols": cols}).WithError(err).Warn("matrix: refusing to allocate an invalid shape")
		return nil, err
	}
	return newBitMatrix(rows, cols), nil
}

// Free implements Backend. BitMatrix is garbage collected; Free only
// drops the caller's references early so large row bitmaps are eligible
// for collection sooner than the next GC cycle would otherwise notice.
func (b *BitBackend) Free(m Matrix) error {
	bm, err := b.as(m, "Free")
	if err != nil {
		return err
	}
	bm.row = nil
	return nil
}

// NVals implements Backend.
func (b *BitBackend) NVals(m Matrix) (int, error) {
	bm, err := b.as(m, "NVals")
	if err != nil {
		return 0, err
	}
	total := 0
	for _, r := range bm.row {
		total += int(r.Count())
	}
	return total, nil
}

// TransposeInPlace implements Backend.
func (b *BitBackend) TransposeInPlace(m Matrix) error {
	bm, err := b.as(m, "TransposeInPlace")
	if err != nil {
		return err
	}
	next := make([]*roaring.Bitmap, bm.cols)
	for i := range next {
		next[i] = roaring.NewBitmap()
	}
	for i, r := range bm.row {
		for _, j := range r.Slice() {
			_, _ = next[j].Add(uint64(i))
		}
	}
	bm.row = next
	bm.rows, bm.cols = bm.cols, bm.rows
	return nil
}

// effectiveRow returns the set columns of row i of a, honoring a transposed
// input slot, without ever materializing the transpose.
func effectiveRow(a *BitMatrix, mode InputMode, i int) []uint64 {
	if mode == Default {
		return a.row[i].Slice()
	}
	// Transposed: row i of Aᵀ is column i of A.
	out := make([]uint64, 0)
	for r := 0; r < a.rows; r++ {
		if a.row[r].Contains(uint64(i)) {
			out = append(out, uint64(r))
		}
	}
	return out
}

func effectiveShape(a *BitMatrix, mode InputMode) (rows, cols int) {
	if mode == Default {
		return a.rows, a.cols
	}
	return a.cols, a.rows
}

// EWiseAdd implements Backend: dst = a ∨ b, commutative/associative OR.
func (b *BitBackend) EWiseAdd(dst, a, b2 Matrix, d *Descriptor) error {
	dm, err := b.as(dst, "EWiseAdd")
	if err != nil {
		return err
	}
	am, err := b.as(a, "EWiseAdd")
	if err != nil {
		return err
	}
	bm, err := b.as(b2, "EWiseAdd")
	if err != nil {
		return err
	}
	rows, cols := effectiveShape(am, d.Input0)
	if brows, bcols := effectiveShape(bm, d.Input1); brows != rows || bcols != cols {
		err := ErrBackend.New("EWiseAdd: shape mismatch")
		b.log.WithFields(logrus.Fields{"a_shape": [2]int{rows, cols}, "b_shape": [2]int{brows, bcols}}).WithError(err).Warn("matrix: EWiseAdd operand shapes disagree")
		return err
	}
	out := make([]*roaring.Bitmap, rows)
	for i := 0; i < rows; i++ {
		r := roaring.NewBitmap()
		for _, j := range effectiveRow(am, d.Input0, i) {
			_, _ = r.Add(j)
		}
		for _, j := range effectiveRow(bm, d.Input1, i) {
			_, _ = r.Add(j)
		}
		out[i] = r
	}
	dm.row, dm.rows, dm.cols = out, rows, cols
	_ = cols
	return nil
}

// MatMul implements Backend: dst = a · b under the any-pair boolean
// semiring (AND as multiplication, OR as addition): dst[i,j] is set iff
// some k has a[i,k] and b[k,j] both set.
func (b *BitBackend) MatMul(dst, a, b2 Matrix, d *Descriptor) error {
	dm, err := b.as(dst, "MatMul")
	if err != nil {
		return err
	}
	am, err := b.as(a, "MatMul")
	if err != nil {
		return err
	}
	bm, err := b.as(b2, "MatMul")
	if err != nil {
		return err
	}
	arows, acols := effectiveShape(am, d.Input0)
	brows, bcols := effectiveShape(bm, d.Input1)
	if acols != brows {
		err := ErrBackend.New("MatMul: inner dimension mismatch")
		b.log.WithFields(logrus.Fields{"a_cols": acols, "b_rows": brows}).WithError(err).Warn("matrix: MatMul inner dimensions disagree")
		return err
	}
	out := make([]*roaring.Bitmap, arows)
	for i := 0; i < arows; i++ {
		r := roaring.NewBitmap()
		for _, k := range effectiveRow(am, d.Input0, i) {
			for _, j := range effectiveRow(bm, d.Input1, int(k)) {
				_, _ = r.Add(j)
			}
		}
		out[i] = r
	}
	dm.row, dm.rows, dm.cols = out, arows, bcols
	return nil
}

// ApplyIdentity implements Backend: dst = a, optionally transposed per
// Input0. This is the Backend call Multiply(A, Identity) reduces to.
func (b *BitBackend) ApplyIdentity(dst, a Matrix, d *Descriptor) error {
	dm, err := b.as(dst, "ApplyIdentity")
	if err != nil {
		return err
	}
	am, err := b.as(a, "ApplyIdentity")
	if err != nil {
		return err
	}
	rows, cols := effectiveShape(am, d.Input0)
	out := make([]*roaring.Bitmap, rows)
	for i := 0; i < rows; i++ {
		r := roaring.NewBitmap()
		for _, j := range effectiveRow(am, d.Input0, i) {
			_, _ = r.Add(j)
		}
		out[i] = r
	}
	dm.row, dm.rows, dm.cols = out, rows, cols
	return nil
}
