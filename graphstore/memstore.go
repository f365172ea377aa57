package graphstore

import (
	"context"
	"sync"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/opencypher-go/algebra-eval/matrix"
)

// MemStore is an in-memory Store backed by a map, guarded by a RWMutex so
// concurrent evaluations may share read-only access to borrowed operand
// matrices, as spec.md §5 requires of the Graph Store.
type MemStore struct {
	mu  sync.RWMutex
	log *logrus.Logger
	m   map[string]matrix.Matrix
}

// NewMemStore creates an empty MemStore.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{m: make(map[string]matrix.Matrix), log: logrus.StandardLogger()}
	for _, o := range opts {
		o.applyMem(s)
	}
	return s
}

// Put registers m under label, replacing any prior binding. Put is not
// part of the Store interface: it is how a test or a loader populates a
// MemStore before handing it to the evaluator.
func (s *MemStore) Put(label string, m matrix.Matrix) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[label] = m
}

// MatrixFor implements Store.
func (s *MemStore) MatrixFor(ctx context.Context, label string) (matrix.Matrix, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "graphstore.MatrixFor")
	span.SetTag("label", label)
	defer span.Finish()

	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.m[label]
	if !ok {
		span.SetTag("error", true)
		s.log.WithField("label", label).Debug("graphstore: label not found")
		return nil, ErrNotFound.New(label)
	}
	return m, nil
}

// Option configures a reference Store implementation.
type Option struct {
	applyMem  func(*MemStore)
	applyBolt func(*BoltStore)
}

// WithLogger overrides a Store's diagnostic logger.
func WithLogger(l *logrus.Logger) Option {
	return Option{
		applyMem:  func(s *MemStore) { s.log = l },
		applyBolt: func(s *BoltStore) { s.log = l },
	}
}
