package graphstore

import (
	"bytes"
	"context"
	"encoding/gob"

	"github.com/boltdb/bolt"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/opencypher-go/algebra-eval/matrix"
)

var bucketName = []byte("matrices")

// encodedMatrix is the gob-serialized shape of a BoltStore entry: the
// sparse row listing matrix.BitMatrix.NonzeroRows/NewBitMatrixFromRows
// already use internally, so encode/decode is a direct round trip with no
// extra translation layer.
type encodedMatrix struct {
	Rows, Cols int
	Nonzero    [][]int
}

// BoltStore is a durable Store backed by a single BoltDB bucket
// (github.com/boltdb/bolt, a direct dependency of the teacher's table
// storage layer, re-pointed here at persisting the label→matrix map
// instead of SQL rows).
type BoltStore struct {
	db  *bolt.DB
	log *logrus.Logger
}

// OpenBoltStore opens (creating if absent) a BoltDB file at path and
// ensures its matrices bucket exists.
func OpenBoltStore(path string, opts ...Option) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "graphstore: opening bolt store")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "graphstore: creating matrices bucket")
	}
	s := &BoltStore{db: db, log: logrus.StandardLogger()}
	for _, o := range opts {
		if o.applyBolt != nil {
			o.applyBolt(s)
		}
	}
	return s, nil
}

// Close closes the underlying BoltDB file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Put persists bm under label.
func (s *BoltStore) Put(label string, bm *matrix.BitMatrix) error {
	enc := encodedMatrix{Rows: bm.Rows(), Cols: bm.Cols(), Nonzero: bm.NonzeroRows()}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(enc); err != nil {
		return errors.Wrapf(err, "graphstore: encoding matrix for %q", label)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(label), buf.Bytes())
	})
}

// MatrixFor implements Store.
func (s *BoltStore) MatrixFor(ctx context.Context, label string) (matrix.Matrix, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "graphstore.MatrixFor")
	span.SetTag("label", label)
	defer span.Finish()

	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(label))
		if v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		span.SetTag("error", true)
		return nil, errors.Wrapf(err, "graphstore: reading %q", label)
	}
	if raw == nil {
		span.SetTag("error", true)
		s.log.WithField("label", label).Debug("graphstore: label not found in bolt store")
		return nil, ErrNotFound.New(label)
	}
	var enc encodedMatrix
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&enc); err != nil {
		span.SetTag("error", true)
		return nil, errors.Wrapf(err, "graphstore: decoding matrix for %q", label)
	}
	return matrix.NewBitMatrixFromRows(enc.Rows, enc.Cols, enc.Nonzero), nil
}
