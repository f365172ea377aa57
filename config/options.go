package config

import (
	"github.com/sirupsen/logrus"

	"github.com/opencypher-go/algebra-eval/eval"
	"github.com/opencypher-go/algebra-eval/graphstore"
	"github.com/opencypher-go/algebra-eval/matrix"
)

// EvaluatorOptions translates a loaded Config into the functional options
// eval.New accepts, the same With* shape the teacher wires enginetest
// options with (sql.WithRootSpan, sql.WithIndexRegistry, ...).
func (c *Config) EvaluatorOptions() []eval.Option {
	var opts []eval.Option
	if lvl := c.LogLevel; lvl != "" {
		log := logrus.StandardLogger()
		if parsed, err := logrus.ParseLevel(lvl); err == nil {
			log.SetLevel(parsed)
		}
		opts = append(opts, eval.WithLogger(log))
	}
	if c.MaxTreeDepth > 0 {
		opts = append(opts, eval.WithMaxDepth(c.MaxTreeDepth))
	}
	opts = append(opts, eval.WithTracer(c.Tracer()))
	return opts
}

// BackendOptions translates a loaded Config into matrix.BackendOption
// values for matrix.NewBitBackend.
func (c *Config) BackendOptions() []matrix.BackendOption {
	var opts []matrix.BackendOption
	if lvl := c.LogLevel; lvl != "" {
		log := logrus.StandardLogger()
		if parsed, err := logrus.ParseLevel(lvl); err == nil {
			log.SetLevel(parsed)
		}
		opts = append(opts, matrix.WithLogger(log))
	}
	return opts
}

// OpenGraphStore opens the Graph Store named by the config's BoltPath, or
// falls back to an in-memory store when none is configured.
func (c *Config) OpenGraphStore() (graphstore.Store, error) {
	if c.BoltPath == "" {
		return graphstore.NewMemStore(), nil
	}
	return graphstore.OpenBoltStore(c.BoltPath)
}
