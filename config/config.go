// Package config loads ambient Evaluator/Backend configuration from a
// file, and exposes it as functional options in the teacher's own style
// (sql.With* throughout enginetest/*_test.go — sql.WithRootSpan,
// sql.WithIndexRegistry, and friends).
package config

import (
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/opentracing/opentracing-go"
	gotoml "github.com/pelletier/go-toml"
	"github.com/spf13/cast"
	errors "gopkg.in/src-d/go-errors.v1"
	"gopkg.in/yaml.v2"
)

// ErrUnsupportedFormat is returned by Load for any extension other than
// .yml/.yaml/.toml.
var ErrUnsupportedFormat = errors.NewKind("config: unsupported file format %q")

// Config is the ambient, file-loadable configuration for an Evaluator and
// its Backend/Graph Store. The fixed fields are decoded directly into their
// Go types; the untyped top-level values are kept separately, and the Get*
// accessors below apply github.com/spf13/cast to them so a TOML integer and
// a YAML string both coerce the same way.
type Config struct {
	BoltPath     string `yaml:"bolt_path" toml:"bolt_path"`
	MaxTreeDepth int    `yaml:"max_tree_depth" toml:"max_tree_depth"`
	LogLevel     string `yaml:"log_level" toml:"log_level"`
	TracerName   string `yaml:"tracer" toml:"tracer"`

	raw map[string]interface{}
}

// Load reads path and decodes it according to its extension: .yml/.yaml
// via gopkg.in/yaml.v2, .toml via github.com/BurntSushi/toml. A second,
// independent decode into a generic map (gopkg.in/yaml.v2 again for YAML,
// github.com/pelletier/go-toml for TOML) backs GetString/GetInt for
// lenient lookups beyond Config's fixed fields (the TOML path mirrors the
// teacher's go.mod carrying both TOML libraries at once).
func Load(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		m := map[string]interface{}{}
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		c.raw = m
	case ".toml":
		if _, err := toml.Decode(string(data), &c); err != nil {
			return nil, err
		}
		tree, err := gotoml.LoadBytes(data)
		if err != nil {
			return nil, err
		}
		c.raw = tree.ToMap()
	default:
		return nil, ErrUnsupportedFormat.New(ext)
	}
	return &c, nil
}

// GetString coerces a raw top-level config value to a string via
// github.com/spf13/cast, returning "" if key is absent or unconvertible.
func (c *Config) GetString(key string) string {
	v, ok := c.raw[key]
	if !ok {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

// GetInt coerces a raw top-level config value to an int via
// github.com/spf13/cast, returning 0 if key is absent or unconvertible.
func (c *Config) GetInt(key string) int {
	v, ok := c.raw[key]
	if !ok {
		return 0
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0
	}
	return n
}

// Tracer resolves TracerName to an opentracing.Tracer: "noop"/"none" gets
// opentracing.NoopTracer{} (the same tracer the teacher's enginetest mock
// spans wrap), anything else (including "") falls back to
// opentracing.GlobalTracer() so a process that has called
// opentracing.SetGlobalTracer elsewhere is honored by default.
func (c *Config) Tracer() opentracing.Tracer {
	switch strings.ToLower(c.TracerName) {
	case "noop", "none":
		return opentracing.NoopTracer{}
	default:
		return opentracing.GlobalTracer()
	}
}
