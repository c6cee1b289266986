package compiler

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Compiler parses equations with Parse, consulting an optional cache and
// recording metrics.  A Compiler is safe for concurrent use.
type Compiler struct {
	logger  *zap.Logger
	cache   Cache
	metrics *metrics
}

type Option func(*config) error

type config struct {
	logger     *zap.Logger
	cache      Cache
	cacheSize  int
	registerer prometheus.Registerer
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithCache sets the cache used by the Compiler.  It takes precedence over
// WithCacheSize.
func WithCache(cache Cache) Option {
	return func(c *config) error {
		c.cache = cache
		return nil
	}
}

// WithCacheSize enables an ARC cache of the given size.  A size of zero
// disables caching.
func WithCacheSize(size int) Option {
	return func(c *config) error {
		c.cacheSize = size
		return nil
	}
}

// WithRegisterer registers the Compiler's metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) error {
		c.registerer = reg
		return nil
	}
}

func NewCompiler(opts ...Option) (*Compiler, error) {
	var c config
	for _, o := range opts {
		if err := o(&c); err != nil {
			return nil, err
		}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.cache == nil && c.cacheSize > 0 {
		cache, err := NewARCCache(c.cacheSize)
		if err != nil {
			return nil, err
		}
		c.cache = cache
	}
	return &Compiler{
		logger:  c.logger,
		cache:   c.cache,
		metrics: newMetrics(c.registerer),
	}, nil
}

// Parse is like the package-level Parse but serves repeated requests
// from the cache.
func (c *Compiler) Parse(text string, opts Options) (*Equation, error) {
	var key string
	if c.cache != nil {
		key = CacheKey(text, opts)
		if entry, ok := c.cache.Get(key); ok {
			c.metrics.cacheHits.Inc()
			return entry.Equation, entry.Err
		}
	}
	eq, err := Parse(text, opts)
	c.metrics.observe(eq, err)
	if err != nil {
		c.logger.Debug("Equation rejected",
			zap.String("equation", text),
			zap.String("result", resultLabel(err)),
			zap.Error(err))
	} else {
		c.logger.Debug("Equation compiled",
			zap.String("equation", text),
			zap.Int("operators", eq.Operators),
			zap.Strings("fields", eq.Fields),
			zap.Strings("functions", eq.Functions))
	}
	if c.cache != nil {
		c.cache.Add(key, Entry{Equation: eq, Err: err})
	}
	return eq, err
}
