package compiler

import (
	"slices"
	"strconv"
	"strings"

	"github.com/brimdata/arith/compiler/semantic"
	arc "github.com/hashicorp/golang-lru/arc/v2"
)

//go:generate mockgen -destination=./mock/mock_cache.go -package=mock . Cache

// Cache holds the outcome of earlier calls to Parse.  Implementations must
// be safe for concurrent use.
type Cache interface {
	Get(key string) (Entry, bool)
	Add(key string, entry Entry)
}

// Entry is a cached outcome of Parse.  Exactly one of Equation and Err is
// set.
type Entry struct {
	Equation *Equation
	Err      error
}

// NewARCCache returns a Cache holding up to size entries with adaptive
// replacement.
func NewARCCache(size int) (Cache, error) {
	c, err := arc.NewARC[string, Entry](size)
	if err != nil {
		return nil, err
	}
	return &arcCache{c}, nil
}

type arcCache struct {
	cache *arc.ARCCache[string, Entry]
}

func (a *arcCache) Get(key string) (Entry, bool) {
	return a.cache.Get(key)
}

func (a *arcCache) Add(key string, entry Entry) {
	a.cache.Add(key, entry)
}

// CacheKey returns the key under which the outcome of parsing text with
// opts is cached.  The order of custom measurements does not matter.
func CacheKey(text string, opts Options) string {
	measurements := slices.Clone(opts.CustomMeasurements)
	slices.Sort(measurements)
	measurements = slices.Compact(measurements)
	limit := opts.MaxOperators
	if limit < 1 {
		limit = semantic.DefaultMaxOperators
	}
	var b strings.Builder
	b.WriteString(strconv.Itoa(limit))
	b.WriteByte(0)
	b.WriteString(strconv.FormatBool(opts.ValidateSingleOperator))
	for _, m := range measurements {
		b.WriteByte(0)
		b.WriteString(m)
	}
	b.WriteByte(0)
	b.WriteByte(0)
	b.WriteString(text)
	return b.String()
}
