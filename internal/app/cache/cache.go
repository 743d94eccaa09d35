// Package cache holds finished traces keyed by their inputs. Entries cost
// their step count, so the bound is on total steps held, not on entries.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/dgraph-io/ristretto/v2"
	"golang.org/x/sync/singleflight"

	"github.com/awmpietro/palindrome-trace/internal/palindrome"
)

// Entry is one cached run.
type Entry struct {
	Trace  *palindrome.Trace
	Result palindrome.Result
}

// Cost is the weight an entry counts against the cache bound.
func (e *Entry) Cost() int64 {
	if e == nil || e.Trace == nil {
		return 1
	}
	return int64(max(1, e.Trace.Len()))
}

type Traces struct {
	cache *ristretto.Cache[string, *Entry]
	group singleflight.Group
}

// NewTraces returns a cache bounded to maxCost steps. maxCost <= 0 disables
// storage; concurrent identical requests are still collapsed.
func NewTraces(maxCost int64) (*Traces, error) {
	t := &Traces{}
	if maxCost <= 0 {
		return t, nil
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, *Entry]{
		NumCounters:        max(1000, maxCost/100),
		MaxCost:            maxCost,
		BufferItems:        64,
		Metrics:            true,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	t.cache = c
	return t, nil
}

// GetOrCompute returns the cached entry for key, or runs fn once for all
// concurrent callers and stores its result. Errors are never cached.
func (t *Traces) GetOrCompute(key string, fn func() (*Entry, error)) (*Entry, error) {
	key = hash(key)
	if t.cache != nil {
		if e, ok := t.cache.Get(key); ok {
			return e, nil
		}
	}

	v, err, _ := t.group.Do(key, func() (any, error) {
		if t.cache != nil {
			if e, ok := t.cache.Get(key); ok {
				return e, nil
			}
		}
		e, err := fn()
		if err != nil {
			return nil, err
		}
		if t.cache != nil && t.cache.Set(key, e, e.Cost()) {
			t.cache.Wait()
		}
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Entry), nil
}

// Hits reports cache hits, or 0 when storage is disabled.
func (t *Traces) Hits() uint64 {
	if t.cache == nil {
		return 0
	}
	return t.cache.Metrics.Hits()
}

func (t *Traces) Close() {
	if t.cache != nil {
		t.cache.Close()
	}
}

// Key joins the parts that identify a run.
func Key(parts ...string) string {
	return strings.Join(parts, "\x00")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
