package derive

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"careerframe/internal/model"
)

type cacheKey struct {
	discipline string
	level      string
	track      string
}

func (k cacheKey) String() string {
	return k.discipline + "\x00" + k.level + "\x00" + k.track
}

// JobCache memoizes derived jobs by (discipline, level, track?). Derivation
// is idempotent, so the cache exists purely to avoid repeated work; nil
// results (invalid combinations) are cached too. Safe for concurrent use:
// in-flight derivations for the same key are collapsed via singleflight.
type JobCache struct {
	engine *Engine

	mu   sync.RWMutex
	jobs map[cacheKey]*model.JobDefinition

	group singleflight.Group
}

// NewJobCache wraps an engine with a get-or-derive cache.
func NewJobCache(engine *Engine) *JobCache {
	return &JobCache{
		engine: engine,
		jobs:   make(map[cacheKey]*model.JobDefinition),
	}
}

func key(d *model.Discipline, l *model.Level, t *model.Track) cacheKey {
	k := cacheKey{discipline: d.ID, level: l.ID}
	if t != nil {
		k.track = t.ID
	}
	return k
}

// GetOrDerive returns the cached job for the combination, deriving and
// caching it on first use. Returns nil for invalid combinations, exactly
// like Engine.DeriveJob.
func (c *JobCache) GetOrDerive(d *model.Discipline, l *model.Level, t *model.Track) *model.JobDefinition {
	k := key(d, l, t)
	c.mu.RLock()
	job, ok := c.jobs[k]
	c.mu.RUnlock()
	if ok {
		return job
	}
	v, _, _ := c.group.Do(k.String(), func() (interface{}, error) {
		c.mu.RLock()
		job, ok := c.jobs[k]
		c.mu.RUnlock()
		if ok {
			return job, nil
		}
		job = c.engine.DeriveJob(d, l, t)
		c.mu.Lock()
		c.jobs[k] = job
		c.mu.Unlock()
		return job, nil
	})
	if v == nil {
		return nil
	}
	return v.(*model.JobDefinition)
}

// Invalidate drops one cached combination.
func (c *JobCache) Invalidate(d *model.Discipline, l *model.Level, t *model.Track) {
	k := key(d, l, t)
	c.mu.Lock()
	delete(c.jobs, k)
	c.mu.Unlock()
}

// Clear drops every cached entry.
func (c *JobCache) Clear() {
	c.mu.Lock()
	c.jobs = make(map[cacheKey]*model.JobDefinition)
	c.mu.Unlock()
}

// Size returns the number of cached combinations, including cached nils.
func (c *JobCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.jobs)
}
