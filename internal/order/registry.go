package order

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type registryEntry struct {
	draft    *Draft
	lastUsed time.Time
}

// Registry holds the drafts that are still open, keyed by id. Drafts nobody
// touches for longer than the idle limit are abandoned by EvictIdle.
type Registry struct {
	mu     sync.Mutex
	drafts map[string]*registryEntry
	now    func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		drafts: make(map[string]*registryEntry),
		now:    time.Now,
	}
}

func (r *Registry) Open() *Draft {
	d := NewDraft(uuid.NewString())

	r.mu.Lock()
	r.drafts[d.ID] = &registryEntry{draft: d, lastUsed: r.now()}
	r.mu.Unlock()

	return d
}

// Get returns the draft and marks it as used.
func (r *Registry) Get(id string) (*Draft, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.drafts[id]
	if !ok {
		return nil, false
	}
	e.lastUsed = r.now()
	return e.draft, true
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.drafts, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.drafts)
}

// EvictIdle abandons and removes every draft unused for longer than maxIdle
// and returns how many went.
func (r *Registry) EvictIdle(maxIdle time.Duration) int {
	r.mu.Lock()
	now := r.now()
	var expired []*Draft
	for id, e := range r.drafts {
		if now.Sub(e.lastUsed) > maxIdle {
			expired = append(expired, e.draft)
			delete(r.drafts, id)
		}
	}
	r.mu.Unlock()

	for _, d := range expired {
		d.abandon()
	}
	return len(expired)
}

// Run evicts idle drafts every interval until ctx is done. A non-positive
// maxIdle or interval disables eviction.
func (r *Registry) Run(ctx context.Context, interval, maxIdle time.Duration) {
	if interval <= 0 || maxIdle <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := r.EvictIdle(maxIdle); n > 0 {
				log.Info().Int("drafts", n).Dur("max_idle", maxIdle).Msg("evicted idle drafts")
			}
		case <-ctx.Done():
			return
		}
	}
}
