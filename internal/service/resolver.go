package service

import (
	"context"
	"sync"

	"github.com/kanekanefy/qwerty-learner/internal/cache"
	"github.com/kanekanefy/qwerty-learner/internal/model"
)

// Resolver is one illustration subscription: it tracks the active word,
// runs resolution cycles asynchronously, and exposes the observable
// status/data/error triple. Activating a new word supersedes the in-flight
// cycle; a superseded cycle's results are discarded and its network work is
// cancelled.
type Resolver struct {
	svc *Illustrations

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	word       model.Word
	enabled    bool
	bypassNext bool
	state      model.IllustrationState
	onChange   func(model.IllustrationState)
	running    sync.WaitGroup
}

func NewResolver(svc *Illustrations) *Resolver {
	return &Resolver{
		svc:   svc,
		state: model.IllustrationState{Status: model.StatusIdle},
	}
}

// OnChange registers a listener for state transitions. The listener runs
// with the resolver locked and must not call back into the resolver.
func (r *Resolver) OnChange(fn func(model.IllustrationState)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

// State returns the current observable state.
func (r *Resolver) State() model.IllustrationState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Activate switches the subscription to a word. A disabled subscription or
// an empty normalized word settles in idle without any cache or network
// activity; otherwise the resolver enters loading and resolves in the
// background.
func (r *Resolver) Activate(word model.Word, enabled bool) {
	r.mu.Lock()

	r.generation++
	gen := r.generation
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.word = word
	r.enabled = enabled

	if !enabled || cache.Normalize(word.Name) == "" {
		r.setStateLocked(model.IllustrationState{Status: model.StatusIdle})
		r.mu.Unlock()
		return
	}

	bypass := r.bypassNext
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.setStateLocked(model.IllustrationState{Status: model.StatusLoading})
	r.running.Add(1)
	r.mu.Unlock()

	go r.run(ctx, gen, word, bypass)
}

// Refresh re-resolves the current word, bypassing and replacing any cached
// record. The bypass applies to exactly one cycle.
func (r *Resolver) Refresh() {
	r.mu.Lock()
	word, enabled := r.word, r.enabled
	r.bypassNext = true
	r.mu.Unlock()

	r.Activate(word, enabled)
}

// Close cancels any in-flight cycle and resets to idle. Late results are
// discarded.
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.setStateLocked(model.IllustrationState{Status: model.StatusIdle})
}

// Wait blocks until no resolution cycle is in flight.
func (r *Resolver) Wait() {
	r.running.Wait()
}

func (r *Resolver) run(ctx context.Context, gen uint64, word model.Word, bypass bool) {
	defer r.running.Done()

	outcome, err := r.svc.Resolve(ctx, ResolveRequest{Word: word, BypassCache: bypass})

	r.mu.Lock()
	defer r.mu.Unlock()

	// Every mutation is gated on the cycle still being current; a stale
	// cycle must not touch state or the single-shot bypass flag.
	if gen != r.generation {
		return
	}
	r.cancel = nil
	if bypass {
		r.bypassNext = false
	}
	if err != nil {
		// Cancelled mid-flight without supersession (Close race);
		// the abort is silent.
		return
	}

	r.setStateLocked(model.IllustrationState{
		Status: outcome.Status,
		Data:   outcome.Data,
		Error:  outcome.Err,
	})
}

func (r *Resolver) setStateLocked(state model.IllustrationState) {
	r.state = state
	if r.onChange != nil {
		r.onChange(state)
	}
}
