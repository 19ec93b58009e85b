package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kanekanefy/qwerty-learner/internal/model"
	"github.com/kanekanefy/qwerty-learner/internal/unsplash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForStatus(t *testing.T, r *Resolver, status model.Status) model.IllustrationState {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		state := r.State()
		if state.Status == status {
			return state
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("resolver never reached status %q, last state: %+v", status, r.State())
	return model.IllustrationState{}
}

func TestResolver_DisabledIsIdle(t *testing.T) {
	svc := NewIllustrations(fixedQueries{"q1"}, &mockSearcher{}, newMockCache(), IllustrationsConfig{})
	r := NewResolver(svc)

	r.Activate(model.Word{Name: "fox"}, false)

	state := r.State()
	assert.Equal(t, model.StatusIdle, state.Status)
	assert.Nil(t, state.Data)
	assert.Nil(t, state.Error)
}

func TestResolver_EmptyWordIsIdle(t *testing.T) {
	svc := NewIllustrations(fixedQueries{"q1"}, &mockSearcher{}, newMockCache(), IllustrationsConfig{})
	r := NewResolver(svc)

	r.Activate(model.Word{Name: "   "}, true)
	assert.Equal(t, model.StatusIdle, r.State().Status)
}

func TestResolver_SuccessCycle(t *testing.T) {
	searcher := &mockSearcher{
		search: func(ctx context.Context, query string) (*unsplash.Image, error) {
			return foxImage(query), nil
		},
	}
	svc := NewIllustrations(fixedQueries{"q1"}, searcher, newMockCache(), IllustrationsConfig{})
	r := NewResolver(svc)

	r.Activate(model.Word{Name: "fox"}, true)
	state := waitForStatus(t, r, model.StatusSuccess)

	require.NotNil(t, state.Data)
	assert.False(t, state.Data.Cached)
	svc.trackWG.Wait()
}

func TestResolver_EmptyCycle(t *testing.T) {
	searcher := &mockSearcher{
		search: func(ctx context.Context, query string) (*unsplash.Image, error) {
			return nil, nil
		},
	}
	svc := NewIllustrations(fixedQueries{"q1", "q2"}, searcher, newMockCache(), IllustrationsConfig{})
	r := NewResolver(svc)

	r.Activate(model.Word{Name: "fox"}, true)
	state := waitForStatus(t, r, model.StatusEmpty)
	assert.Nil(t, state.Data)
	assert.Nil(t, state.Error)
}

func TestResolver_MissingKeySurfaces(t *testing.T) {
	searcher := &mockSearcher{
		search: func(ctx context.Context, query string) (*unsplash.Image, error) {
			return nil, unsplash.ErrMissingKey
		},
	}
	svc := NewIllustrations(fixedQueries{"q1"}, searcher, newMockCache(), IllustrationsConfig{})
	r := NewResolver(svc)

	r.Activate(model.Word{Name: "fox"}, true)
	state := waitForStatus(t, r, model.StatusError)
	require.NotNil(t, state.Error)
	assert.Equal(t, model.ErrCodeMissingKey, state.Error.Code)
}

func TestResolver_SupersededCycleDiscarded(t *testing.T) {
	block := make(chan struct{})
	var calls atomic.Int32
	searcher := &mockSearcher{
		search: func(ctx context.Context, query string) (*unsplash.Image, error) {
			if calls.Add(1) == 1 {
				// First cycle: held until after supersession. It may
				// settle with a result or a context error; either way
				// the resolver must discard it.
				select {
				case <-block:
					return foxImage("stale " + query), nil
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			}
			return foxImage("fresh " + query), nil
		},
	}

	svc := NewIllustrations(fixedQueries{"q1"}, searcher, newMockCache(), IllustrationsConfig{})
	r := NewResolver(svc)

	r.Activate(model.Word{Name: "fox"}, true)
	assert.Equal(t, model.StatusLoading, r.State().Status)

	r.Activate(model.Word{Name: "owl"}, true)
	close(block)

	state := waitForStatus(t, r, model.StatusSuccess)
	require.NotNil(t, state.Data)
	assert.Contains(t, state.Data.Query, "fresh")
	r.Wait()

	// The stale cycle never overwrites the fresh result.
	assert.Contains(t, r.State().Data.Query, "fresh")
	svc.trackWG.Wait()
}

func TestResolver_CancelledCycleMakesNoTransition(t *testing.T) {
	started := make(chan struct{})
	searcher := &mockSearcher{
		search: func(ctx context.Context, query string) (*unsplash.Image, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	svc := NewIllustrations(fixedQueries{"q1"}, searcher, newMockCache(), IllustrationsConfig{})
	r := NewResolver(svc)

	var transitions []model.Status
	r.OnChange(func(s model.IllustrationState) {
		transitions = append(transitions, s.Status)
	})

	r.Activate(model.Word{Name: "fox"}, true)
	<-started
	r.Close()
	r.Wait()

	assert.Equal(t, []model.Status{model.StatusLoading, model.StatusIdle}, transitions)
	assert.Equal(t, model.StatusIdle, r.State().Status)
}

func TestResolver_RefreshBypassesCacheOnce(t *testing.T) {
	searcher := &mockSearcher{
		search: func(ctx context.Context, query string) (*unsplash.Image, error) {
			return foxImage(query), nil
		},
	}
	assets := newMockCache()
	assets.records["fox/unsplash"] = model.MediaAssetRecord{
		ID: "cached-id", Word: "fox", Source: "unsplash", ImageURL: "old", Query: "old-q",
	}
	svc := NewIllustrations(fixedQueries{"q1"}, searcher, assets, IllustrationsConfig{})
	r := NewResolver(svc)

	// First activation hits the cache.
	r.Activate(model.Word{Name: "fox"}, true)
	state := waitForStatus(t, r, model.StatusSuccess)
	require.NotNil(t, state.Data)
	assert.True(t, state.Data.Cached)
	assert.Empty(t, searcher.searchedQueries())

	// Refresh deletes the cached record and refetches.
	r.Refresh()
	r.Wait()
	state = waitForStatus(t, r, model.StatusSuccess)
	require.NotNil(t, state.Data)
	assert.False(t, state.Data.Cached)
	assert.Equal(t, []string{"fox/unsplash"}, assets.deleted)
	assert.Equal(t, []string{"q1"}, searcher.searchedQueries())

	// The next activation is cache-enabled again: the refreshed record
	// is served without another provider call.
	r.Activate(model.Word{Name: "fox"}, true)
	r.Wait()
	state = waitForStatus(t, r, model.StatusSuccess)
	require.NotNil(t, state.Data)
	assert.True(t, state.Data.Cached)
	assert.Equal(t, []string{"q1"}, searcher.searchedQueries())

	svc.trackWG.Wait()
}
