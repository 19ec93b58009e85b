// Package service orchestrates illustration resolution: cache consultation,
// sequential provider attempts, persistence, and the per-subscription state
// machine the caller observes.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/kanekanefy/qwerty-learner/internal/cache"
	"github.com/kanekanefy/qwerty-learner/internal/metrics"
	"github.com/kanekanefy/qwerty-learner/internal/model"
	"github.com/kanekanefy/qwerty-learner/internal/unsplash"
)

// maxSearchAttempts caps provider calls per resolution cycle regardless of
// how many candidate queries exist; the API is rate limited.
const maxSearchAttempts = 3

type Searcher interface {
	Search(ctx context.Context, query string, opts unsplash.SearchOptions) (*unsplash.Image, error)
	TrackDownload(ctx context.Context, downloadLocation string) error
}

type QueryBuilder interface {
	Build(word model.Word) []string
}

type AssetCache interface {
	PruneExpired(ctx context.Context)
	Get(ctx context.Context, word, source string) (model.MediaAssetRecord, bool)
	Put(ctx context.Context, rec model.MediaAssetRecord) model.MediaAssetRecord
	Delete(ctx context.Context, word, source string)
}

// Outcome is the terminal result of one resolution cycle.
type Outcome struct {
	Status model.Status
	Data   *model.IllustrationData
	Err    *model.IllustrationError
}

type ResolveRequest struct {
	Word model.Word

	// BypassCache deletes any cached record for the word and forces a
	// fresh provider lookup for this cycle only.
	BypassCache bool

	Orientation unsplash.Orientation
}

type Illustrations struct {
	queries QueryBuilder
	search  Searcher
	cache   AssetCache
	log     *slog.Logger

	trackTimeout time.Duration
	trackWG      sync.WaitGroup
}

type IllustrationsConfig struct {
	TrackTimeout time.Duration
	Log          *slog.Logger
}

func NewIllustrations(queries QueryBuilder, search Searcher, assets AssetCache, cfg IllustrationsConfig) *Illustrations {
	trackTimeout := cfg.TrackTimeout
	if trackTimeout <= 0 {
		trackTimeout = 10 * time.Second
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	return &Illustrations{
		queries:      queries,
		search:       search,
		cache:        assets,
		log:          log,
		trackTimeout: trackTimeout,
	}
}

// Resolve runs one full resolution cycle for the word. A cancelled context
// returns the context error with a zero Outcome; callers must discard it
// without surfacing anything. All other failures come back classified inside
// the Outcome.
func (s *Illustrations) Resolve(ctx context.Context, r ResolveRequest) (Outcome, error) {
	normalized := cache.Normalize(r.Word.Name)
	if normalized == "" {
		return s.settle(Outcome{Status: model.StatusIdle}), nil
	}

	queries := s.queries.Build(r.Word)
	if len(queries) == 0 {
		return s.settle(Outcome{Status: model.StatusEmpty}), nil
	}

	s.cache.PruneExpired(ctx)

	if r.BypassCache {
		s.cache.Delete(ctx, normalized, unsplash.Source)
	} else if rec, ok := s.cache.Get(ctx, normalized, unsplash.Source); ok {
		data := dataFromRecord(rec, true)
		return s.settle(Outcome{Status: model.StatusSuccess, Data: &data}), nil
	}

	attempts := min(len(queries), maxSearchAttempts)
	for i := 0; i < attempts; i++ {
		img, err := s.search.Search(ctx, queries[i], unsplash.SearchOptions{Orientation: r.Orientation})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return Outcome{}, err
			}
			return s.settle(s.classify(normalized, err)), nil
		}
		if img == nil {
			metrics.ProviderRequestsTotal.WithLabelValues("no_match").Inc()
			continue
		}
		metrics.ProviderRequestsTotal.WithLabelValues("match").Inc()

		rec := s.cache.Put(ctx, recordFromImage(normalized, img))
		s.trackDownload(img.DownloadLocation)

		data := dataFromRecord(rec, false)
		return s.settle(Outcome{Status: model.StatusSuccess, Data: &data}), nil
	}

	return s.settle(Outcome{Status: model.StatusEmpty}), nil
}

func (s *Illustrations) settle(o Outcome) Outcome {
	metrics.ResolutionsTotal.WithLabelValues(string(o.Status)).Inc()
	return o
}

// classify maps a provider failure onto the closed error code set. Provider
// errors are terminal for the cycle: a failure on one query is assumed to
// affect the remaining queries equally.
func (s *Illustrations) classify(word string, err error) Outcome {
	metrics.ProviderRequestsTotal.WithLabelValues("error").Inc()

	code := model.ErrCodeUnknown
	var reqErr *unsplash.RequestError
	switch {
	case errors.Is(err, unsplash.ErrMissingKey):
		code = model.ErrCodeMissingKey
	case errors.As(err, &reqErr):
		code = model.ErrCodeRequestFailed
	}

	s.log.Error("illustration search failed", "word", word, "code", code, "error", err)
	return Outcome{
		Status: model.StatusError,
		Err:    &model.IllustrationError{Code: code, Message: err.Error()},
	}
}

// trackDownload notifies the provider that the photo was used, as its terms
// require. The ping runs detached from the cycle context so a word change
// cannot cancel attribution reporting.
func (s *Illustrations) trackDownload(downloadLocation string) {
	s.trackWG.Add(1)
	go func() {
		defer s.trackWG.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.trackTimeout)
		defer cancel()

		if err := s.search.TrackDownload(ctx, downloadLocation); err != nil {
			s.log.Warn("track unsplash download", "error", err)
		}
	}()
}

func recordFromImage(word string, img *unsplash.Image) model.MediaAssetRecord {
	return model.MediaAssetRecord{
		Word:                 word,
		Source:               unsplash.Source,
		Query:                img.Query,
		ImageURL:             img.ImageURL,
		ThumbURL:             img.ThumbURL,
		Color:                img.Color,
		AltDescription:       img.AltDescription,
		Description:          img.Description,
		PhotographerName:     img.PhotographerName,
		PhotographerUsername: img.PhotographerUsername,
		PhotographerURL:      img.PhotographerURL,
		DownloadLocation:     img.DownloadLocation,
	}
}

func dataFromRecord(rec model.MediaAssetRecord, cached bool) model.IllustrationData {
	return model.IllustrationData{
		Source:      rec.Source,
		URL:         rec.ImageURL,
		ThumbURL:    rec.ThumbURL,
		Color:       rec.Color,
		Alt:         rec.AltDescription,
		Description: rec.Description,
		Photographer: model.Photographer{
			Name:     rec.PhotographerName,
			Username: rec.PhotographerUsername,
			URL:      rec.PhotographerURL,
		},
		DownloadLocation: rec.DownloadLocation,
		Query:            rec.Query,
		Cached:           cached,
	}
}
