package store

import (
	"context"
	"errors"

	"github.com/kanekanefy/qwerty-learner/internal/model"
)

var ErrNotFound = errors.New("record not found")

type GetAssetRequest struct {
	Word   string
	Source string
}

type DeleteAssetRequest struct {
	Word   string
	Source string
}

// MediaStore persists illustration lookup results keyed by (word, source).
type MediaStore interface {
	// GetAsset returns the record for the compound key, or ErrNotFound.
	GetAsset(ctx context.Context, r GetAssetRequest) (model.MediaAssetRecord, error)

	// UpsertAsset inserts or replaces the record for its (word, source)
	// key. A new record gets a store-assigned ID; an existing key keeps
	// its ID while all other fields are replaced.
	UpsertAsset(ctx context.Context, rec model.MediaAssetRecord) (model.MediaAssetRecord, error)

	// DeleteAsset removes the record for the compound key, if any.
	DeleteAsset(ctx context.Context, r DeleteAssetRequest) error

	// DeleteExpired removes every record with ExpiresAt <= before and
	// reports how many were removed.
	DeleteExpired(ctx context.Context, before int64) (int64, error)

	Close() error
}
