package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/kanekanefy/qwerty-learner/internal/model"
)

const mediaAssetsSchema = `
  CREATE TABLE IF NOT EXISTS media_assets (
      id TEXT PRIMARY KEY,
      word TEXT NOT NULL,
      source TEXT NOT NULL,
      query TEXT NOT NULL,
      image_url TEXT NOT NULL,
      thumb_url TEXT NOT NULL,
      color TEXT,
      alt_description TEXT,
      description TEXT,
      photographer_name TEXT NOT NULL,
      photographer_username TEXT,
      photographer_url TEXT NOT NULL,
      download_location TEXT NOT NULL,
      fetched_at INTEGER NOT NULL,
      expires_at INTEGER NOT NULL,
      UNIQUE (word, source)
  );
  CREATE INDEX IF NOT EXISTS idx_media_assets_expires_at ON media_assets (expires_at);
`

// SQLiteStore implements MediaStore on an embedded SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if _, err := db.Exec(mediaAssetsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create media_assets schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) GetAsset(ctx context.Context, r GetAssetRequest) (model.MediaAssetRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, word, source, query, image_url, thumb_url,
		       color, alt_description, description,
		       photographer_name, photographer_username, photographer_url,
		       download_location, fetched_at, expires_at
		FROM media_assets
		WHERE word = ? AND source = ?`,
		r.Word, r.Source)

	var (
		rec                        model.MediaAssetRecord
		color, alt, desc, username sql.NullString
	)
	err := row.Scan(&rec.ID, &rec.Word, &rec.Source, &rec.Query, &rec.ImageURL, &rec.ThumbURL,
		&color, &alt, &desc,
		&rec.PhotographerName, &username, &rec.PhotographerURL,
		&rec.DownloadLocation, &rec.FetchedAt, &rec.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.MediaAssetRecord{}, ErrNotFound
	}
	if err != nil {
		return model.MediaAssetRecord{}, fmt.Errorf("select media asset: %w", err)
	}

	rec.Color = fromNullString(color)
	rec.AltDescription = fromNullString(alt)
	rec.Description = fromNullString(desc)
	rec.PhotographerUsername = fromNullString(username)
	return rec, nil
}

func (s *SQLiteStore) UpsertAsset(ctx context.Context, rec model.MediaAssetRecord) (model.MediaAssetRecord, error) {
	if rec.ID == "" {
		var existing string
		err := s.db.QueryRowContext(ctx,
			`SELECT id FROM media_assets WHERE word = ? AND source = ?`,
			rec.Word, rec.Source).Scan(&existing)
		switch {
		case err == nil:
			rec.ID = existing
		case errors.Is(err, sql.ErrNoRows):
			rec.ID = uuid.NewString()
		default:
			return model.MediaAssetRecord{}, fmt.Errorf("lookup existing media asset: %w", err)
		}
	}

	// The conflict clause deliberately leaves id untouched so the record
	// keeps its identity even when two writers race on the same key.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO media_assets (
			id, word, source, query, image_url, thumb_url,
			color, alt_description, description,
			photographer_name, photographer_username, photographer_url,
			download_location, fetched_at, expires_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (word, source) DO UPDATE SET
			query = excluded.query,
			image_url = excluded.image_url,
			thumb_url = excluded.thumb_url,
			color = excluded.color,
			alt_description = excluded.alt_description,
			description = excluded.description,
			photographer_name = excluded.photographer_name,
			photographer_username = excluded.photographer_username,
			photographer_url = excluded.photographer_url,
			download_location = excluded.download_location,
			fetched_at = excluded.fetched_at,
			expires_at = excluded.expires_at`,
		rec.ID, rec.Word, rec.Source, rec.Query, rec.ImageURL, rec.ThumbURL,
		toNullString(rec.Color), toNullString(rec.AltDescription), toNullString(rec.Description),
		rec.PhotographerName, toNullString(rec.PhotographerUsername), rec.PhotographerURL,
		rec.DownloadLocation, rec.FetchedAt, rec.ExpiresAt)
	if err != nil {
		return model.MediaAssetRecord{}, fmt.Errorf("upsert media asset: %w", err)
	}

	// Re-read the id in case the insert lost a race to another writer.
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM media_assets WHERE word = ? AND source = ?`,
		rec.Word, rec.Source).Scan(&rec.ID)
	if err != nil {
		return model.MediaAssetRecord{}, fmt.Errorf("read back media asset id: %w", err)
	}

	return rec, nil
}

func (s *SQLiteStore) DeleteAsset(ctx context.Context, r DeleteAssetRequest) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM media_assets WHERE word = ? AND source = ?`,
		r.Word, r.Source)
	if err != nil {
		return fmt.Errorf("delete media asset: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteExpired(ctx context.Context, before int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM media_assets WHERE expires_at <= ?`, before)
	if err != nil {
		return 0, fmt.Errorf("delete expired media assets: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted media assets: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
