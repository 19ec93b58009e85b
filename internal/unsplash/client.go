// Package unsplash is a minimal client for the Unsplash photo search API,
// tuned for single-result lookups against a rate-limited quota.
package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Source tags cache records produced by this provider.
const Source = "unsplash"

const defaultEndpoint = "https://api.unsplash.com/search/photos"

// ErrMissingKey is returned before any network attempt when no access key is
// configured. It is terminal for a resolution cycle.
var ErrMissingKey = errors.New("unsplash access key is not configured")

// RequestError reports a non-success HTTP status from the provider. The
// status code is retained for diagnostics.
type RequestError struct {
	Status int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("unsplash request failed with status %d", e.Status)
}

type Orientation string

const (
	OrientationLandscape Orientation = "landscape"
	OrientationPortrait  Orientation = "portrait"
	OrientationSquarish  Orientation = "squarish"
)

type ContentFilter string

const (
	ContentFilterLow  ContentFilter = "low"
	ContentFilterHigh ContentFilter = "high"
)

// Image is the normalized first search result, including the attribution
// fields the provider's usage terms require.
type Image struct {
	ID                   string
	Description          *string
	AltDescription       *string
	Color                *string
	ImageURL             string
	ThumbURL             string
	Width                int
	Height               int
	PhotographerName     string
	PhotographerUsername *string
	PhotographerURL      string
	DownloadLocation     string
	Query                string
}

type SearchOptions struct {
	Orientation   Orientation
	ContentFilter ContentFilter
}

type Config struct {
	AccessKey string
	Endpoint  string
	HTTP      *http.Client
	Log       *slog.Logger
}

type Client struct {
	accessKey string
	endpoint  string
	http      *http.Client
	log       *slog.Logger
}

func NewClient(cfg Config) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		accessKey: cfg.AccessKey,
		endpoint:  endpoint,
		http:      httpClient,
		log:       log,
	}
}

type searchResponse struct {
	Results []searchPhoto `json:"results"`
}

type searchPhoto struct {
	ID             string  `json:"id"`
	Description    *string `json:"description"`
	AltDescription *string `json:"alt_description"`
	Color          *string `json:"color"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	URLs           struct {
		Regular string `json:"regular"`
		Small   string `json:"small"`
		Thumb   string `json:"thumb"`
	} `json:"urls"`
	Links struct {
		DownloadLocation string `json:"download_location"`
	} `json:"links"`
	User struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Links    struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"user"`
}

// Search runs one search call and returns the first result, or nil when the
// provider reports no matches for the query. A cancelled context surfaces as
// a wrapped context error, distinguishable from provider failures.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (*Image, error) {
	if c.accessKey == "" {
		return nil, ErrMissingKey
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	orientation := opts.Orientation
	if orientation == "" {
		orientation = OrientationLandscape
	}
	filter := opts.ContentFilter
	if filter == "" {
		filter = ContentFilterHigh
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "1")
	params.Set("orientation", string(orientation))
	params.Set("content_filter", string(filter))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Accept-Version", "v1")
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{Status: resp.StatusCode}
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	if len(payload.Results) == 0 {
		return nil, nil
	}

	photo := payload.Results[0]
	thumb := photo.URLs.Small
	if thumb == "" {
		thumb = photo.URLs.Thumb
	}

	var username *string
	if photo.User.Username != "" {
		username = &photo.User.Username
	}

	return &Image{
		ID:                   photo.ID,
		Description:          photo.Description,
		AltDescription:       photo.AltDescription,
		Color:                photo.Color,
		ImageURL:             photo.URLs.Regular,
		ThumbURL:             thumb,
		Width:                photo.Width,
		Height:               photo.Height,
		PhotographerName:     photo.User.Name,
		PhotographerUsername: username,
		PhotographerURL:      photo.User.Links.HTML,
		DownloadLocation:     photo.Links.DownloadLocation,
		Query:                query,
	}, nil
}

// TrackDownload pings the download-location URL the provider returned for a
// photo. Unsplash requires this for attribution; the outcome never affects
// illustration resolution.
func (c *Client) TrackDownload(ctx context.Context, downloadLocation string) error {
	if c.accessKey == "" {
		return ErrMissingKey
	}
	if strings.TrimSpace(downloadLocation) == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadLocation, nil)
	if err != nil {
		return fmt.Errorf("create download tracking request: %w", err)
	}
	req.Header.Set("Accept-Version", "v1")
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("track download: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &RequestError{Status: resp.StatusCode}
	}
	return nil
}
