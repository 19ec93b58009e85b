package model

// Word is the slice of a vocabulary entry the illustration pipeline consumes.
// Translations feed the query disambiguation rules and may be empty.
type Word struct {
	Name  string
	Trans []string
}

// MediaAssetRecord is a persisted illustration lookup result. At most one
// non-expired record exists per (Word, Source) pair; ID is assigned by the
// store on first insert and preserved across upserts.
type MediaAssetRecord struct {
	ID                   string
	Word                 string
	Source               string
	Query                string
	ImageURL             string
	ThumbURL             string
	Color                *string
	AltDescription       *string
	Description          *string
	PhotographerName     string
	PhotographerUsername *string
	PhotographerURL      string
	DownloadLocation     string
	FetchedAt            int64
	ExpiresAt            int64
}

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusEmpty   Status = "empty"
	StatusError   Status = "error"
)

type ErrorCode string

const (
	ErrCodeMissingKey    ErrorCode = "missing-key"
	ErrCodeRequestFailed ErrorCode = "request-failed"
	ErrCodeUnknown       ErrorCode = "unknown"
)

type IllustrationError struct {
	Code    ErrorCode
	Message string
}

type Photographer struct {
	Name     string
	Username *string
	URL      string
}

// IllustrationData is the caller-facing view of a resolved illustration.
type IllustrationData struct {
	Source           string
	URL              string
	ThumbURL         string
	Color            *string
	Alt              *string
	Description      *string
	Photographer     Photographer
	DownloadLocation string
	Query            string
	Cached           bool
}

// IllustrationState is the full externally visible state of one resolution
// subscription. Data and Error are mutually exclusive.
type IllustrationState struct {
	Status Status
	Data   *IllustrationData
	Error  *IllustrationError
}
