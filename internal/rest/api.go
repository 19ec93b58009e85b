package rest

import (
	"context"
	"net/http"

	"github.com/kanekanefy/qwerty-learner/internal/httpx"
	"github.com/kanekanefy/qwerty-learner/internal/model"
	"github.com/kanekanefy/qwerty-learner/internal/serr"
	"github.com/kanekanefy/qwerty-learner/internal/service"
)

type illustrationService interface {
	Resolve(ctx context.Context, r service.ResolveRequest) (service.Outcome, error)
}

type syllableSplitter interface {
	Split(word string) []string
}

type API struct {
	srv       illustrationService
	syllables syllableSplitter
	mux       http.ServeMux
}

func NewAPI(srv illustrationService, syllables syllableSplitter) *API {
	api := &API{
		srv:       srv,
		syllables: syllables,
		mux:       *http.NewServeMux(),
	}

	api.mount()
	return api
}

func (api *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	api.mux.ServeHTTP(w, r)
}

func (api *API) mount() {
	api.mux.HandleFunc("GET /api/v1/illustrations/{word}", api.handleResolveIllustration)
	api.mux.HandleFunc("GET /api/v1/syllables/{word}", api.handleSplitSyllables)
}

type photographerResponse struct {
	Name     string  `json:"name"`
	Username *string `json:"username,omitempty"`
	URL      string  `json:"url"`
}

type illustrationDataResponse struct {
	Source           string               `json:"source"`
	URL              string               `json:"url"`
	ThumbURL         string               `json:"thumb_url"`
	Color            *string              `json:"color,omitempty"`
	Alt              *string              `json:"alt,omitempty"`
	Description      *string              `json:"description,omitempty"`
	Photographer     photographerResponse `json:"photographer"`
	DownloadLocation string               `json:"download_location"`
	Query            string               `json:"query"`
	Cached           bool                 `json:"cached"`
}

type illustrationErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type resolveIllustrationResponse struct {
	Status string                     `json:"status"`
	Data   *illustrationDataResponse  `json:"data,omitempty"`
	Error  *illustrationErrorResponse `json:"error,omitempty"`
}

func (api *API) handleResolveIllustration(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	if word == "" {
		httpx.HandleErr(w, r, serr.NewServiceError(nil, http.StatusBadRequest, "missing word parameter"))
		return
	}

	q := r.URL.Query()
	outcome, err := api.srv.Resolve(r.Context(), service.ResolveRequest{
		Word: model.Word{
			Name:  word,
			Trans: q["trans"],
		},
		BypassCache: q.Get("refresh") == "true",
	})
	if err != nil {
		// Context errors only: the client went away, nothing to write.
		return
	}

	err = httpx.WriteJSON(w, http.StatusOK, resolveResponseFromOutcome(outcome))
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}
}

func resolveResponseFromOutcome(o service.Outcome) resolveIllustrationResponse {
	resp := resolveIllustrationResponse{Status: string(o.Status)}
	if o.Data != nil {
		resp.Data = &illustrationDataResponse{
			Source:           o.Data.Source,
			URL:              o.Data.URL,
			ThumbURL:         o.Data.ThumbURL,
			Color:            o.Data.Color,
			Alt:              o.Data.Alt,
			Description:      o.Data.Description,
			Photographer:     photographerResponse(o.Data.Photographer),
			DownloadLocation: o.Data.DownloadLocation,
			Query:            o.Data.Query,
			Cached:           o.Data.Cached,
		}
	}
	if o.Err != nil {
		resp.Error = &illustrationErrorResponse{
			Code:    string(o.Err.Code),
			Message: o.Err.Message,
		}
	}

	return resp
}

type splitSyllablesResponse struct {
	Word      string   `json:"word"`
	Syllables []string `json:"syllables"`
}

func (api *API) handleSplitSyllables(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	if word == "" {
		httpx.HandleErr(w, r, serr.NewServiceError(nil, http.StatusBadRequest, "missing word parameter"))
		return
	}

	err := httpx.WriteJSON(w, http.StatusOK, splitSyllablesResponse{
		Word:      word,
		Syllables: api.syllables.Split(word),
	})
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}
}
