// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package series provides the HTTP interface for reader progress on a series.

# Routing Strategy

  - Public (v1): Every endpoint works anonymously; a bearer token adds the reader's progress.

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package series

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/nevisa/internal/platform/request"
	"github.com/taibuivan/nevisa/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for series progress views.
type Handler struct {
	service *Service
}

// NewHandler constructs a new series [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the series read endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/series/{slug}/progress", handler.GetProgress)
	api.Get("/series/{slug}/episodes", handler.ListEpisodes)
	api.Get("/series/{slug}/next", handler.NextEpisode)
}

/*
GET /api/v1/series/{slug}/progress.

Description: Returns the series header with the reader's completion summary.

Response:
  - 200: ProgressReport
  - 404: ErrNotFound: Series missing or not published
*/
func (handler *Handler) GetProgress(writer http.ResponseWriter, request *http.Request) {
	report, err := handler.service.GetSeriesProgress(request.Context(), requestutil.Param(request, "slug"), readerID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}

/*
GET /api/v1/series/{slug}/episodes.

Response:
  - 200: []EpisodeView
  - 404: ErrNotFound: Series missing or not published
*/
func (handler *Handler) ListEpisodes(writer http.ResponseWriter, request *http.Request) {
	views, err := handler.service.ListEpisodes(request.Context(), requestutil.Param(request, "slug"), readerID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, views)
}

/*
GET /api/v1/series/{slug}/next.

Description: Returns the episode the reader should continue with, or null.
*/
func (handler *Handler) NextEpisode(writer http.ResponseWriter, request *http.Request) {
	episode, err := handler.service.NextEpisode(request.Context(), requestutil.Param(request, "slug"), readerID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, episode)
}

// readerID returns the signed-in user's ID, or empty for anonymous requests.
func readerID(request *http.Request) string {
	if claims := requestutil.Claims(request); claims != nil {
		return claims.UserID
	}
	return ""
}
