// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package follow provides the HTTP interface for following series.

# Routing Strategy

  - Authenticated (v1): Every endpoint acts on the signed-in reader's own follows.
*/
package follow

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/nevisa/internal/platform/middleware"
	requestutil "github.com/taibuivan/nevisa/internal/platform/request"
	"github.com/taibuivan/nevisa/internal/platform/respond"
	"github.com/taibuivan/nevisa/internal/platform/validate"
	"github.com/taibuivan/nevisa/pkg/pagination"
)

// FieldNotifyByEmail is the JSON name of the email preference.
const FieldNotifyByEmail = "notify_by_email"

// # Handler Implementation

// Handler implements the HTTP layer for the follow registry.
type Handler struct {
	service *Service
}

// NewHandler constructs a new follow [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the follow endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Group(func(user chi.Router) {
		user.Use(middleware.RequireAuth)
		user.Post("/follows/{seriesID}", handler.followSeries)
		user.Patch("/follows/{seriesID}", handler.updatePreference)
		user.Delete("/follows/{seriesID}", handler.unfollowSeries)
		user.Get("/me/follows", handler.listFollowing)
	})
}

// followRequest is the body of POST /follows/{seriesID}; the body itself is optional.
type followRequest struct {
	NotifyByEmail *bool `json:"notify_by_email"`
}

// preferenceRequest is the body of PATCH /follows/{seriesID}.
type preferenceRequest struct {
	NotifyByEmail *bool `json:"notify_by_email"`
}

/*
POST /api/v1/follows/{seriesID}.

Description: Follows a series. Repeating the call is harmless.

Request (Body, optional):
  - { "notify_by_email": bool }

Response:
  - 201: Follow
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Series not found
*/
func (handler *Handler) followSeries(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input followRequest
	if err := requestutil.DecodeOptionalJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	follow, err := handler.service.Follow(request.Context(), requestutil.ID(request, "seriesID"), userID, input.NotifyByEmail)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, follow)
}

/*
PATCH /api/v1/follows/{seriesID}.

Request (Body):
  - { "notify_by_email": bool }

Response:
  - 200: Follow
  - 400: Validation: Missing preference
  - 404: ErrNotFound: Not following this series
*/
func (handler *Handler) updatePreference(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input preferenceRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.NotifyByEmail == nil {
		respond.Error(writer, request, validate.RequiredError(FieldNotifyByEmail, "This field is required"))
		return
	}

	follow, err := handler.service.SetNotificationPreference(request.Context(), requestutil.ID(request, "seriesID"), userID, *input.NotifyByEmail)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, follow)
}

/*
DELETE /api/v1/follows/{seriesID}.

Response:
  - 204: No Content (also when the reader did not follow the series)
*/
func (handler *Handler) unfollowSeries(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Unfollow(request.Context(), requestutil.ID(request, "seriesID"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /api/v1/me/follows.

Request:
  - page: int
  - limit: int

Response:
  - 200: Paginated []FollowedSeries
*/
func (handler *Handler) listFollowing(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	items, total, err := handler.service.ListFollowing(request.Context(), userID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(params.Page, params.Limit, total))
}
