// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package release

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/nevisa/internal/platform/apperr"
	"github.com/taibuivan/nevisa/internal/platform/constants"
	"github.com/taibuivan/nevisa/internal/platform/middleware"
	"github.com/taibuivan/nevisa/internal/platform/respond"
	"github.com/taibuivan/nevisa/internal/platform/sec"
)

// # Handler Implementation

// Handler exposes a manual trigger for the release pass.
type Handler struct {
	scheduler *Scheduler
	now       func() time.Time
}

// NewHandler constructs a new release [Handler].
func NewHandler(scheduler *Scheduler) *Handler {
	return &Handler{scheduler: scheduler, now: time.Now}
}

// RegisterRoutes attaches the admin trigger to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/admin/release/run", handler.runPass)
	})
}

/*
POST /api/v1/admin/release/run.

Description: Runs one release pass immediately. The pass is detached from the
request so a client disconnect does not abort half-processed episodes.

Response:
  - 200: Result
  - 403: ErrForbidden: Admin role required
  - 500: Pass finished with failed episodes
*/
func (handler *Handler) runPass(writer http.ResponseWriter, request *http.Request) {
	passCtx, cancel := context.WithTimeout(context.WithoutCancel(request.Context()), constants.ReleasePassTimeout)
	defer cancel()

	result, err := handler.scheduler.RunReleasePass(passCtx, handler.now().UTC())
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	respond.OK(writer, result)
}
