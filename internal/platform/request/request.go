// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil extracts path parameters, bodies and identity from HTTP requests.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/nevisa/internal/platform/apperr"
	"github.com/taibuivan/nevisa/internal/platform/ctxutil"
	"github.com/taibuivan/nevisa/internal/platform/sec"
	"github.com/taibuivan/nevisa/internal/platform/validate"
)

// maxBodyBytes bounds JSON request bodies; every body this API accepts is tiny.
const maxBodyBytes = 64 << 10

/*
DecodeJSON decodes a required JSON body into target.

Returns:
  - error: validate.ErrInvalidJSON for a missing, oversized or malformed body
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := decode(request, target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
DecodeOptionalJSON decodes a JSON body when one is present.

Description: An empty body leaves target untouched and is not an error.
*/
func DecodeOptionalJSON(request *http.Request, target any) error {
	if request.Body == nil || request.Body == http.NoBody {
		return nil
	}
	if err := decode(request, target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return validate.ErrInvalidJSON
	}
	return nil
}

func decode(request *http.Request, target any) error {
	if request.Body == nil {
		return io.EOF
	}
	return json.NewDecoder(io.LimitReader(request.Body, maxBodyBytes)).Decode(target)
}

// ID retrieves a named UUID path parameter.
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Param retrieves a named path parameter.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Claims returns the verified token claims, or nil for anonymous requests.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// ReaderID returns the signed-in reader's id, or "" for anonymous requests.
func ReaderID(request *http.Request) string {
	return ctxutil.ReaderID(request.Context())
}

/*
RequiredUserID returns the signed-in reader's id.

Returns:
  - error: apperr.Unauthorized for anonymous requests
*/
func RequiredUserID(request *http.Request) (string, error) {
	userID := ctxutil.ReaderID(request.Context())
	if userID == "" {
		return "", apperr.Unauthorized("Authentication required")
	}
	return userID, nil
}
