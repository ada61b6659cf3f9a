// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/taibuivan/nevisa/internal/platform/constants"
	"github.com/taibuivan/nevisa/internal/platform/ctxutil"
	"github.com/taibuivan/nevisa/internal/platform/middleware"
	"github.com/taibuivan/nevisa/internal/platform/sec"
)

type stubVerifier map[string]*sec.AuthClaims

func (verifier stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if claims, ok := verifier[token]; ok {
		return claims, nil
	}
	return nil, errors.New("bad token")
}

func echoReader(writer http.ResponseWriter, request *http.Request) {
	_, _ = writer.Write([]byte(ctxutil.ReaderID(request.Context())))
}

/*
TestAuthenticate covers anonymous, valid and rejected credentials.
*/
func TestAuthenticate(t *testing.T) {
	verifier := stubVerifier{"good": {UserID: "reader-1", Role: string(sec.RoleReader)}}
	handler := middleware.Authenticate(verifier)(http.HandlerFunc(echoReader))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"anonymous", "", http.StatusOK, ""},
		{"valid", "Bearer good", http.StatusOK, "reader-1"},
		{"lowercase_scheme", "bearer good", http.StatusOK, "reader-1"},
		{"invalid_token", "Bearer nope", http.StatusUnauthorized, ""},
		{"wrong_scheme", "Basic Zm9vOmJhcg==", http.StatusUnauthorized, ""},
		{"missing_token", "Bearer ", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.body, recorder.Body.String())
			}
		})
	}
}

/*
TestRequireRole verifies the admin gate used by the release trigger.
*/
func TestRequireRole(t *testing.T) {
	verifier := stubVerifier{
		"admin":  {UserID: "u-admin", Role: string(sec.RoleAdmin)},
		"reader": {UserID: "u-reader", Role: string(sec.RoleReader)},
	}
	handler := middleware.Authenticate(verifier)(middleware.RequireRole(sec.RoleAdmin)(http.HandlerFunc(echoReader)))

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"reader", "reader", http.StatusForbidden},
		{"admin", "admin", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/admin/release/run", nil)
			if tt.token != "" {
				request.Header.Set("Authorization", "Bearer "+tt.token)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

/*
TestRateLimitWith verifies the per-IP bucket.
*/
func TestRateLimitWith(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimitWith(ctx, rate.Limit(0.001), 2)(http.HandlerFunc(echoReader))

	call := func(ip string) int {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderXRealIP, ip)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2"))
}

/*
TestCORS covers the production allow-list.
*/
func TestCORS(t *testing.T) {
	handler := middleware.CORS(production{}, "https://partner.example")(http.HandlerFunc(echoReader))

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"https://nevisa.ir", true},
		{"https://app.nevisa.ir", true},
		{"https://partner.example", true},
		{"https://evilnevisa.ir", false},
		{"http://nevisa.ir", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set(constants.HeaderOrigin, tt.origin)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

type production struct{}

func (production) IsDevelopment() bool { return false }

/*
TestPanicRecovery verifies that a panicking handler yields a 500.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
