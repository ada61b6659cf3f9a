// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/nevisa/internal/platform/apperr"
	"github.com/taibuivan/nevisa/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field rule.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "shahnameh", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("slug", tt.value)

			if !tt.hasError {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Equal(t, "slug", ae.Details[0].Field)
		})
	}
}

/*
TestValidator_Slug covers Latin and Persian slugs.
*/
func TestValidator_Slug(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"latin", "one-thousand-and-one-nights", true},
		{"persian", "شاهنامه-فردوسی", true},
		{"persian_digits", "فصل-۱۲", true},
		{"uppercase", "Shahnameh", false},
		{"double_hyphen", "a--b", false},
		{"trailing_hyphen", "shahnameh-", false},
		{"space", "shah nameh", false},
		{"path_traversal", "../admin", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Slug("slug", tt.value)
			assert.Equal(t, !tt.valid, v.HasErrors())
		})
	}
}

/*
TestValidator_UUID accepts canonical UUIDs only.
*/
func TestValidator_UUID(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"v7", "0190f1d2-7a3b-7c4d-8e5f-000000000001", true},
		{"uppercase", "0190F1D2-7A3B-7C4D-8E5F-000000000001", true},
		{"urn_prefix", "urn:uuid:0190f1d2-7a3b-7c4d-8e5f-000000000001", false},
		{"braced", "{0190f1d2-7a3b-7c4d-8e5f-000000000001}", false},
		{"garbage", "not-a-uuid", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.UUID("series_id", tt.value)
			assert.Equal(t, !tt.valid, v.HasErrors())
		})
	}
}

/*
TestValidator_Chain verifies that failures accumulate in order.
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}
	v.Required("slug", "").
		MaxLen("title", "ابر و باد و مه و خورشید و فلک", 5).
		Custom("order", true, "Must be positive")

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 3)
	assert.Equal(t, []string{"slug", "title", "order"}, []string{ae.Details[0].Field, ae.Details[1].Field, ae.Details[2].Field})
}
