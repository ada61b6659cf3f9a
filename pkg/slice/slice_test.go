// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/nevisa/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Nil(t, slice.Map[string, int](nil, func(s string) int { return len(s) }))
	assert.Equal(t, []int{3, 5}, slice.Map([]string{"one", "three"}, func(s string) int { return len(s) }))
}

func TestFilter(t *testing.T) {
	input := []string{"released", "scheduled", "read"}
	result := slice.Filter(input, func(s string) bool { return strings.HasPrefix(s, "re") })

	assert.Equal(t, []string{"released", "read"}, result)

	result[0] = "changed"
	assert.Equal(t, "released", input[0])
	assert.Nil(t, slice.Filter(nil, func(string) bool { return true }))
}
