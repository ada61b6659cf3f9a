// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNow(t *testing.T) {
	now, err := parseNow("2024-01-02T03:30:00+03:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), now)

	_, err = parseNow("yesterday")
	assert.Error(t, err)

	now, err = parseNow("")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), now, time.Minute)
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, command := range rootCmd.Commands() {
		names[command.Name()] = true
	}
	assert.True(t, names["pass"])
	assert.True(t, names["daemon"])
	assert.True(t, names["migrate"])
}
