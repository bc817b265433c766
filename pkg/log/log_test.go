// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withCapture(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	orig := Get()
	Set(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level})))
	t.Cleanup(func() { Set(orig) })
	return buf
}

func TestInfo(t *testing.T) {
	buf := withCapture(t, slog.LevelInfo)
	Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestInfof(t *testing.T) {
	buf := withCapture(t, slog.LevelInfo)
	Infof("hello %s", "world")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello world", entry["msg"])
}

func TestInfow(t *testing.T) {
	buf := withCapture(t, slog.LevelInfo)
	Infow("hello", "key", "value")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "value", entry["key"])
}

func TestDebug_FilteredByLevel(t *testing.T) {
	buf := withCapture(t, slog.LevelInfo)
	Debug("should not appear")
	assert.Empty(t, buf.Bytes())
}

func TestSetAndGet(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	orig := Get()
	defer Set(orig)

	Set(custom)
	assert.Equal(t, custom, Get())
}
