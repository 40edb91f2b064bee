// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
)

// logRecordMsg delivers a slog record to the model for display in the
// status line.
type logRecordMsg struct {
	// Summary is the one-line "message (key=value, ...)" form.
	Summary string
	Level   slog.Level
}

// logRecordFadeMsg clears the status line message with the given
// sequence number, unless a newer record replaced it.
type logRecordFadeMsg struct {
	sequence int
}

// logRecordFadeDelay is how long log messages stay visible before the
// status line falls back to key help.
const logRecordFadeDelay = 5 * time.Second

// StatusLogHandler is a slog.Handler that routes records at or above
// its level into the viewer's status line. Records are delivered
// through a Relay, so logging from inside Update is safe; records
// logged before the relay has a program are dropped.
//
// Handlers derived via WithAttrs/WithGroup share the relay.
type StatusLogHandler struct {
	level  slog.Level
	relay  *Relay
	attrs  []slog.Attr
	groups []string
}

// NewStatusLogHandler creates a handler delivering records at or above
// level through relay.
func NewStatusLogHandler(level slog.Level, relay *Relay) *StatusLogHandler {
	return &StatusLogHandler{level: level, relay: relay}
}

// Enabled reports whether the handler is interested in records at the
// given level.
func (handler *StatusLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record and posts it to the program.
func (handler *StatusLogHandler) Handle(_ context.Context, record slog.Record) error {
	handler.relay.Send(logRecordMsg{
		Summary: handler.summarize(record),
		Level:   record.Level,
	})
	return nil
}

// WithAttrs returns a handler with attrs appended, qualified by the
// current group.
func (handler *StatusLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := handler.clone()
	for _, attr := range attrs {
		attr.Key = handler.qualify(attr.Key)
		derived.attrs = append(derived.attrs, attr)
	}
	return derived
}

// WithGroup returns a handler that prefixes later attribute keys with
// name.
func (handler *StatusLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	derived := handler.clone()
	derived.groups = append(derived.groups, name)
	return derived
}

func (handler *StatusLogHandler) clone() *StatusLogHandler {
	return &StatusLogHandler{
		level:  handler.level,
		relay:  handler.relay,
		attrs:  slices.Clone(handler.attrs),
		groups: slices.Clone(handler.groups),
	}
}

func (handler *StatusLogHandler) qualify(key string) string {
	if len(handler.groups) == 0 {
		return key
	}
	return strings.Join(handler.groups, ".") + "." + key
}

// summarize builds "message (key=value, ...)", handler-level attrs
// first.
func (handler *StatusLogHandler) summarize(record slog.Record) string {
	parts := make([]string, 0, len(handler.attrs)+record.NumAttrs())
	for _, attr := range handler.attrs {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s=%s", handler.qualify(attr.Key), attr.Value))
		return true
	})
	if len(parts) == 0 {
		return record.Message
	}
	return record.Message + " (" + strings.Join(parts, ", ") + ")"
}
