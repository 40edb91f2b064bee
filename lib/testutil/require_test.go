// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"testing"
	"time"
)

// fatalRecorder captures Fatalf instead of stopping the test.
type fatalRecorder struct {
	message string
}

func (r *fatalRecorder) Helper() {}

func (r *fatalRecorder) Fatalf(format string, args ...any) {
	r.message = fmt.Sprintf(format, args...)
	panic(r)
}

func recoverFatal(r *fatalRecorder) {
	if recovered := recover(); recovered != nil && recovered != r {
		panic(recovered)
	}
}

func TestRequireReceive(t *testing.T) {
	ch := make(chan int, 1)
	ch <- 7
	if got := RequireReceive(t, ch, time.Second, "buffered value"); got != 7 {
		t.Errorf("RequireReceive = %d, want 7", got)
	}
}

func TestRequireReceiveTimeout(t *testing.T) {
	recorder := &fatalRecorder{}
	func() {
		defer recoverFatal(recorder)
		RequireReceive(recorder, make(chan int), time.Millisecond, "waiting for %s", "rebuild")
	}()
	want := "timed out after 1ms: waiting for rebuild"
	if recorder.message != want {
		t.Errorf("message = %q, want %q", recorder.message, want)
	}
}

func TestRequireReceiveClosed(t *testing.T) {
	recorder := &fatalRecorder{}
	ch := make(chan string)
	close(ch)
	func() {
		defer recoverFatal(recorder)
		RequireReceive(recorder, ch, time.Second)
	}()
	want := "channel closed without sending a value: (no message)"
	if recorder.message != want {
		t.Errorf("message = %q, want %q", recorder.message, want)
	}
}
