// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClockNow(t *testing.T) {
	clock := Fake(epoch)
	if got := clock.Now(); !got.Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", got, epoch)
	}
	clock.Advance(16 * time.Millisecond)
	want := epoch.Add(16 * time.Millisecond)
	if got := clock.Now(); !got.Equal(want) {
		t.Fatalf("Now() after Advance = %v, want %v", got, want)
	}
}

func TestFakeClockAfterFuncFiresAtDeadline(t *testing.T) {
	clock := Fake(epoch)
	fired := 0
	clock.AfterFunc(10*time.Millisecond, func() { fired++ })

	clock.Advance(9 * time.Millisecond)
	if fired != 0 {
		t.Fatal("callback fired before deadline")
	}
	clock.Advance(1 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("fired = %d after deadline, want 1", fired)
	}
	clock.Advance(time.Second)
	if fired != 1 {
		t.Fatalf("one-shot callback fired %d times", fired)
	}
}

func TestFakeClockAfterFuncZeroRunsSynchronously(t *testing.T) {
	clock := Fake(epoch)
	fired := false
	timer := clock.AfterFunc(0, func() { fired = true })
	if !fired {
		t.Fatal("AfterFunc(0) should run before returning")
	}
	if timer.Stop() {
		t.Error("Stop on an already-run timer should return false")
	}
}

func TestFakeClockStopPreventsFiring(t *testing.T) {
	clock := Fake(epoch)
	fired := false
	timer := clock.AfterFunc(5*time.Millisecond, func() { fired = true })

	if !timer.Stop() {
		t.Fatal("Stop on a pending timer should return true")
	}
	if timer.Stop() {
		t.Error("second Stop should return false")
	}
	clock.Advance(time.Second)
	if fired {
		t.Fatal("stopped timer fired")
	}
	if clock.PendingCount() != 0 {
		t.Errorf("PendingCount = %d, want 0", clock.PendingCount())
	}
}

func TestFakeClockFiresInDeadlineOrder(t *testing.T) {
	clock := Fake(epoch)
	var order []string
	clock.AfterFunc(30*time.Millisecond, func() { order = append(order, "late") })
	clock.AfterFunc(10*time.Millisecond, func() { order = append(order, "early") })
	clock.AfterFunc(20*time.Millisecond, func() { order = append(order, "middle") })

	clock.Advance(time.Second)

	want := []string{"early", "middle", "late"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for index := range want {
		if order[index] != want[index] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestFakeClockCallbackCanReschedule(t *testing.T) {
	clock := Fake(epoch)
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 3 {
			clock.AfterFunc(time.Millisecond, tick)
		}
	}
	clock.AfterFunc(time.Millisecond, tick)

	clock.Advance(time.Millisecond)
	if count != 1 {
		t.Fatalf("count = %d after first frame, want 1", count)
	}
	clock.Advance(10 * time.Millisecond)
	if count != 2 {
		// The rescheduled callback's deadline is relative to the
		// advanced time, so a single Advance fires it once.
		t.Fatalf("count = %d after second advance, want 2", count)
	}
}

func TestNilTimerStop(t *testing.T) {
	var timer *Timer
	if timer.Stop() {
		t.Fatal("nil Timer Stop should return false")
	}
}
