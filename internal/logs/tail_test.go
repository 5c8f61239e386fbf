package logs_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"litshelf/internal/logs"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "litshelf.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func appendLog(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Errorf("open append: %v", err)
		return
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Errorf("append log: %v", err)
	}
}

func TestTailLastLines(t *testing.T) {
	path := writeLog(t, "a\nb\nc\n")

	result, err := logs.Tail(t.Context(), path, logs.Options{Offset: -1, Limit: 2})
	if err != nil {
		t.Fatalf("tail returned error: %v", err)
	}
	if len(result.Lines) != 2 || result.Lines[0] != "b" || result.Lines[1] != "c" {
		t.Fatalf("unexpected lines: %#v", result.Lines)
	}
	if result.Offset != 6 {
		t.Fatalf("expected offset at end of file, got %d", result.Offset)
	}
}

func TestTailFewerLinesThanLimit(t *testing.T) {
	path := writeLog(t, "only\n")

	result, err := logs.Tail(t.Context(), path, logs.Options{Offset: -1, Limit: 10})
	if err != nil {
		t.Fatalf("tail returned error: %v", err)
	}
	if len(result.Lines) != 1 || result.Lines[0] != "only" {
		t.Fatalf("unexpected lines: %#v", result.Lines)
	}
}

func TestTailFromOffsetKeepsPartialLine(t *testing.T) {
	path := writeLog(t, "one\r\ntwo\npart")

	result, err := logs.Tail(t.Context(), path, logs.Options{Offset: 0})
	if err != nil {
		t.Fatalf("tail returned error: %v", err)
	}
	if len(result.Lines) != 2 || result.Lines[0] != "one" || result.Lines[1] != "two" {
		t.Fatalf("unexpected lines: %#v", result.Lines)
	}
	if result.Offset != int64(len("one\r\ntwo\n")) {
		t.Fatalf("unexpected offset %d", result.Offset)
	}
}

func TestTailMissingFile(t *testing.T) {
	result, err := logs.Tail(t.Context(), filepath.Join(t.TempDir(), "none.log"), logs.Options{Offset: -1, Limit: 5})
	if err != nil {
		t.Fatalf("tail returned error: %v", err)
	}
	if len(result.Lines) != 0 || result.Offset != 0 {
		t.Fatalf("expected empty result, got %#v", result)
	}
}

func TestTailRejectsDirectory(t *testing.T) {
	if _, err := logs.Tail(t.Context(), t.TempDir(), logs.Options{Offset: -1, Limit: 5}); err == nil {
		t.Fatal("expected error for directory")
	}
}

func TestTailWaitsForNewLines(t *testing.T) {
	path := writeLog(t, "start\n")

	initial, err := logs.Tail(t.Context(), path, logs.Options{Offset: -1, Limit: 1})
	if err != nil {
		t.Fatalf("initial tail: %v", err)
	}

	var wg sync.WaitGroup
	wg.Go(func() {
		time.Sleep(300 * time.Millisecond)
		appendLog(t, path, "later\n")
	})

	result, err := logs.Tail(t.Context(), path, logs.Options{Offset: initial.Offset, Wait: 5 * time.Second})
	wg.Wait()
	if err != nil {
		t.Fatalf("follow tail error: %v", err)
	}
	if len(result.Lines) != 1 || result.Lines[0] != "later" {
		t.Fatalf("unexpected follow lines: %#v", result.Lines)
	}
}

func TestFollowStopsOnCancel(t *testing.T) {
	path := writeLog(t, "first\nsecond\n")
	ctx, cancel := context.WithCancel(t.Context())

	var (
		mu    sync.Mutex
		lines []string
	)
	done := make(chan bool, 1)
	go func() {
		printed, err := logs.Follow(ctx, path, 1, true, func(line string) {
			mu.Lock()
			lines = append(lines, line)
			mu.Unlock()
		})
		if err != nil {
			t.Errorf("follow error: %v", err)
		}
		done <- printed
	}()

	time.Sleep(300 * time.Millisecond)
	appendLog(t, path, "third\n")
	time.Sleep(600 * time.Millisecond)
	cancel()

	select {
	case printed := <-done:
		if !printed {
			t.Fatal("expected lines to be printed")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("follow did not stop after cancel")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(lines) != 2 || lines[0] != "second" || lines[1] != "third" {
		t.Fatalf("unexpected lines: %#v", lines)
	}
}

func TestFollowWithoutFollowReturnsAll(t *testing.T) {
	path := writeLog(t, "a\nb\n")
	var lines []string
	printed, err := logs.Follow(t.Context(), path, 0, false, func(line string) { lines = append(lines, line) })
	if err != nil {
		t.Fatalf("follow error: %v", err)
	}
	if !printed || len(lines) != 2 {
		t.Fatalf("unexpected lines: %#v", lines)
	}
}
