package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

const (
	pollInterval = 250 * time.Millisecond
	maxLineBytes = 1024 * 1024
)

// Options controls a single Tail call. A negative Offset reads the last Limit
// lines; otherwise reading starts at Offset. A positive Wait keeps polling
// until at least one new line arrives or the wait expires.
type Options struct {
	Offset int64
	Limit  int
	Wait   time.Duration
}

// Result carries the lines read and the offset to resume from.
type Result struct {
	Lines  []string
	Offset int64
}

// Tail reads lines from the log file at path. A missing file yields no lines.
func Tail(ctx context.Context, path string, opts Options) (Result, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return Result{}, nil
	}
	if err != nil {
		return Result{Offset: opts.Offset}, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return Result{Offset: opts.Offset}, fmt.Errorf("log path %q is a directory", path)
	}

	var res Result
	if opts.Offset < 0 {
		res, err = lastLines(path, opts.Limit)
	} else {
		offset := opts.Offset
		if offset > info.Size() {
			// truncated or rotated
			offset = 0
		}
		res, err = linesFrom(path, offset)
	}
	if err != nil || len(res.Lines) > 0 || opts.Wait <= 0 {
		return res, err
	}
	return waitForLines(ctx, path, res.Offset, opts.Wait)
}

// Follow prints the last n lines through emit and, when follow is set, keeps
// emitting new lines until ctx is cancelled. n <= 0 starts at the beginning of
// the file. It reports whether any line was emitted.
func Follow(ctx context.Context, path string, n int, follow bool, emit func(string)) (bool, error) {
	opts := Options{Offset: -1, Limit: n}
	if n <= 0 {
		opts = Options{Offset: 0}
	}
	printed := false
	for {
		res, err := Tail(ctx, path, opts)
		if err != nil {
			if ctx.Err() != nil {
				return printed, nil
			}
			return printed, err
		}
		for _, line := range res.Lines {
			emit(line)
			printed = true
		}
		if !follow {
			return printed, nil
		}
		if ctx.Err() != nil {
			return printed, nil
		}
		opts = Options{Offset: res.Offset, Wait: time.Second}
	}
}

func lastLines(path string, limit int) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if limit <= 0 {
		end, err := file.Seek(0, io.SeekEnd)
		if err != nil {
			return Result{}, fmt.Errorf("seek log file: %w", err)
		}
		return Result{Offset: end}, nil
	}

	ring := make([]string, limit)
	count, next := 0, 0
	scanner := newScanner(file)
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % limit
		count = min(count+1, limit)
	}
	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("read log file: %w", err)
	}
	end, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return Result{}, fmt.Errorf("seek log file: %w", err)
	}

	lines := make([]string, count)
	start := 0
	if count == limit {
		start = next
	}
	for i := range count {
		lines[i] = ring[(start+i)%limit]
	}
	return Result{Lines: lines, Offset: end}, nil
}

func linesFrom(path string, offset int64) (Result, error) {
	res := Result{Offset: offset}
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Result{}, nil
	}
	if err != nil {
		return res, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return res, fmt.Errorf("seek log file: %w", err)
	}
	reader := bufio.NewReaderSize(file, 64*1024)
	for {
		line, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			// a partial last line is left for the next read
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("read log file: %w", err)
		}
		res.Offset += int64(len(line))
		res.Lines = append(res.Lines, trimNewline(line))
	}
}

func waitForLines(ctx context.Context, path string, offset int64, wait time.Duration) (Result, error) {
	deadline := time.Now().Add(wait)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return Result{Offset: offset}, ctx.Err()
		case <-ticker.C:
		}
		res, err := linesFrom(path, offset)
		if err != nil || len(res.Lines) > 0 || time.Now().After(deadline) {
			return res, err
		}
		offset = res.Offset
	}
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return scanner
}

func trimNewline(line string) string {
	line = line[:len(line)-1]
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}
