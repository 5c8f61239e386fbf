package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"litshelf/internal/config"
	"litshelf/internal/validate"
)

// formatError lists every field failure of a validation error on its own line.
func formatError(err error) string {
	var verr *validate.Error
	if !errors.As(err, &verr) || len(verr.Fields) == 0 {
		return err.Error()
	}
	lines := []string{"invalid input:"}
	for _, f := range verr.Fields {
		lines = append(lines, "  "+f.String())
	}
	return strings.Join(lines, "\n")
}

// absPath expands ~ and makes path absolute.
func absPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}
	return config.ExpandPath(path)
}

// readInput returns the contents of path, or stdin for "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func joinOrDash(values []string, sep string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, sep)
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
