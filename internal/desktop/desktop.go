// Package desktop hands files and text to the host desktop: opening a PDF in
// the default viewer and placing a path on the clipboard.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"litshelf/internal/config"
	"litshelf/internal/deps"
)

var commandContext = exec.CommandContext

// ErrNoCommand is returned when neither a configured nor a default command
// is available.
var ErrNoCommand = errors.New("no desktop command available")

var (
	defaultOpeners = map[string][]string{
		"darwin":  {"open"},
		"windows": {"explorer"},
	}
	defaultClipboards = map[string][]string{
		"darwin":  {"pbcopy"},
		"windows": {"clip"},
	}
	unixOpeners    = []string{"xdg-open", "gio open"}
	unixClipboards = []string{"wl-copy", "xclip -selection clipboard", "xsel --clipboard --input"}
)

// Desktop runs the configured host commands.
type Desktop struct {
	open      string
	clipboard string
}

// New returns a Desktop using cfg. Empty commands fall back to the first
// platform default found on PATH when used.
func New(cfg config.Desktop) *Desktop {
	return &Desktop{
		open:      strings.TrimSpace(cfg.OpenCommand),
		clipboard: strings.TrimSpace(cfg.ClipboardCommand),
	}
}

// Open launches the viewer for path and returns once it has started.
func (d *Desktop) Open(ctx context.Context, path string) error {
	command, err := resolve(d.open, openers())
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	fields := strings.Fields(command)
	cmd := commandContext(ctx, fields[0], append(fields[1:], path)...) //nolint:gosec
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", fields[0], err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Copy writes text to the clipboard command's stdin.
func (d *Desktop) Copy(ctx context.Context, text string) error {
	command, err := resolve(d.clipboard, clipboards())
	if err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	fields := strings.Fields(command)
	cmd := commandContext(ctx, fields[0], fields[1:]...) //nolint:gosec
	cmd.Stdin = strings.NewReader(text)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", fields[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Requirements lists the desktop programs for a status report. Both are
// optional; only the operations using them fail without.
func Requirements(cfg config.Desktop) []deps.Requirement {
	open, _ := resolve(strings.TrimSpace(cfg.OpenCommand), openers())
	clip, _ := resolve(strings.TrimSpace(cfg.ClipboardCommand), clipboards())
	return []deps.Requirement{
		{Name: "PDF viewer", Command: orFirst(open, openers()), Description: "Opens attached PDFs", Optional: true},
		{Name: "Clipboard", Command: orFirst(clip, clipboards()), Description: "Copies PDF paths", Optional: true},
	}
}

func resolve(configured string, defaults []string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if command, ok := deps.FirstAvailable(defaults...); ok {
		return command, nil
	}
	return "", fmt.Errorf("%w (tried %s)", ErrNoCommand, strings.Join(defaults, ", "))
}

func orFirst(command string, defaults []string) string {
	if command != "" || len(defaults) == 0 {
		return command
	}
	return defaults[0]
}

func openers() []string {
	if list, ok := defaultOpeners[runtime.GOOS]; ok {
		return list
	}
	return unixOpeners
}

func clipboards() []string {
	if list, ok := defaultClipboards[runtime.GOOS]; ok {
		return list
	}
	return unixClipboards
}
