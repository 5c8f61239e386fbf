package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeExport()
	c.normalizeList()
	c.normalizeDesktop()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv(envStateDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.StateDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	var err error
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeExport() {
	c.Export.Format = strings.ToLower(strings.TrimSpace(c.Export.Format))
	if c.Export.Format == "" {
		c.Export.Format = defaultExportFormat
	}
	if len(c.Export.Fields) == 0 {
		c.Export.Fields = append([]string(nil), defaultExportFields...)
		return
	}
	fields := make([]string, 0, len(c.Export.Fields))
	seen := make(map[string]struct{}, len(c.Export.Fields))
	for _, field := range c.Export.Fields {
		normalized := strings.ToLower(strings.TrimSpace(field))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		fields = append(fields, normalized)
	}
	if len(fields) == 0 {
		fields = append(fields, defaultExportFields...)
	}
	c.Export.Fields = fields
}

func (c *Config) normalizeList() {
	c.List.Sort = strings.ToLower(strings.TrimSpace(c.List.Sort))
	if c.List.Sort == "" {
		c.List.Sort = defaultListSort
	}
}

func (c *Config) normalizeDesktop() {
	c.Desktop.OpenCommand = strings.TrimSpace(c.Desktop.OpenCommand)
	if c.Desktop.OpenCommand == "" {
		if value, ok := os.LookupEnv(envOpenCommand); ok {
			c.Desktop.OpenCommand = strings.TrimSpace(value)
		}
	}
	c.Desktop.ClipboardCommand = strings.TrimSpace(c.Desktop.ClipboardCommand)
	if c.Desktop.ClipboardCommand == "" {
		if value, ok := os.LookupEnv(envClipboardCommand); ok {
			c.Desktop.ClipboardCommand = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv(envLogFormat); ok && strings.TrimSpace(value) != "" {
		c.Logging.Format = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv(envLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
