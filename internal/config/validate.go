package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	validExportFields = map[string]struct{}{
		"id": {}, "title": {}, "year": {}, "authors": {},
		"filename": {}, "filepath": {}, "attribute": {}, "value": {},
	}
	validListSorts = map[string]struct{}{
		"updated": {}, "created": {}, "title": {}, "year": {},
	}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := c.validateList(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validateExport() error {
	switch c.Export.Format {
	case "csv", "tsv":
	default:
		return fmt.Errorf("export.format must be csv or tsv, got %q", c.Export.Format)
	}
	for _, field := range c.Export.Fields {
		if _, ok := validExportFields[field]; !ok {
			return fmt.Errorf("export.fields: unknown field %q", field)
		}
	}
	return nil
}

func (c *Config) validateList() error {
	if _, ok := validListSorts[c.List.Sort]; !ok {
		return fmt.Errorf("list.sort must be one of updated, created, title, year; got %q", c.List.Sort)
	}
	if c.List.PageSize < 0 {
		return errors.New("list.page_size must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
