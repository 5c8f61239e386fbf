package export

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"litshelf/internal/attribute"
	"litshelf/internal/literature"
)

//go:embed schema.sql
var schemaSQL string

// sqliteFormatVersion is recorded in export_info; bump it when schema.sql changes.
const sqliteFormatVersion = 1

// WriteSQLite writes lits, the schemas of catalog, and the observations
// selected by cfg to a new SQLite database at path, replacing any existing
// file only once the database is complete. cfg.Format is ignored.
func WriteSQLite(ctx context.Context, path string, cfg Config, lits []literature.Literature, catalog *attribute.Catalog) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg.Format = FormatCSV
	if err := cfg.Validate(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp database: %w", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	db, err := sql.Open("sqlite", tmpPath)
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	if err := populate(ctx, db, cfg, lits, catalog); err != nil {
		_ = db.Close()
		return err
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("close sqlite db: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("move database into place: %w", err)
	}
	committed = true
	return nil
}

func populate(ctx context.Context, db *sql.DB, cfg Config, lits []literature.Literature, catalog *attribute.Catalog) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin export tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	fieldNames := make([]string, len(cfg.Fields))
	for i, f := range cfg.Fields {
		fieldNames[i] = string(f)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO export_info (format_version, exported_at, fields, attribute_filter) VALUES (?, ?, ?, ?)",
		sqliteFormatVersion,
		time.Now().UTC().Format(time.RFC3339),
		strings.Join(fieldNames, ","),
		strings.Join(cfg.AttributeIDs, ","),
	); err != nil {
		return fmt.Errorf("record export info: %w", err)
	}

	for _, lit := range lits {
		c := lit.Meta()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO literatures (id, type, title, year, authors, filename, filepath, notes, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, string(lit.Kind()), c.Title, c.Year, strings.Join(c.Authors, "; "),
			nullable(Filename(c.PDFFilePath)), nullable(c.PDFFilePath), nullable(c.Notes),
			nullable(c.CreatedAt), nullable(c.UpdatedAt),
		); err != nil {
			return fmt.Errorf("insert literature %s: %w", c.ID, err)
		}
	}

	for _, s := range catalog.Schemas() {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO attribute_schemas (id, name, description, allow_free_text) VALUES (?, ?, ?, ?)",
			s.ID, s.Name, nullable(s.Description), s.AllowFreeText,
		); err != nil {
			return fmt.Errorf("insert attribute schema %s: %w", s.ID, err)
		}
	}

	// The observations table always holds one row per attribute value.
	obsCfg := Config{Fields: []Field{FieldAttribute, FieldValue}, AttributeIDs: cfg.AttributeIDs}
	for _, obs := range Observations(obsCfg, lits, catalog) {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO observations (literature_id, attribute_id, attribute, value, note) VALUES (?, ?, ?, ?, ?)",
			obs.Literature.RecordID(), obs.AttributeID, obs.Attribute, obs.Value, nullable(obs.Note),
		); err != nil {
			return fmt.Errorf("insert observation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit export: %w", err)
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
