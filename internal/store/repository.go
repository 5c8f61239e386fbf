package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"litshelf/internal/fileutil"
	"litshelf/internal/idgen"
	"litshelf/internal/logging"
)

// Record is implemented by every persisted type.
type Record interface {
	RecordID() string
	SetRecordID(id string)
	Timestamps() (createdAt, updatedAt string)
	SetTimestamps(createdAt, updatedAt string)
}

// DecodeFunc turns a stored file back into a record.
type DecodeFunc[T Record] func(data []byte) (T, error)

// Option customizes a Repository.
type Option func(*options)

type options struct {
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// WithLogger sets the logger used for skipped files.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock replaces time.Now for timestamping.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator replaces idgen.New.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		if newID != nil {
			o.newID = newID
		}
	}
}

// Repository provides CRUD over one collection directory.
type Repository[T Record] struct {
	dir    string
	kind   Kind
	decode DecodeFunc[T]
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// New returns a repository for kind beneath root (a project working directory).
func New[T Record](root string, kind Kind, decode DecodeFunc[T], opts ...Option) *Repository[T] {
	o := options{now: time.Now, newID: idgen.New}
	for _, opt := range opts {
		opt(&o)
	}
	return &Repository[T]{
		dir:    filepath.Join(root, kind.Dir),
		kind:   kind,
		decode: decode,
		logger: logging.NewComponentLogger(o.logger, "store").With(logging.String(logging.FieldRecordKind, kind.Name)),
		now:    o.now,
		newID:  o.newID,
	}
}

// Dir returns the collection directory.
func (r *Repository[T]) Dir() string {
	return r.dir
}

// Kind returns the collection kind.
func (r *Repository[T]) Kind() Kind {
	return r.kind
}

// Path returns the file path for id.
func (r *Repository[T]) Path(id string) (string, error) {
	if err := checkID(id); err != nil {
		return "", err
	}
	return filepath.Join(r.dir, r.kind.FileName(id)), nil
}

// Save writes record, assigning an id when it has none. createdAt is kept from
// the record or, failing that, from the stored copy; updatedAt is always
// refreshed. The record is updated in place and its id returned.
func (r *Repository[T]) Save(record T) (string, error) {
	id := record.RecordID()
	if id == "" {
		id = r.newID()
	}
	path, err := r.Path(id)
	if err != nil {
		return "", err
	}

	now := Timestamp(r.now())
	createdAt, _ := record.Timestamps()
	if createdAt == "" && record.RecordID() != "" {
		stored, ok, err := r.Load(id)
		if err != nil {
			r.logger.Debug("stored record unreadable; resetting createdAt",
				logging.String(logging.FieldRecordID, id),
				logging.Error(err),
			)
		} else if ok {
			createdAt, _ = stored.Timestamps()
		}
	}
	if createdAt == "" {
		createdAt = now
	}

	record.SetRecordID(id)
	record.SetTimestamps(createdAt, now)

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode %s %s: %w", r.kind.Name, id, err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure %s directory: %w", r.kind.Name, err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s %s: %w", r.kind.Name, id, err)
	}
	r.logger.Debug("record saved", logging.String(logging.FieldRecordID, id))
	return id, nil
}

// Load returns the record stored under id. A missing file yields ok=false and
// no error.
func (r *Repository[T]) Load(id string) (T, bool, error) {
	var zero T
	path, err := r.Path(id)
	if err != nil {
		return zero, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("read %s %s: %w", r.kind.Name, id, err)
	}
	record, err := r.decodeAs(id, data)
	if err != nil {
		return zero, false, fmt.Errorf("decode %s %s: %w", r.kind.Name, id, err)
	}
	return record, true, nil
}

// decodeAs decodes data stored under id. The file name is the storage key, so
// it overrides a missing or different id in the body.
func (r *Repository[T]) decodeAs(id string, data []byte) (T, error) {
	record, err := r.decode(data)
	if err != nil {
		return record, err
	}
	if stored := record.RecordID(); stored != id {
		if stored != "" {
			logging.WarnWithContext(r.logger, "record id does not match file name", "record_id_mismatch",
				logging.String(logging.FieldRecordID, id),
				logging.String("stored_id", stored),
				logging.String(logging.FieldErrorHint, "the file name id is used"),
				logging.String(logging.FieldImpact, "record is saved back under its file name"),
			)
		}
		record.SetRecordID(id)
	}
	return record, nil
}

// List returns every parseable record in the collection ordered by file name.
// A missing collection directory is an empty collection.
func (r *Repository[T]) List() ([]T, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s directory: %w", r.kind.Name, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := r.kind.IDFromFileName(entry.Name()); ok {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)

	records := make([]T, 0, len(names))
	for _, name := range names {
		path := filepath.Join(r.dir, name)
		id, _ := r.kind.IDFromFileName(name)
		data, err := os.ReadFile(path)
		if err == nil {
			var record T
			record, err = r.decodeAs(id, data)
			if err == nil {
				records = append(records, record)
				continue
			}
		}
		logging.WarnWithContext(r.logger, "skipping unreadable record", "record_skipped",
			logging.String(logging.FieldRecordID, id),
			logging.String(logging.FieldPath, path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "fix or remove the file"),
			logging.String(logging.FieldImpact, "record omitted from listing"),
		)
	}
	return records, nil
}

// Delete removes the record stored under id.
func (r *Repository[T]) Delete(id string) error {
	path, err := r.Path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &NotFoundError{Kind: r.kind.Name, ID: id}
		}
		return fmt.Errorf("delete %s %s: %w", r.kind.Name, id, err)
	}
	r.logger.Debug("record deleted", logging.String(logging.FieldRecordID, id))
	return nil
}

func checkID(id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return fmt.Errorf("%w: empty", ErrInvalidID)
	case id == "." || id == "..":
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	case strings.ContainsAny(id, `/\`+"\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidID, id)
	}
	return nil
}
