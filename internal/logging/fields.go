package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies a log line for filtering (e.g. "record_parse_failed").
	FieldEventType = "event_type"
	// FieldErrorHint is a short next step for the reader of a warning.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldRecordID is the identifier of the literature record or attribute schema involved.
	FieldRecordID = "record_id"
	// FieldRecordKind names the collection the record belongs to.
	FieldRecordKind = "record_kind"
	// FieldPath is a filesystem path.
	FieldPath = "path"
	// FieldProjectDir is the working directory of the active project.
	FieldProjectDir = "project_dir"
)
