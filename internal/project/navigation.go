package project

// View names a top-level screen.
type View string

const (
	ViewLiteratureList   View = "literature-list"
	ViewLiteratureDetail View = "literature-detail"
	ViewAttributes       View = "attributes"
	ViewExport           View = "export"
)

// Navigation is the last UI position, saved and restored wholesale.
type Navigation struct {
	View                 View     `json:"view,omitempty"`
	SelectedLiteratureID string   `json:"selectedLiteratureId,omitempty"`
	SelectedAttributeIDs []string `json:"selectedAttributeIds,omitempty"`
	UpdatedAt            string   `json:"updatedAt,omitempty"`
}
