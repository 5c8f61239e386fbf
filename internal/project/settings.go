package project

import (
	"errors"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"litshelf/internal/store"
	"litshelf/internal/validate"
)

const (
	// MetadataFile marks a directory as a project.
	MetadataFile = "project-metadata.json"
	// SettingsFile holds the active project settings inside the state directory.
	SettingsFile = "project-settings.json"
	// NavigationFile holds the last UI navigation state inside the state directory.
	NavigationFile = "navigation-state.json"
	lockFile       = "state.lock"
)

// Settings identifies a project.
type Settings struct {
	ProjectName        string `json:"projectName"`
	ProjectDescription string `json:"projectDescription"`
	WorkingDir         string `json:"workingDir"`
	RepositoryDir      string `json:"repositoryDir,omitempty"`
}

// Validate reports every invalid field.
func (s Settings) Validate() error {
	return validate.FromOzzo(validation.ValidateStruct(&s,
		validation.Field(&s.ProjectName, validate.NotBlank),
		validation.Field(&s.WorkingDir, validate.NotBlank, validation.By(absolutePath)),
		validation.Field(&s.RepositoryDir, validation.By(absolutePath)),
	))
}

func absolutePath(value any) error {
	p, _ := value.(string)
	if p == "" || filepath.IsAbs(p) {
		return nil
	}
	return errors.New("must be an absolute path")
}

// Normalize trims names and cleans directory paths.
func (s Settings) Normalize() Settings {
	s.ProjectName = strings.TrimSpace(s.ProjectName)
	s.ProjectDescription = strings.TrimSpace(s.ProjectDescription)
	if wd := strings.TrimSpace(s.WorkingDir); wd != "" {
		s.WorkingDir = filepath.Clean(wd)
	}
	if rd := strings.TrimSpace(s.RepositoryDir); rd != "" {
		s.RepositoryDir = filepath.Clean(rd)
	} else {
		s.RepositoryDir = ""
	}
	return s
}

// Context returns the path layout for s.
func (s Settings) Context() Context {
	return Context{WorkingDir: s.WorkingDir, RepositoryDir: s.RepositoryDir}
}

// Metadata is the marker stored in a project's working directory.
// RepositoryDir is written as null when unset.
type Metadata struct {
	ProjectName        string  `json:"projectName"`
	ProjectDescription string  `json:"projectDescription"`
	WorkingDir         string  `json:"workingDir"`
	RepositoryDir      *string `json:"repositoryDir"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// Settings returns the settings recorded in the marker, bound to dir.
func (m Metadata) Settings(dir string) Settings {
	s := Settings{
		ProjectName:        m.ProjectName,
		ProjectDescription: m.ProjectDescription,
		WorkingDir:         dir,
	}
	if m.RepositoryDir != nil {
		s.RepositoryDir = *m.RepositoryDir
	}
	return s
}

// Context is the path layout of one project. It is passed explicitly to every
// component that touches project files.
type Context struct {
	WorkingDir    string
	RepositoryDir string
}

func (c Context) LiteratureDir() string {
	return filepath.Join(c.WorkingDir, store.LiteratureKind.Dir)
}

func (c Context) AttributeDir() string {
	return filepath.Join(c.WorkingDir, store.AttributeSchemaKind.Dir)
}

func (c Context) MetadataPath() string {
	return filepath.Join(c.WorkingDir, MetadataFile)
}

// PDFBase is the directory relative PDF paths are resolved against: the
// repository directory when set, else the working directory.
func (c Context) PDFBase() string {
	if c.RepositoryDir != "" {
		return c.RepositoryDir
	}
	return c.WorkingDir
}

// ResolvePDF returns an absolute path for a stored pdfFilePath. Paths
// written with Windows separators are accepted.
func (c Context) ResolvePDF(stored string) string {
	stored = strings.TrimSpace(stored)
	if stored == "" {
		return ""
	}
	if filepath.IsAbs(stored) {
		return filepath.Clean(stored)
	}
	return filepath.Join(c.PDFBase(), filepath.FromSlash(strings.ReplaceAll(stored, `\`, "/")))
}

// RelativePDF returns the form of an absolute path to store in pdfFilePath:
// relative (slash separated) when it lies under the repository directory,
// otherwise the cleaned absolute path.
func (c Context) RelativePDF(abs string) string {
	abs = filepath.Clean(abs)
	if c.RepositoryDir == "" {
		return abs
	}
	rel, err := filepath.Rel(c.RepositoryDir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return abs
	}
	return filepath.ToSlash(rel)
}
