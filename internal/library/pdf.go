package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"litshelf/internal/fileutil"
	"litshelf/internal/literature"
	"litshelf/internal/logging"
	"litshelf/internal/store"
	"litshelf/internal/textutil"
)

// ErrNoPDF is returned when a literature has no PDF path.
var ErrNoPDF = errors.New("literature has no pdf")

// ErrNoRepository is returned when a copy into the repository directory is
// requested for a project without one.
var ErrNoRepository = errors.New("project has no repository directory")

// PDFPath returns the absolute path of the PDF attached to lit.
func (s *Service) PDFPath(lit literature.Literature) (string, error) {
	path := s.project.ResolvePDF(lit.Meta().PDFFilePath)
	if path == "" {
		return "", fmt.Errorf("%w: %s", ErrNoPDF, lit.RecordID())
	}
	return path, nil
}

// AttachPDF points the literature at the file at path. With copyIntoRepo the
// file is first copied into the repository directory under a sanitized name;
// an existing file of that name there is never overwritten.
func (s *Service) AttachPDF(literatureID, path string, copyIntoRepo bool) (literature.Literature, error) {
	lit, err := s.GetLiterature(literatureID)
	if err != nil {
		return nil, err
	}
	src, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve pdf path: %w", err)
	}
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("stat pdf: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("pdf path %q is a directory", src)
	}

	target := src
	if copyIntoRepo {
		if s.project.RepositoryDir == "" {
			return nil, ErrNoRepository
		}
		name := textutil.SanitizeFileName(filepath.Base(src))
		if name == "" {
			return nil, fmt.Errorf("pdf file name %q is not usable", filepath.Base(src))
		}
		target = filepath.Join(s.project.RepositoryDir, name)
		if target != src {
			exists, err := fileutil.Exists(target)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, fmt.Errorf("%s already exists in the repository directory", name)
			}
			if err := fileutil.CopyFileVerified(src, target); err != nil {
				return nil, err
			}
			s.logger.Info("pdf copied into repository",
				logging.Args(append(logging.Record(store.LiteratureKind.Name, literatureID),
					logging.String(logging.FieldPath, target))...)...)
		}
	}

	lit.Meta().PDFFilePath = s.project.RelativePDF(target)
	return s.update(lit)
}

// DetachPDF clears the PDF path. The file itself is left alone.
func (s *Service) DetachPDF(literatureID string) (literature.Literature, error) {
	lit, err := s.GetLiterature(literatureID)
	if err != nil {
		return nil, err
	}
	lit.Meta().PDFFilePath = ""
	return s.update(lit)
}
