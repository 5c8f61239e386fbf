package library

import (
	"cmp"
	"slices"

	"litshelf/internal/literature"
	"litshelf/internal/textutil"
)

// DefaultDuplicateThreshold is the title similarity at or above which two
// records are reported as likely duplicates.
const DefaultDuplicateThreshold = 0.85

// Duplicate pairs two records whose titles look alike.
type Duplicate struct {
	First  literature.Summary `json:"first"`
	Second literature.Summary `json:"second"`
	Score  float64            `json:"score"`
}

// FindDuplicates compares every pair of titles and returns the pairs scoring
// at least threshold, best match first. Title terms are weighted by how rare
// they are within the project; records without a usable title are skipped.
func (s *Service) FindDuplicates(threshold float64) ([]Duplicate, error) {
	if threshold <= 0 {
		threshold = DefaultDuplicateThreshold
	}
	lits, err := s.literatures.List()
	if err != nil {
		return nil, err
	}

	type entry struct {
		summary literature.Summary
		print   *textutil.Fingerprint
	}
	corpus := textutil.NewCorpus()
	entries := make([]entry, 0, len(lits))
	for _, lit := range lits {
		fp := textutil.NewFingerprint(lit.Meta().Title)
		if fp == nil {
			continue
		}
		corpus.Add(fp)
		entries = append(entries, entry{summary: literature.Summarize(lit), print: fp})
	}
	idf := corpus.IDF()
	for i := range entries {
		entries[i].print = entries[i].print.WithIDF(idf)
	}

	var out []Duplicate
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			score := textutil.CosineSimilarity(a.print, b.print)
			if score < threshold {
				continue
			}
			if a.summary.ID > b.summary.ID {
				a, b = b, a
			}
			out = append(out, Duplicate{First: a.summary, Second: b.summary, Score: score})
		}
	}
	slices.SortFunc(out, func(x, y Duplicate) int {
		if c := cmp.Compare(y.Score, x.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(x.First.ID, y.First.ID); c != 0 {
			return c
		}
		return cmp.Compare(x.Second.ID, y.Second.ID)
	})
	return out, nil
}
