package textutil

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

const minTokenRunes = 3

var folder = cases.Fold()

// Fingerprint is a weighted term vector of a title or other short text.
type Fingerprint struct {
	weights map[string]float64
	norm    float64
}

// NewFingerprint counts the tokens of text. It returns nil when text has no
// token of at least three letters or digits.
func NewFingerprint(text string) *Fingerprint {
	weights := make(map[string]float64)
	for _, token := range Tokenize(text) {
		weights[token]++
	}
	return fromWeights(weights)
}

func fromWeights(weights map[string]float64) *Fingerprint {
	if len(weights) == 0 {
		return nil
	}
	var sum float64
	for _, w := range weights {
		sum += w * w
	}
	return &Fingerprint{weights: weights, norm: math.Sqrt(sum)}
}

// Tokenize case-folds text and splits it on anything that is not a letter or
// digit, dropping tokens shorter than three runes.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(folder.String(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if utf8.RuneCountInString(field) >= minTokenRunes {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

// TokenCount returns the number of distinct tokens.
func (f *Fingerprint) TokenCount() int {
	if f == nil {
		return 0
	}
	return len(f.weights)
}

// WithIDF returns a copy with each weight multiplied by its idf value. Tokens
// missing from idf keep their weight; tokens weighted to zero are dropped.
func (f *Fingerprint) WithIDF(idf map[string]float64) *Fingerprint {
	if f == nil || len(idf) == 0 {
		return f
	}
	weighted := make(map[string]float64, len(f.weights))
	for token, w := range f.weights {
		if factor, ok := idf[token]; ok {
			w *= factor
		}
		if w != 0 {
			weighted[token] = w
		}
	}
	return fromWeights(weighted)
}

// CosineSimilarity returns the cosine of the angle between a and b, or 0 when
// either is nil or empty.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	small, large := a.weights, b.weights
	if len(small) > len(large) {
		small, large = large, small
	}
	var dot float64
	for token, w := range small {
		dot += w * large[token]
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

// Corpus counts in how many fingerprints each token occurs.
type Corpus struct {
	docs int
	freq map[string]int
}

// NewCorpus returns an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{freq: make(map[string]int)}
}

// Add records the distinct tokens of fp. A nil fingerprint is ignored.
func (c *Corpus) Add(fp *Fingerprint) {
	if c == nil || fp == nil {
		return
	}
	c.docs++
	for token := range fp.weights {
		c.freq[token]++
	}
}

// Len returns the number of fingerprints added.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return c.docs
}

// IDF computes smoothed inverse document frequency weights,
// 1 + ln((N+1)/(1+df)). A token found in every document keeps weight 1.
func (c *Corpus) IDF() map[string]float64 {
	if c == nil || c.docs == 0 {
		return nil
	}
	n := float64(c.docs)
	idf := make(map[string]float64, len(c.freq))
	for token, df := range c.freq {
		idf[token] = 1 + math.Log((n+1)/(1+float64(df)))
	}
	return idf
}
