package nlp

import "sort"

// Vectorizer turns raw text into a fixed-width term-count vector over a
// vocabulary fitted once at training time. It is immutable after fitting and
// safe for concurrent readers.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
}

// FitVectorizer builds the vocabulary from the distinct tokens of the given
// documents. Terms are indexed in sorted order so fitting is deterministic.
func FitVectorizer(docs []string) *Vectorizer {
	seen := make(map[string]bool)
	for _, doc := range docs {
		for _, term := range Tokenize(doc) {
			seen[term] = true
		}
	}

	terms := make([]string, 0, len(seen))
	for term := range seen {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	for i, term := range terms {
		vocab[term] = i
	}

	return &Vectorizer{Vocabulary: vocab}
}

// Transform counts vocabulary term occurrences in text. Out-of-vocabulary
// terms contribute nothing.
func (v *Vectorizer) Transform(text string) []float64 {
	x := make([]float64, len(v.Vocabulary))
	for _, term := range Tokenize(text) {
		if idx, ok := v.Vocabulary[term]; ok {
			x[idx]++
		}
	}
	return x
}

// NumFeatures returns the vocabulary cardinality.
func (v *Vectorizer) NumFeatures() int {
	return len(v.Vocabulary)
}
