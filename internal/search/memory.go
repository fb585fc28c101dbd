package search

import (
	"strings"

	"portaldocs/api/internal/store"
)

// Filter returns the documents satisfying every supplied criterion, in their
// original order. It is the contractual matching semantics: whatever the
// external index answers for free text, this is what a filter means.
func Filter(documents []store.Document, q Query) []store.Document {
	if q.IsZero() {
		return documents
	}
	matched := []store.Document{}
	for _, doc := range documents {
		if Matches(doc, q) {
			matched = append(matched, doc)
		}
	}
	return matched
}

// Matches reports whether a single document satisfies all criteria of q.
// A document with an empty field never matches a non-empty filter on it.
func Matches(doc store.Document, q Query) bool {
	if q.Setor != "" && !anyContains(doc.SetoresArray, q.Setor) {
		return false
	}
	if q.Tipo != "" && !containsFold(doc.Tipo, q.Tipo) {
		return false
	}
	if q.Status != "" && !containsFold(doc.Status, q.Status) {
		return false
	}
	if q.Text != "" && !matchesText(doc, q.Text) {
		return false
	}
	return true
}

func matchesText(doc store.Document, text string) bool {
	return containsFold(doc.Titulo, text) ||
		containsFold(doc.Assunto, text) ||
		containsFold(doc.Epigrafe, text) ||
		containsFold(doc.Orgao, text)
}

func anyContains(values []string, substr string) bool {
	for _, value := range values {
		if containsFold(value, substr) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	if haystack == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
