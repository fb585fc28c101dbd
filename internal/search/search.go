package search

// Query holds the optional filter criteria for a document lookup. A blank
// criterion imposes no constraint; all supplied criteria must match (AND).
type Query struct {
	// Setor matches when any entry of a document's SetoresArray contains it,
	// case-insensitively.
	Setor string
	// Tipo and Status are case-insensitive substring matches on their fields.
	Tipo   string
	Status string
	// Text is a free-text substring matched against titulo, assunto,
	// epigrafe, or orgao.
	Text string
}

// IsZero reports whether the query imposes no constraint at all.
func (q Query) IsZero() bool {
	return q.Setor == "" && q.Tipo == "" && q.Status == "" && q.Text == ""
}

// TextSearcher narrows the free-text leg of a query to a set of document ids.
// Implementations may rank or tokenize differently; field filters are always
// applied by the in-memory matcher afterwards.
type TextSearcher interface {
	SearchText(text string, limit int64) (ids map[string]struct{}, err error)
	Healthy() bool
}
