// Package stats computes grouped counts over the deduplicated document view.
package stats

import "portaldocs/api/internal/store"

// Stats holds the grouped counts for the statistics endpoint. Status, tipo
// and orgao buckets count each unique document once; sector buckets count a
// document once per entry of its SetoresArray. Blank values never become
// bucket keys.
type Stats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
	ByType   map[string]int `json:"byType"`
	ByOrgao  map[string]int `json:"byOrgao"`
	BySetor  map[string]int `json:"bySetor"`
}

// Summary condenses the grouped counts for the dashboard header.
type Summary struct {
	TotalUnique      int    `json:"totalUnique"`
	MostCommonStatus string `json:"mostCommonStatus"`
	MostCommonType   string `json:"mostCommonType"`
	TotalSetors      int    `json:"totalSetors"`
}

// Aggregate counts the unique documents by status, type, organization and
// sector.
func Aggregate(unique []store.Document) Stats {
	s := Stats{
		Total:    len(unique),
		ByStatus: map[string]int{},
		ByType:   map[string]int{},
		ByOrgao:  map[string]int{},
		BySetor:  map[string]int{},
	}
	for _, doc := range unique {
		if doc.Status != "" {
			s.ByStatus[doc.Status]++
		}
		if doc.Tipo != "" {
			s.ByType[doc.Tipo]++
		}
		if doc.Orgao != "" {
			s.ByOrgao[doc.Orgao]++
		}
		for _, setor := range doc.SetoresArray {
			s.BySetor[setor]++
		}
	}
	return s
}

// Summarize derives the dashboard summary from aggregated counts.
func (s Stats) Summarize() Summary {
	return Summary{
		TotalUnique:      s.Total,
		MostCommonStatus: mostCommon(s.ByStatus),
		MostCommonType:   mostCommon(s.ByType),
		TotalSetors:      len(s.BySetor),
	}
}

// mostCommon returns the key with the highest count, "N/A" for an empty
// mapping. Ties go to the lexicographically smallest key so the answer does
// not depend on map iteration order.
func mostCommon(counts map[string]int) string {
	best := "N/A"
	bestCount := -1
	for key, count := range counts {
		if count > bestCount || (count == bestCount && key < best) {
			best = key
			bestCount = count
		}
	}
	return best
}
