package store

import (
	"sort"
	"strings"

	"github.com/prem-2323/CleanCity/services/report-service/models"
)

const (
	SortNewest   = "newest"
	SortOldest   = "oldest"
	SortPriority = "priority"
)

// Query narrows and orders a report listing. Empty or "all" filter values
// match everything. Filters and search are applied first, ordering last.
type Query struct {
	Status   string
	Priority string
	Search   string
	Sort     string
}

func (q Query) Run(reports []models.Report) []models.Report {
	out := reports[:0]
	for _, r := range reports {
		if !q.matches(r) {
			continue
		}
		out = append(out, r)
	}

	switch q.Sort {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}

	return out
}

func (q Query) matches(r models.Report) bool {
	if q.Status != "" && q.Status != "all" && string(r.Status) != q.Status {
		return false
	}
	if q.Priority != "" && q.Priority != "all" && string(r.Priority) != q.Priority {
		return false
	}
	if q.Search == "" {
		return true
	}

	needle := strings.ToLower(q.Search)
	if strings.Contains(strings.ToLower(r.Title), needle) ||
		strings.Contains(strings.ToLower(r.Address), needle) ||
		strings.Contains(strings.ToLower(string(r.WasteType)), needle) {
		return true
	}
	// IDs match on the raw search text, without case folding.
	return strings.Contains(r.ID, q.Search)
}
