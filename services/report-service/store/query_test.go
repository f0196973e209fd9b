package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prem-2323/CleanCity/services/report-service/models"
)

func ids(reports []models.Report) []string {
	out := make([]string, len(reports))
	for i, r := range reports {
		out[i] = r.ID
	}
	return out
}

func TestQueryNoFiltersReturnsAll(t *testing.T) {
	got := Query{}.Run(SampleReports())
	assert.Len(t, got, 5)
}

func TestQueryAllIsSameAsEmpty(t *testing.T) {
	all := Query{Status: "all", Priority: "all"}.Run(SampleReports())
	empty := Query{}.Run(SampleReports())
	assert.Equal(t, empty, all)
}

func TestQueryStatusFilter(t *testing.T) {
	got := Query{Status: "pending"}.Run(SampleReports())
	assert.ElementsMatch(t, []string{"1", "5"}, ids(got))
}

func TestQueryPriorityFilter(t *testing.T) {
	got := Query{Priority: "critical"}.Run(SampleReports())
	assert.ElementsMatch(t, []string{"2", "4"}, ids(got))
}

func TestQueryCombinedFilters(t *testing.T) {
	got := Query{Status: "pending", Priority: "low"}.Run(SampleReports())
	assert.Equal(t, []string{"5"}, ids(got))
}

func TestQuerySearchIsCaseInsensitive(t *testing.T) {
	byTitle := Query{Search: "PLASTIC WASTE"}.Run(SampleReports())
	assert.Equal(t, []string{"1"}, ids(byTitle))

	byAddress := Query{Search: "market road"}.Run(SampleReports())
	assert.Equal(t, []string{"3"}, ids(byAddress))

	byWasteType := Query{Search: "Electronic"}.Run(SampleReports())
	assert.Equal(t, []string{"2"}, ids(byWasteType))
}

func TestQuerySearchMatchesIDVerbatim(t *testing.T) {
	reports := []models.Report{
		{ID: "RPT-9a", Title: "t", CreatedAt: time.Now()},
		{ID: "RPT-9A", Title: "t", CreatedAt: time.Now()},
	}
	got := Query{Search: "9a"}.Run(reports)
	require.Len(t, got, 1)
	assert.Equal(t, "RPT-9a", got[0].ID)
}

func TestQuerySearchNoMatch(t *testing.T) {
	got := Query{Search: "asbestos"}.Run(SampleReports())
	assert.Empty(t, got)
}

func TestQuerySortNewestIsDefault(t *testing.T) {
	got := Query{}.Run(SampleReports())
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(got))
}

func TestQuerySortOldest(t *testing.T) {
	got := Query{Sort: SortOldest}.Run(SampleReports())
	assert.Equal(t, []string{"5", "4", "3", "2", "1"}, ids(got))
}

func TestQuerySortPriority(t *testing.T) {
	got := Query{Sort: SortPriority}.Run(SampleReports())
	// critical first, ties keep their pre-sort order
	assert.Equal(t, []string{"2", "4", "1", "3", "5"}, ids(got))
}

func TestQuerySortPriorityIsStable(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	reports := []models.Report{
		{ID: "a", Priority: models.PriorityHigh, CreatedAt: base},
		{ID: "b", Priority: models.PriorityHigh, CreatedAt: base},
		{ID: "c", Priority: models.PriorityHigh, CreatedAt: base},
	}
	got := Query{Sort: SortPriority}.Run(reports)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
}

func TestQueryFilterThenSearchThenSort(t *testing.T) {
	got := Query{Status: "pending", Search: "waste", Sort: SortPriority}.Run(SampleReports())
	assert.Equal(t, []string{"1", "5"}, ids(got))
}
