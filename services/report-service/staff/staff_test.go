package staff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBestPicksLowestWorkload(t *testing.T) {
	// Rahul: 1/8 active tasks, lowest workload on the sample roster.
	best, ok := SelectBest(SampleStaff())
	require.True(t, ok)
	assert.Equal(t, "3", best.ID)
	assert.Equal(t, "Rahul Kumar", best.Name)
}

func TestSelectBestSkipsInactiveAndFull(t *testing.T) {
	members := []Member{
		{ID: "a", Rating: 5.0, ActiveTasks: 0, MaxTasks: 8, Active: false},
		{ID: "b", Rating: 5.0, ActiveTasks: 8, MaxTasks: 8, Active: true},
		{ID: "c", Rating: 3.0, ActiveTasks: 7, MaxTasks: 8, Active: true},
	}
	best, ok := SelectBest(members)
	require.True(t, ok)
	assert.Equal(t, "c", best.ID)
}

func TestSelectBestWorkloadBeatsRating(t *testing.T) {
	members := []Member{
		{ID: "1", Rating: 4.8, ActiveTasks: 3, MaxTasks: 8, Active: true},
		{ID: "3", Rating: 4.9, ActiveTasks: 1, MaxTasks: 8, Active: true},
		{ID: "4", Rating: 4.5, ActiveTasks: 4, MaxTasks: 8, Active: false},
	}
	best, ok := SelectBest(members)
	require.True(t, ok)
	assert.Equal(t, "3", best.ID)
}

func TestSelectBestBreaksTiesByRating(t *testing.T) {
	members := []Member{
		{ID: "a", Rating: 4.2, ActiveTasks: 2, MaxTasks: 8, Active: true},
		{ID: "b", Rating: 4.9, ActiveTasks: 2, MaxTasks: 8, Active: true},
		{ID: "c", Rating: 4.5, ActiveTasks: 2, MaxTasks: 8, Active: true},
	}
	best, ok := SelectBest(members)
	require.True(t, ok)
	assert.Equal(t, "b", best.ID)
}

func TestSelectBestNobodyEligible(t *testing.T) {
	members := []Member{
		{ID: "a", ActiveTasks: 8, MaxTasks: 8, Active: true},
		{ID: "b", ActiveTasks: 1, MaxTasks: 8, Active: false},
	}
	_, ok := SelectBest(members)
	assert.False(t, ok)

	_, ok = SelectBest(nil)
	assert.False(t, ok)
}

func TestSelectBestIgnoresInputOrder(t *testing.T) {
	members := SampleStaff()
	for i := 0; i < len(members); i++ {
		rotated := append(append([]Member{}, members[i:]...), members[:i]...)
		best, ok := SelectBest(rotated)
		require.True(t, ok)
		assert.Equal(t, "3", best.ID)
	}
}

func TestSelectBestDoesNotMutateInput(t *testing.T) {
	members := SampleStaff()
	firstID := members[0].ID
	_, _ = SelectBest(members)
	assert.Equal(t, firstID, members[0].ID)
}

func TestDirectoryGet(t *testing.T) {
	d := NewDirectory(SampleStaff())

	m, ok := d.Get("2")
	require.True(t, ok)
	assert.Equal(t, "Priya Sharma", m.Name)

	_, ok = d.Get("99")
	assert.False(t, ok)
}

func TestWorkload(t *testing.T) {
	m := Member{ActiveTasks: 3, MaxTasks: 8}
	assert.InDelta(t, 0.375, m.Workload(), 1e-9)
}
