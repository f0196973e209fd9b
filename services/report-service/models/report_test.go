package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPriorityFor(t *testing.T) {
	assert.Equal(t, PriorityCritical, PriorityFor(WasteHazardous))
	assert.Equal(t, PriorityHigh, PriorityFor(WasteElectronic))
	assert.Equal(t, PriorityMedium, PriorityFor(WastePlastic))
	assert.Equal(t, PriorityMedium, PriorityFor(WasteOrganic))
	assert.Equal(t, PriorityMedium, PriorityFor(WasteMixed))
}

func TestPriorityRankOrder(t *testing.T) {
	assert.Less(t, PriorityCritical.Rank(), PriorityHigh.Rank())
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, WasteMixed.Valid())
	assert.False(t, WasteType("nuclear").Valid())

	assert.True(t, StatusInProgress.Valid())
	assert.False(t, ReportStatus("archived").Valid())

	assert.True(t, PriorityLow.Valid())
	assert.False(t, ReportPriority("urgent").Valid())
}

func TestUpdateApplyMergesOnlySetFields(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := Report{
		ID:       "1",
		Title:    "Overflowing bin",
		Status:   StatusPending,
		Priority: PriorityMedium,
		Address:  "Connaught Place",
	}

	status := StatusAssigned
	assignee := "7"
	ReportUpdate{Status: &status, AssignedTo: &assignee}.Apply(&r, now)

	assert.Equal(t, StatusAssigned, r.Status)
	assert.Equal(t, "7", r.AssignedTo)
	assert.Equal(t, "Overflowing bin", r.Title)
	assert.Equal(t, PriorityMedium, r.Priority)
	assert.Equal(t, now, r.UpdatedAt)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusAssigned))
	assert.True(t, CanTransition(StatusAssigned, StatusInProgress))
	assert.True(t, CanTransition(StatusInProgress, StatusResolved))

	assert.False(t, CanTransition(StatusPending, StatusResolved))
	assert.False(t, CanTransition(StatusPending, StatusInProgress))
	assert.False(t, CanTransition(StatusResolved, StatusPending))
	assert.False(t, CanTransition(StatusAssigned, StatusPending))
	assert.False(t, CanTransition(StatusResolved, StatusResolved))
}
