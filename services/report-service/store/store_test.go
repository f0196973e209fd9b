package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prem-2323/CleanCity/pkg/kv"
	"github.com/prem-2323/CleanCity/services/report-service/models"
)

func newTestStore(t *testing.T) (*ReportStore, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	s := New(mem)
	require.NoError(t, s.Load(context.Background()))
	return s, mem
}

func strptr(s string) *string { return &s }

func statusptr(s models.ReportStatus) *models.ReportStatus { return &s }

func TestLoadSeedsSamplesWhenEmpty(t *testing.T) {
	s, mem := newTestStore(t)

	assert.Len(t, s.List(Query{}), 5)
	assert.Equal(t, 1, s.Version())
	// seeding writes the snapshot so the next boot reads it back
	assert.Equal(t, 1, mem.SetCalls)
}

func TestLoadFallsBackOnReadFailure(t *testing.T) {
	mem := kv.NewMemory()
	mem.FailGet = errors.New("connection reset")
	mem.FailSet = errors.New("connection reset")
	s := New(mem)

	// the store still comes up on sample data even when persistence is down
	err := s.Load(context.Background())
	assert.Error(t, err)
	assert.Len(t, s.List(Query{}), 5)
}

func TestLoadReadsExistingSnapshot(t *testing.T) {
	mem := kv.NewMemory()
	snap := snapshot{Version: 7, Reports: []models.Report{{ID: "42", Title: "Tyre dump", Status: models.StatusPending, Priority: models.PriorityMedium}}}
	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	require.NoError(t, mem.Set(context.Background(), "reports", raw))

	s := New(mem)
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, 7, s.Version())
	got := s.List(Query{})
	require.Len(t, got, 1)
	assert.Equal(t, "42", got[0].ID)
}

func TestAddPrependsAndPersists(t *testing.T) {
	s, mem := newTestStore(t)
	before := mem.SetCalls

	r := models.Report{ID: "100", Title: "Glass shards at bus stop", WasteType: models.WasteMixed,
		Status: models.StatusPending, Priority: models.PriorityFor(models.WasteMixed), CreatedAt: time.Now()}
	require.NoError(t, s.Add(context.Background(), r))

	got := s.List(Query{})
	require.Len(t, got, 6)
	assert.Equal(t, "100", got[0].ID)
	assert.Equal(t, before+1, mem.SetCalls)
	assert.Equal(t, 2, s.Version())
}

func TestAddRejectsDuplicateID(t *testing.T) {
	s, mem := newTestStore(t)
	before := mem.SetCalls

	err := s.Add(context.Background(), models.Report{ID: "1", Title: "Dup"})
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Len(t, s.List(Query{}), 5)
	assert.Equal(t, before, mem.SetCalls)
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	s, mem := newTestStore(t)
	before := mem.SetCalls

	applied, err := s.Update(context.Background(), "nope", models.ReportUpdate{Title: strptr("x")})
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, before, mem.SetCalls)
	assert.Equal(t, 1, s.Version())
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	s, _ := newTestStore(t)

	applied, err := s.Update(context.Background(), "5", models.ReportUpdate{
		Status:     statusptr(models.StatusAssigned),
		AssignedTo: strptr("2"),
	})
	require.NoError(t, err)
	assert.True(t, applied)

	r, ok := s.Get("5")
	require.True(t, ok)
	assert.Equal(t, models.StatusAssigned, r.Status)
	assert.Equal(t, "2", r.AssignedTo)
	assert.Equal(t, "Mixed waste on sidewalk", r.Title)
}

func TestUpdateSurfacesWriteErrorButKeepsMutation(t *testing.T) {
	s, mem := newTestStore(t)
	mem.FailSet = errors.New("disk full")

	applied, err := s.Update(context.Background(), "1", models.ReportUpdate{Title: strptr("changed")})
	assert.True(t, applied)
	assert.Error(t, err)

	r, _ := s.Get("1")
	assert.Equal(t, "changed", r.Title)
}

func TestBulkUpdate(t *testing.T) {
	s, mem := newTestStore(t)
	before := mem.SetCalls

	n, err := s.BulkUpdate(context.Background(),
		[]string{"1", "5", "1", "ghost"},
		models.ReportUpdate{Status: statusptr(models.StatusAssigned), AssignedTo: strptr("3")})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, id := range []string{"1", "5"} {
		r, ok := s.Get(id)
		require.True(t, ok)
		assert.Equal(t, models.StatusAssigned, r.Status)
		assert.Equal(t, "3", r.AssignedTo)
	}
	// one snapshot write for the whole batch
	assert.Equal(t, before+1, mem.SetCalls)
}

func TestBulkUpdateAllUnknownSkipsPersist(t *testing.T) {
	s, mem := newTestStore(t)
	before := mem.SetCalls

	n, err := s.BulkUpdate(context.Background(), []string{"x", "y"}, models.ReportUpdate{Title: strptr("t")})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, before, mem.SetCalls)
	assert.Equal(t, 1, s.Version())
}

func TestTransitionChain(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	r, err := s.Transition(ctx, "5", models.StatusAssigned, models.ReportUpdate{AssignedTo: strptr("1")})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, r.Status)

	r, err = s.Transition(ctx, "5", models.StatusInProgress, models.ReportUpdate{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, r.Status)

	r, err = s.Transition(ctx, "5", models.StatusResolved, models.ReportUpdate{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, r.Status)
}

func TestTransitionRejectsSkipsAndUnknown(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Transition(ctx, "5", models.StatusResolved, models.ReportUpdate{})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = s.Transition(ctx, "4", models.StatusAssigned, models.ReportUpdate{})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = s.Transition(ctx, "missing", models.StatusAssigned, models.ReportUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotRoundTrip(t *testing.T) {
	mem := kv.NewMemory()
	s := New(mem)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	require.NoError(t, s.Add(ctx, models.Report{ID: "99", Title: "Roadside debris",
		WasteType: models.WasteOrganic, Status: models.StatusPending,
		Priority: models.PriorityFor(models.WasteOrganic), CreatedAt: time.Now().UTC()}))

	reloaded := New(mem)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, s.Version(), reloaded.Version())
	assert.Equal(t, s.List(Query{Sort: SortOldest}), reloaded.List(Query{Sort: SortOldest}))
}
