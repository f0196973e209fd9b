// Package store keeps the authoritative in-memory report list and mirrors
// every mutation to a key/value snapshot. All access is serialized by a
// single mutex; persistence is a full rewrite of one blob per change.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/prem-2323/CleanCity/pkg/kv"
	"github.com/prem-2323/CleanCity/services/report-service/models"
)

const snapshotKey = "reports"

var (
	ErrDuplicateID       = errors.New("report id already exists")
	ErrNotFound          = errors.New("report not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type snapshot struct {
	Version int             `json:"version"`
	Reports []models.Report `json:"reports"`
}

type ReportStore struct {
	mu      sync.Mutex
	kv      kv.Store
	reports []models.Report
	version int
	now     func() time.Time
}

func New(store kv.Store) *ReportStore {
	return &ReportStore{kv: store, now: time.Now}
}

// Load reads the snapshot blob and hydrates the store. A missing or
// unreadable snapshot falls back to the seeded sample reports so the
// service always starts with a usable dataset.
func (s *ReportStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.kv.Get(ctx, snapshotKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Printf("[WARN] snapshot read failed, seeding samples: %v", err)
		}
		s.reports = SampleReports()
		s.version = 1
		return s.persistLocked(ctx)
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		log.Printf("[WARN] snapshot corrupted, seeding samples: %v", err)
		s.reports = SampleReports()
		s.version = 1
		return s.persistLocked(ctx)
	}

	s.reports = snap.Reports
	s.version = snap.Version
	return nil
}

// persistLocked writes the full snapshot. Callers hold s.mu. The in-memory
// state is already mutated when this runs; a write failure is returned to
// the caller but does not roll the memory back.
func (s *ReportStore) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(snapshot{Version: s.version, Reports: s.reports})
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := s.kv.Set(ctx, snapshotKey, raw); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	return nil
}

// Add inserts a new report at the head of the list.
func (s *ReportStore) Add(ctx context.Context, r models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reports {
		if s.reports[i].ID == r.ID {
			return ErrDuplicateID
		}
	}

	s.reports = append([]models.Report{r}, s.reports...)
	s.version++
	return s.persistLocked(ctx)
}

// Update applies a partial update to the report with the given id. An
// unknown id is a no-op: applied is false and err is nil.
func (s *ReportStore) Update(ctx context.Context, id string, u models.ReportUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return false, nil
	}

	u.Apply(&s.reports[idx], s.now())
	s.version++
	return true, s.persistLocked(ctx)
}

// BulkUpdate applies the same partial update to every matching id.
// Duplicate ids in the input collapse to one application, unknown ids are
// skipped, and the whole batch is persisted as a single snapshot write.
// It returns the number of reports actually updated.
func (s *ReportStore) BulkUpdate(ctx context.Context, ids []string, u models.ReportUpdate) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(ids))
	now := s.now()
	updated := 0
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		idx := s.indexOfLocked(id)
		if idx < 0 {
			continue
		}
		u.Apply(&s.reports[idx], now)
		updated++
	}

	if updated == 0 {
		return 0, nil
	}
	s.version++
	return updated, s.persistLocked(ctx)
}

// Transition moves a report one step along the
// pending -> assigned -> in_progress -> resolved chain, rejecting skips
// and backwards moves.
func (s *ReportStore) Transition(ctx context.Context, id string, to models.ReportStatus, u models.ReportUpdate) (models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return models.Report{}, ErrNotFound
	}
	if !models.CanTransition(s.reports[idx].Status, to) {
		return models.Report{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.reports[idx].Status, to)
	}

	u.Status = &to
	u.Apply(&s.reports[idx], s.now())
	s.version++
	return s.reports[idx], s.persistLocked(ctx)
}

// Get returns a copy of the report with the given id.
func (s *ReportStore) Get(id string) (models.Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return models.Report{}, false
	}
	return s.reports[idx], true
}

// List returns the reports matching the query, filtered then searched
// then sorted. The returned slice is a copy.
func (s *ReportStore) List(q Query) []models.Report {
	s.mu.Lock()
	out := make([]models.Report, len(s.reports))
	copy(out, s.reports)
	s.mu.Unlock()

	return q.Run(out)
}

// Version returns the snapshot version counter.
func (s *ReportStore) Version() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

func (s *ReportStore) indexOfLocked(id string) int {
	for i := range s.reports {
		if s.reports[i].ID == id {
			return i
		}
	}
	return -1
}
