// Package staff holds the cleanup crew directory and the auto-assignment
// selector. The directory is a static roster for now; the selector is a
// pure function so it can be reused by the dispatcher.
package staff

import "sort"

type Member struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Rating         float64 `json:"rating"`
	TasksCompleted int     `json:"tasksCompleted"`
	ActiveTasks    int     `json:"activeTasks"`
	MaxTasks       int     `json:"maxTasks"`
	Zone           string  `json:"zone"`
	Active         bool    `json:"active"`
}

// Workload is the member's current load as a fraction of capacity.
func (m Member) Workload() float64 {
	return float64(m.ActiveTasks) / float64(m.MaxTasks)
}

// Eligible reports whether the member can take another task.
func (m Member) Eligible() bool {
	return m.Active && m.ActiveTasks < m.MaxTasks
}

// SelectBest picks the eligible member with the lowest workload, breaking
// ties by the higher rating. The second return is false when nobody is
// eligible; that is a normal outcome, not an error.
func SelectBest(members []Member) (Member, bool) {
	eligible := make([]Member, 0, len(members))
	for _, m := range members {
		if m.Eligible() {
			eligible = append(eligible, m)
		}
	}
	if len(eligible) == 0 {
		return Member{}, false
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		wi, wj := eligible[i].Workload(), eligible[j].Workload()
		if wi != wj {
			return wi < wj
		}
		return eligible[i].Rating > eligible[j].Rating
	})
	return eligible[0], true
}

// Directory is the in-memory staff roster.
type Directory struct {
	members []Member
}

func NewDirectory(members []Member) *Directory {
	out := make([]Member, len(members))
	copy(out, members)
	return &Directory{members: out}
}

// All returns a copy of the roster.
func (d *Directory) All() []Member {
	out := make([]Member, len(d.members))
	copy(out, d.members)
	return out
}

// Get returns the member with the given id.
func (d *Directory) Get(id string) (Member, bool) {
	for _, m := range d.members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// SelectBest runs the selector over the roster.
func (d *Directory) SelectBest() (Member, bool) {
	return SelectBest(d.members)
}

// SampleStaff is the seeded roster used until staff management moves to
// its own service.
func SampleStaff() []Member {
	return []Member{
		{ID: "1", Name: "Arjun Patel", Rating: 4.8, TasksCompleted: 142, ActiveTasks: 3, MaxTasks: 8, Zone: "Zone A", Active: true},
		{ID: "2", Name: "Priya Sharma", Rating: 4.6, TasksCompleted: 128, ActiveTasks: 2, MaxTasks: 8, Zone: "Zone B", Active: true},
		{ID: "3", Name: "Rahul Kumar", Rating: 4.9, TasksCompleted: 167, ActiveTasks: 1, MaxTasks: 8, Zone: "Zone A", Active: true},
		{ID: "4", Name: "Sneha Reddy", Rating: 4.5, TasksCompleted: 95, ActiveTasks: 4, MaxTasks: 8, Zone: "Zone C", Active: false},
		{ID: "5", Name: "Vikram Singh", Rating: 4.7, TasksCompleted: 110, ActiveTasks: 2, MaxTasks: 8, Zone: "Zone B", Active: true},
	}
}
