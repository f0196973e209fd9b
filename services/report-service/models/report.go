package models

import "time"

type WasteType string

const (
	WastePlastic    WasteType = "plastic"
	WasteOrganic    WasteType = "organic"
	WasteHazardous  WasteType = "hazardous"
	WasteElectronic WasteType = "electronic"
	WasteMixed      WasteType = "mixed"
)

func (w WasteType) Valid() bool {
	switch w {
	case WastePlastic, WasteOrganic, WasteHazardous, WasteElectronic, WasteMixed:
		return true
	}
	return false
}

type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusAssigned   ReportStatus = "assigned"
	StatusInProgress ReportStatus = "in_progress"
	StatusResolved   ReportStatus = "resolved"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

type ReportPriority string

const (
	PriorityLow      ReportPriority = "low"
	PriorityMedium   ReportPriority = "medium"
	PriorityHigh     ReportPriority = "high"
	PriorityCritical ReportPriority = "critical"
)

func (p ReportPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Rank orders priorities for sorting, most urgent first.
func (p ReportPriority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// PriorityFor derives a report's priority from its waste type. It is
// computed once at creation and never recomputed afterwards.
func PriorityFor(w WasteType) ReportPriority {
	switch w {
	case WasteHazardous:
		return PriorityCritical
	case WasteElectronic:
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

type Report struct {
	ID            string         `json:"id" bson:"id"`
	Title         string         `json:"title" bson:"title"`
	Description   string         `json:"description" bson:"description"`
	WasteType     WasteType      `json:"wasteType" bson:"waste_type"`
	Status        ReportStatus   `json:"status" bson:"status"`
	Priority      ReportPriority `json:"priority" bson:"priority"`
	Address       string         `json:"address" bson:"address"`
	Latitude      float64        `json:"latitude" bson:"latitude"`
	Longitude     float64        `json:"longitude" bson:"longitude"`
	PhotoURL      string         `json:"photoUrl,omitempty" bson:"photo_url,omitempty"`
	AfterPhotoURL string         `json:"afterPhotoUrl,omitempty" bson:"after_photo_url,omitempty"`
	ReportedBy    string         `json:"reportedBy" bson:"reported_by"`
	AssignedTo    string         `json:"assignedTo,omitempty" bson:"assigned_to,omitempty"`
	AIConfidence  int            `json:"aiConfidence" bson:"ai_confidence"`
	CreditsEarned int            `json:"creditsEarned" bson:"credits_earned"`
	CreatedAt     time.Time      `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time      `json:"updatedAt" bson:"updated_at"`
}

// ReportUpdate is a partial update. Nil fields are left untouched.
type ReportUpdate struct {
	Title         *string         `json:"title,omitempty"`
	Description   *string         `json:"description,omitempty"`
	Status        *ReportStatus   `json:"status,omitempty"`
	Priority      *ReportPriority `json:"priority,omitempty"`
	Address       *string         `json:"address,omitempty"`
	AssignedTo    *string         `json:"assignedTo,omitempty"`
	AfterPhotoURL *string         `json:"afterPhotoUrl,omitempty"`
	CreditsEarned *int            `json:"creditsEarned,omitempty"`
}

// Apply merges the update into r and bumps UpdatedAt.
func (u ReportUpdate) Apply(r *Report, now time.Time) {
	if u.Title != nil {
		r.Title = *u.Title
	}
	if u.Description != nil {
		r.Description = *u.Description
	}
	if u.Status != nil {
		r.Status = *u.Status
	}
	if u.Priority != nil {
		r.Priority = *u.Priority
	}
	if u.Address != nil {
		r.Address = *u.Address
	}
	if u.AssignedTo != nil {
		r.AssignedTo = *u.AssignedTo
	}
	if u.AfterPhotoURL != nil {
		r.AfterPhotoURL = *u.AfterPhotoURL
	}
	if u.CreditsEarned != nil {
		r.CreditsEarned = *u.CreditsEarned
	}
	r.UpdatedAt = now
}

// CanTransition reports whether moving from one status to the next is a
// legal step in the pending -> assigned -> in_progress -> resolved chain.
func CanTransition(from, to ReportStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusAssigned
	case StatusAssigned:
		return to == StatusInProgress
	case StatusInProgress:
		return to == StatusResolved
	}
	return false
}

// ReportEvent is the message published to the queue when reports change.
type ReportEvent struct {
	Type       string         `json:"type"`
	ReportID   string         `json:"reportId"`
	Title      string         `json:"title"`
	WasteType  WasteType      `json:"wasteType"`
	Priority   ReportPriority `json:"priority"`
	Status     ReportStatus   `json:"status"`
	ReportedBy string         `json:"reportedBy"`
	AssignedTo string         `json:"assignedTo,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}
