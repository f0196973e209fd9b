package main

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prem-2323/CleanCity/pkg/middleware"
	"github.com/prem-2323/CleanCity/pkg/response"
	"github.com/prem-2323/CleanCity/services/report-service/models"
	"github.com/prem-2323/CleanCity/services/report-service/store"
)

// Default drop point used when the client sends no coordinates; a small
// jitter keeps map pins from stacking.
const (
	defaultLatitude  = 28.6139
	defaultLongitude = 77.2090
)

func (a *app) reportsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listReports(w, r)
	case http.MethodPost:
		a.createReport(w, r)
	default:
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", "")
	}
}

func queryFromRequest(r *http.Request) store.Query {
	q := r.URL.Query()
	return store.Query{
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		Search:   q.Get("search"),
		Sort:     q.Get("sort"),
	}
}

func (a *app) listReports(w http.ResponseWriter, r *http.Request) {
	reports := a.store.List(queryFromRequest(r))
	response.Success(w, http.StatusOK, "Reports fetched successfully", reports)
}

func (a *app) myReportsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	all := a.store.List(queryFromRequest(r))
	mine := make([]models.Report, 0, len(all))
	for _, rep := range all {
		if rep.ReportedBy == claims.UserID {
			mine = append(mine, rep)
		}
	}
	response.Success(w, http.StatusOK, "User reports fetched successfully", mine)
}

func (a *app) createReport(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	var input struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		WasteType   string  `json:"wasteType"`
		Address     string  `json:"address"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		PhotoURL    string  `json:"photoUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	if input.Title == "" || input.WasteType == "" {
		response.Error(w, http.StatusBadRequest, "Title and WasteType are required", "")
		return
	}
	wasteType := models.WasteType(input.WasteType)
	if !wasteType.Valid() {
		response.Error(w, http.StatusBadRequest, "Invalid waste type", input.WasteType)
		return
	}

	lat, lng := input.Latitude, input.Longitude
	if lat == 0 && lng == 0 {
		lat = defaultLatitude + rand.Float64()*0.01
		lng = defaultLongitude + rand.Float64()*0.01
	}

	now := time.Now().UTC()
	report := models.Report{
		ID:            uuid.New().String(),
		Title:         input.Title,
		Description:   input.Description,
		WasteType:     wasteType,
		Status:        models.StatusPending,
		Priority:      models.PriorityFor(wasteType),
		Address:       input.Address,
		Latitude:      lat,
		Longitude:     lng,
		PhotoURL:      input.PhotoURL,
		ReportedBy:    claims.UserID,
		AIConfidence:  rand.Intn(15) + 85,
		CreditsEarned: rand.Intn(30) + 15,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := a.store.Add(r.Context(), report); err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to save report", err.Error())
		return
	}
	middleware.CountReportCreated()
	log.Printf("[OK] Report created - ID: %s, Type: %s, Priority: %s", report.ID, report.WasteType, report.Priority)

	a.publishEvent(models.ReportEvent{
		Type:       "new_report",
		ReportID:   report.ID,
		Title:      report.Title,
		WasteType:  report.WasteType,
		Priority:   report.Priority,
		Status:     report.Status,
		ReportedBy: report.ReportedBy,
		Timestamp:  now,
	})

	response.Success(w, http.StatusCreated, "Report created successfully", report)
}

func (a *app) reportDetailHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/reports/")
	parts := strings.SplitN(rest, "/", 2)
	id := parts[0]
	if id == "" {
		response.Error(w, http.StatusBadRequest, "Missing report ID", "")
		return
	}

	if len(parts) == 2 {
		if r.Method != http.MethodPost {
			response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", "")
			return
		}
		switch parts[1] {
		case "assign":
			a.assignReport(w, r, id)
		case "progress":
			a.startProgress(w, r, id)
		case "complete":
			a.completeReport(w, r, id)
		default:
			response.Error(w, http.StatusNotFound, "Unknown action", parts[1])
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.getReport(w, id)
	case http.MethodPut:
		a.updateReport(w, r, id)
	default:
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", "")
	}
}

func (a *app) getReport(w http.ResponseWriter, id string) {
	report, ok := a.store.Get(id)
	if !ok {
		response.Error(w, http.StatusNotFound, "Report not found", "")
		return
	}
	response.Success(w, http.StatusOK, "Report fetched successfully", report)
}

func (a *app) updateReport(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || claims.Role != "admin" {
		response.Error(w, http.StatusForbidden, "Forbidden", "")
		return
	}

	var update models.ReportUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if update.Status != nil && !update.Status.Valid() {
		response.Error(w, http.StatusBadRequest, "Invalid status", string(*update.Status))
		return
	}
	if update.Priority != nil && !update.Priority.Valid() {
		response.Error(w, http.StatusBadRequest, "Invalid priority", string(*update.Priority))
		return
	}

	applied, err := a.store.Update(r.Context(), id, update)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to update report", err.Error())
		return
	}
	if !applied {
		response.Error(w, http.StatusNotFound, "Report not found", "")
		return
	}

	report, _ := a.store.Get(id)
	a.publishEvent(models.ReportEvent{
		Type:       "status_update",
		ReportID:   report.ID,
		Title:      report.Title,
		WasteType:  report.WasteType,
		Priority:   report.Priority,
		Status:     report.Status,
		ReportedBy: report.ReportedBy,
		AssignedTo: report.AssignedTo,
		Timestamp:  time.Now().UTC(),
	})
	response.Success(w, http.StatusOK, "Report updated successfully", report)
}

func (a *app) bulkUpdateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	var input struct {
		IDs     []string            `json:"ids"`
		Updates models.ReportUpdate `json:"updates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if len(input.IDs) == 0 {
		response.Error(w, http.StatusBadRequest, "IDs are required", "")
		return
	}
	if input.Updates.Status != nil && !input.Updates.Status.Valid() {
		response.Error(w, http.StatusBadRequest, "Invalid status", string(*input.Updates.Status))
		return
	}
	if input.Updates.Priority != nil && !input.Updates.Priority.Valid() {
		response.Error(w, http.StatusBadRequest, "Invalid priority", string(*input.Updates.Priority))
		return
	}

	updated, err := a.store.BulkUpdate(r.Context(), input.IDs, input.Updates)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to apply bulk update", err.Error())
		return
	}

	log.Printf("[OK] Bulk update applied to %d of %d reports", updated, len(input.IDs))
	response.Success(w, http.StatusOK, "Bulk update applied", map[string]int{"updated": updated})
}
