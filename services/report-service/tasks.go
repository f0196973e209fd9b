package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prem-2323/CleanCity/pkg/middleware"
	"github.com/prem-2323/CleanCity/pkg/response"
	"github.com/prem-2323/CleanCity/services/report-service/models"
	"github.com/prem-2323/CleanCity/services/report-service/store"
)

const completionCredits = 30

// assignReport hands a pending report to a crew member. With a staffId in
// the body the choice is manual; without one the selector picks.
func (a *app) assignReport(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || claims.Role != "admin" {
		response.Error(w, http.StatusForbidden, "Forbidden", "")
		return
	}

	var input struct {
		StaffID string `json:"staffId"`
	}
	if r.Body != nil {
		// An empty body means auto-assign.
		_ = json.NewDecoder(r.Body).Decode(&input)
	}

	mode := "manual"
	member, found := a.staff.Get(input.StaffID)
	if input.StaffID == "" {
		mode = "auto"
		member, found = a.staff.SelectBest()
		if !found {
			response.Error(w, http.StatusConflict, "No staff available for assignment", "")
			return
		}
	} else if !found {
		response.Error(w, http.StatusBadRequest, "Unknown staff member", input.StaffID)
		return
	}

	assignee := member.ID
	report, err := a.store.Transition(r.Context(), id, models.StatusAssigned,
		models.ReportUpdate{AssignedTo: &assignee})
	if err != nil {
		writeTransitionError(w, err)
		return
	}
	middleware.CountAssignment(mode)
	log.Printf("[OK] Report %s assigned to %s (%s)", id, member.Name, mode)

	a.publishEvent(models.ReportEvent{
		Type:       "assignment",
		ReportID:   report.ID,
		Title:      report.Title,
		WasteType:  report.WasteType,
		Priority:   report.Priority,
		Status:     report.Status,
		ReportedBy: report.ReportedBy,
		AssignedTo: report.AssignedTo,
		Timestamp:  time.Now().UTC(),
	})
	response.Success(w, http.StatusOK, "Report assigned", map[string]interface{}{
		"report": report,
		"staff":  member,
		"mode":   mode,
	})
}

func (a *app) startProgress(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	current, exists := a.store.Get(id)
	if !exists {
		response.Error(w, http.StatusNotFound, "Report not found", "")
		return
	}
	if claims.Role != "admin" && current.AssignedTo != claims.UserID {
		response.Error(w, http.StatusForbidden, "Task is assigned to someone else", "")
		return
	}

	report, err := a.store.Transition(r.Context(), id, models.StatusInProgress, models.ReportUpdate{})
	if err != nil {
		writeTransitionError(w, err)
		return
	}

	a.publishStatusUpdate(report)
	response.Success(w, http.StatusOK, "Task started", report)
}

func (a *app) completeReport(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	current, exists := a.store.Get(id)
	if !exists {
		response.Error(w, http.StatusNotFound, "Report not found", "")
		return
	}
	if claims.Role != "admin" && current.AssignedTo != claims.UserID {
		response.Error(w, http.StatusForbidden, "Task is assigned to someone else", "")
		return
	}

	var input struct {
		AfterPhotoURL string `json:"afterPhotoUrl"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&input)
	}

	update := models.ReportUpdate{}
	if input.AfterPhotoURL != "" {
		update.AfterPhotoURL = &input.AfterPhotoURL
	}

	report, err := a.store.Transition(r.Context(), id, models.StatusResolved, update)
	if err != nil {
		writeTransitionError(w, err)
		return
	}
	log.Printf("[OK] Report %s resolved by %s", id, claims.UserID)

	// Credits are best-effort: the resolution stands even if the auth
	// service is unreachable.
	a.awardCredits(claims.UserID, completionCredits)
	if report.ReportedBy != "" {
		a.awardCredits(report.ReportedBy, report.CreditsEarned)
	}

	a.publishStatusUpdate(report)
	response.Success(w, http.StatusOK, "Task completed", report)
}

func (a *app) publishStatusUpdate(report models.Report) {
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
}

func (a *app) awardCredits(userID string, amount int) {
	if a.client == nil || amount <= 0 {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"userId": userID,
		"amount": amount,
	})
	resp, err := a.client.Post(a.authURL+"/internal/credits", "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Printf("[WARN] Failed to award %d credits to %s: %v", amount, userID, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("[WARN] Credit award for %s returned status %d", userID, resp.StatusCode)
	}
}

func (a *app) tasksHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	all := a.store.List(store.Query{Sort: store.SortPriority})
	tasks := make([]models.Report, 0)
	for _, rep := range all {
		if rep.Status != models.StatusAssigned && rep.Status != models.StatusInProgress {
			continue
		}
		if claims.Role == "admin" || rep.AssignedTo == claims.UserID {
			tasks = append(tasks, rep)
		}
	}
	response.Success(w, http.StatusOK, "Tasks fetched successfully", tasks)
}

func (a *app) staffHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}
	response.Success(w, http.StatusOK, "Staff fetched successfully", a.staff.All())
}

func (a *app) uploadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}
	if a.photos == nil {
		response.Error(w, http.StatusServiceUnavailable, "Photo storage is not available", "")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart payload", err.Error())
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Missing photo field", err.Error())
		return
	}
	defer file.Close()

	objectName := fmt.Sprintf("%d-%s", time.Now().UnixNano(), header.Filename)
	path, err := a.photos.Upload(r.Context(), objectName, file, header.Size,
		header.Header.Get("Content-Type"))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to store photo", err.Error())
		return
	}
	response.Success(w, http.StatusCreated, "Photo uploaded", map[string]string{"photoUrl": path})
}

func (a *app) healthHandler(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Report service healthy", map[string]int{
		"snapshotVersion": a.store.Version(),
	})
}

func writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Report not found", "")
	case errors.Is(err, store.ErrInvalidTransition):
		response.Error(w, http.StatusConflict, "Invalid status transition", err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "Failed to update report", err.Error())
	}
}
