package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/prem-2323/CleanCity/pkg/middleware"
	"github.com/prem-2323/CleanCity/pkg/response"
	"github.com/prem-2323/CleanCity/services/report-service/models"
	"github.com/prem-2323/CleanCity/services/report-service/store"
)

func (a *app) adminReportsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}
	reports := a.store.List(queryFromRequest(r))
	response.Success(w, http.StatusOK, "Reports fetched successfully", map[string]interface{}{
		"total":   len(reports),
		"reports": reports,
	})
}

func (a *app) adminAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	reports := a.store.List(store.Query{})

	byStatus := map[models.ReportStatus]int{}
	byPriority := map[models.ReportPriority]int{}
	byWasteType := map[models.WasteType]int{}
	totalCredits := 0
	for _, rep := range reports {
		byStatus[rep.Status]++
		byPriority[rep.Priority]++
		byWasteType[rep.WasteType]++
		if rep.Status == models.StatusResolved {
			totalCredits += rep.CreditsEarned
		}
	}

	completionRate := 0.0
	if len(reports) > 0 {
		completionRate = float64(byStatus[models.StatusResolved]) / float64(len(reports))
	}

	eligibleStaff := 0
	leaderboard := a.staff.All()
	for _, m := range leaderboard {
		if m.Eligible() {
			eligibleStaff++
		}
	}
	sort.SliceStable(leaderboard, func(i, j int) bool {
		if leaderboard[i].TasksCompleted != leaderboard[j].TasksCompleted {
			return leaderboard[i].TasksCompleted > leaderboard[j].TasksCompleted
		}
		return leaderboard[i].Rating > leaderboard[j].Rating
	})

	response.Success(w, http.StatusOK, "Analytics computed", map[string]interface{}{
		"totalReports":   len(reports),
		"byStatus":       byStatus,
		"byPriority":     byPriority,
		"byWasteType":    byWasteType,
		"completionRate": completionRate,
		"creditsAwarded": totalCredits,
		"eligibleStaff":  eligibleStaff,
		"leaderboard":    leaderboard,
	})
}

// internalAssignHandler is called by the dispatcher after it routes a new
// report. An empty roster is a normal outcome and keeps the report pending.
func (a *app) internalAssignHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	var input struct {
		ReportID string `json:"reportId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if input.ReportID == "" {
		response.Error(w, http.StatusBadRequest, "ReportID is required", "")
		return
	}

	member, found := a.staff.SelectBest()
	if !found {
		log.Printf("[INFO] No staff available, report %s stays pending", input.ReportID)
		response.Success(w, http.StatusOK, "No staff available", map[string]interface{}{
			"assigned": false,
		})
		return
	}

	assignee := member.ID
	report, err := a.store.Transition(r.Context(), input.ReportID, models.StatusAssigned,
		models.ReportUpdate{AssignedTo: &assignee})
	if err != nil {
		writeTransitionError(w, err)
		return
	}
	middleware.CountAssignment("auto")
	log.Printf("[OK] Report %s auto-assigned to %s", report.ID, member.Name)

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
		"assigned": true,
		"report":   report,
		"staff":    member,
	})
}
