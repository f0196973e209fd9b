package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prem-2323/CleanCity/services/report-service/models"
)

func TestRouteForWasteType(t *testing.T) {
	assert.Equal(t, "HAZMAT RESPONSE UNIT", routeForWasteType(models.WasteHazardous))
	assert.Equal(t, "E-WASTE RECYCLING CENTER", routeForWasteType(models.WasteElectronic))
	assert.Equal(t, "SANITATION DEPARTMENT", routeForWasteType(models.WastePlastic))
	assert.Equal(t, "SANITATION DEPARTMENT", routeForWasteType(models.WasteOrganic))
	assert.Equal(t, "GENERAL WASTE COLLECTION", routeForWasteType(models.WasteMixed))
}

func TestHandleRequestsAssignmentForNewReports(t *testing.T) {
	var mu sync.Mutex
	var bodies []map[string]string
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/internal/assign", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		var body map[string]string
		_ = json.Unmarshal(raw, &body)
		mu.Lock()
		bodies = append(bodies, body)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer stub.Close()

	d := &dispatcher{reportURL: stub.URL, client: &http.Client{Timeout: time.Second}}

	d.handle(models.ReportEvent{Type: "new_report", ReportID: "r-1", WasteType: models.WasteHazardous})

	// status updates pass through without triggering assignment
	d.handle(models.ReportEvent{Type: "status_update", ReportID: "r-2"})

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 1)
	assert.Equal(t, "r-1", bodies[0]["reportId"])
}
