package store

import (
	"time"

	"github.com/prem-2323/CleanCity/services/report-service/models"
)

// SampleReports seeds a fresh deployment with a small, realistic dataset.
func SampleReports() []models.Report {
	return []models.Report{
		{
			ID: "1", Title: "Plastic waste near park", Description: "Large pile of plastic bags and bottles",
			WasteType: models.WastePlastic, Status: models.StatusPending, Priority: models.PriorityHigh,
			Latitude: 28.6139, Longitude: 77.2090, Address: "Central Park, Sector 12",
			ReportedBy: "citizen-1", AIConfidence: 94, CreditsEarned: 25,
			CreatedAt: time.Date(2026, 2, 17, 10, 30, 0, 0, time.UTC),
		},
		{
			ID: "2", Title: "Electronic waste dump", Description: "Old monitors and keyboards discarded",
			WasteType: models.WasteElectronic, Status: models.StatusAssigned, Priority: models.PriorityCritical,
			Latitude: 28.6200, Longitude: 77.2150, Address: "Industrial Area, Block C",
			ReportedBy: "citizen-1", AssignedTo: "1", AIConfidence: 89, CreditsEarned: 40,
			CreatedAt: time.Date(2026, 2, 16, 14, 0, 0, 0, time.UTC),
		},
		{
			ID: "3", Title: "Organic waste overflow", Description: "Garbage bin overflowing with food waste",
			WasteType: models.WasteOrganic, Status: models.StatusInProgress, Priority: models.PriorityMedium,
			Latitude: 28.6100, Longitude: 77.2050, Address: "Market Road, Lane 4",
			ReportedBy: "citizen-2", AssignedTo: "3", AIConfidence: 97, CreditsEarned: 15,
			CreatedAt: time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC),
		},
		{
			ID: "4", Title: "Hazardous chemical containers", Description: "Paint cans and chemical bottles",
			WasteType: models.WasteHazardous, Status: models.StatusResolved, Priority: models.PriorityCritical,
			Latitude: 28.6180, Longitude: 77.2120, Address: "Factory Road, Sector 8",
			ReportedBy: "citizen-2", AssignedTo: "2", AIConfidence: 91, CreditsEarned: 50,
			CreatedAt: time.Date(2026, 2, 14, 16, 45, 0, 0, time.UTC),
		},
		{
			ID: "5", Title: "Mixed waste on sidewalk", Description: "Various waste materials blocking walkway",
			WasteType: models.WasteMixed, Status: models.StatusPending, Priority: models.PriorityLow,
			Latitude: 28.6150, Longitude: 77.2080, Address: "Residential Block, Sector 15",
			ReportedBy: "citizen-3", AIConfidence: 85, CreditsEarned: 10,
			CreatedAt: time.Date(2026, 2, 13, 11, 20, 0, 0, time.UTC),
		},
	}
}
