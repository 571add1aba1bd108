package handler

import (
	"net/http"

	"pharmacy-backend/internal/usecase"
	"pharmacy-backend/pkg/response"
)

type DashboardHandler struct {
	reportUsecase usecase.ReportUsecase
}

func NewDashboardHandler(reportUsecase usecase.ReportUsecase) *DashboardHandler {
	return &DashboardHandler{reportUsecase: reportUsecase}
}

// Notifications returns the pending-prescription digest, newest first
func (h *DashboardHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.reportUsecase.PendingNotifications(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get notifications")
		return
	}

	response.Success(w, http.StatusOK, "Notifications retrieved successfully", notifications)
}

// DrugStatistics returns prescription counts per drug name
func (h *DashboardHandler) DrugStatistics(w http.ResponseWriter, r *http.Request) {
	statistics, err := h.reportUsecase.DrugPrescriptionCounts(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get drug statistics")
		return
	}

	response.Success(w, http.StatusOK, "Drug statistics retrieved successfully", statistics)
}
