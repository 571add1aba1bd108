package dto

import (
	"time"
)

// Response DTOs

// NotificationResponse is one pending-prescription digest entry
type NotificationResponse struct {
	ID          uint      `json:"id"`
	PatientName string    `json:"patient_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// DrugStatisticsResponse maps drug name to the number of distinct
// prescriptions referencing that drug.
type DrugStatisticsResponse map[string]int64
