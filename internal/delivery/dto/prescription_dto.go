package dto

import (
	"time"
)

// Request DTOs

type CreatePrescriptionRequest struct {
	PatientName       string `json:"patient_name" validate:"required"`
	PatientFileNumber string `json:"patient_file_number" validate:"required"`
	DoctorID          uint   `json:"doctor_id" validate:"required"`
	DrugIDs           []uint `json:"drug_ids" validate:"required,min=1,dive,required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response DTOs

type CreatePrescriptionResponse struct {
	PrescriptionID uint      `json:"prescription_id"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type PatientSummary struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	FileNumber string `json:"file_number"`
}

type DoctorSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type PrescriptionResponse struct {
	ID              uint           `json:"id"`
	Patient         PatientSummary `json:"patient"`
	Doctor          DoctorSummary  `json:"doctor"`
	Status          string         `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	PrescribedDrugs []DrugResponse `json:"prescribed_drugs"`
}

type LabelsResponse struct {
	PrescriptionID uint     `json:"prescription_id"`
	Labels         []string `json:"labels"`
}
