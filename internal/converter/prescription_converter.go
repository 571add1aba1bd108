package converter

import (
	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/domain/entity"
)

// PrescriptionToResponse converts a fully loaded Prescription entity to its
// response DTO. Association rows are expected preloaded in position order.
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	drugs := make([]dto.DrugResponse, len(prescription.Drugs))
	for i, assoc := range prescription.Drugs {
		drugs[i] = *DrugToResponse(&assoc.Drug)
	}

	return &dto.PrescriptionResponse{
		ID: prescription.ID,
		Patient: dto.PatientSummary{
			ID:         prescription.Patient.ID,
			Name:       prescription.Patient.Name,
			FileNumber: prescription.Patient.FileNumber,
		},
		Doctor: dto.DoctorSummary{
			ID:       prescription.Doctor.ID,
			Username: prescription.Doctor.Username,
		},
		Status:          prescription.Status,
		CreatedAt:       prescription.CreatedAt,
		PrescribedDrugs: drugs,
	}
}

// PrescriptionsToNotifications converts pending prescriptions to dashboard
// digest entries
func PrescriptionsToNotifications(prescriptions []entity.Prescription) []dto.NotificationResponse {
	notifications := make([]dto.NotificationResponse, len(prescriptions))
	for i, prescription := range prescriptions {
		notifications[i] = dto.NotificationResponse{
			ID:          prescription.ID,
			PatientName: prescription.Patient.Name,
			CreatedAt:   prescription.CreatedAt,
		}
	}
	return notifications
}
