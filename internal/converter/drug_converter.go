package converter

import (
	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/domain/entity"
)

// DrugToResponse converts a Drug entity to DrugResponse DTO
func DrugToResponse(drug *entity.Drug) *dto.DrugResponse {
	if drug == nil {
		return nil
	}

	return &dto.DrugResponse{
		ID:           drug.ID,
		Name:         drug.Name,
		Strength:     drug.Strength,
		Instructions: drug.Instructions,
		Warnings:     drug.Warnings,
	}
}

// DrugsToResponses converts a slice of Drug entities to DrugResponse DTOs
func DrugsToResponses(drugs []entity.Drug) []dto.DrugResponse {
	responses := make([]dto.DrugResponse, len(drugs))
	for i, drug := range drugs {
		responses[i] = *DrugToResponse(&drug)
	}
	return responses
}
