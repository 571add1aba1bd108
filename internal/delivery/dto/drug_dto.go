package dto

// Request DTOs

type CreateDrugRequest struct {
	Name         string `json:"name" validate:"required"`
	Strength     string `json:"strength" validate:"required"`
	Instructions string `json:"instructions" validate:"required"`
	Warnings     string `json:"warnings" validate:"required"`
}

// Response DTOs

type DrugResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Strength     string `json:"strength"`
	Instructions string `json:"instructions"`
	Warnings     string `json:"warnings"`
}
