package handler

import (
	"encoding/json"
	"net/http"

	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/usecase"
	"pharmacy-backend/pkg/response"
	"pharmacy-backend/pkg/validator"
)

type DrugHandler struct {
	catalogUsecase usecase.CatalogUsecase
	validator      *validator.CustomValidator
}

func NewDrugHandler(catalogUsecase usecase.CatalogUsecase, validator *validator.CustomValidator) *DrugHandler {
	return &DrugHandler{
		catalogUsecase: catalogUsecase,
		validator:      validator,
	}
}

// List returns the whole drug catalog
func (h *DrugHandler) List(w http.ResponseWriter, r *http.Request) {
	drugs, err := h.catalogUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list drugs")
		return
	}

	response.Success(w, http.StatusOK, "Drugs retrieved successfully", drugs)
}

// Add creates a new catalog entry
func (h *DrugHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDrugRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	drug, err := h.catalogUsecase.Add(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to add drug")
		return
	}

	response.Success(w, http.StatusCreated, "Drug added successfully", drug)
}
