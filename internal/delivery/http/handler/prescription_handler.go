package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/usecase"
	"pharmacy-backend/pkg/response"
	"pharmacy-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type PrescriptionHandler struct {
	prescriptionUsecase usecase.PrescriptionUsecase
	validator           *validator.CustomValidator
}

func NewPrescriptionHandler(prescriptionUsecase usecase.PrescriptionUsecase, validator *validator.CustomValidator) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionUsecase: prescriptionUsecase,
		validator:           validator,
	}
}

// Create handles prescription creation
func (h *PrescriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.prescriptionUsecase.Create(r.Context(), &req)
	if err != nil {
		var drugErr *usecase.DrugNotFoundError
		switch {
		case errors.Is(err, usecase.ErrUnauthorizedDoctor):
			response.Forbidden(w, "Invalid or unauthorized doctor ID")
		case errors.As(err, &drugErr):
			response.Error(w, http.StatusBadRequest, drugErr.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create prescription")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Prescription created successfully", result)
}

// Get returns the full prescription view
func (h *PrescriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := prescriptionID(w, r)
	if !ok {
		return
	}

	result, err := h.prescriptionUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrPrescriptionNotFound:
			response.NotFound(w, "Prescription not found")
		default:
			response.InternalServerError(w, "Failed to get prescription")
		}
		return
	}

	response.Success(w, http.StatusOK, "Prescription retrieved successfully", result)
}

// UpdateStatus overwrites the prescription status
func (h *PrescriptionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := prescriptionID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.prescriptionUsecase.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrPrescriptionNotFound:
			response.NotFound(w, "Prescription not found")
		default:
			response.InternalServerError(w, "Failed to update prescription status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Prescription status updated successfully", result)
}

// GetLabels returns one dispensing label per prescribed drug
func (h *PrescriptionHandler) GetLabels(w http.ResponseWriter, r *http.Request) {
	id, ok := prescriptionID(w, r)
	if !ok {
		return
	}

	result, err := h.prescriptionUsecase.GenerateLabels(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrPrescriptionNotFound:
			response.NotFound(w, "Prescription not found")
		default:
			response.InternalServerError(w, "Failed to generate labels")
		}
		return
	}

	response.Success(w, http.StatusOK, "Labels generated successfully", result)
}

func prescriptionID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid prescription ID", nil)
		return 0, false
	}
	return uint(id), true
}
