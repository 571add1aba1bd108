package repository

import (
	"errors"

	"pharmacy-backend/internal/domain/entity"
	domainRepo "pharmacy-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Create(patient).Error
}

func (r *patientRepository) FindByFileNumber(db *gorm.DB, fileNumber string) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("file_number = ?", fileNumber).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}
