package repository

import (
	"pharmacy-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByFileNumber(db *gorm.DB, fileNumber string) (*entity.Patient, error)
}
