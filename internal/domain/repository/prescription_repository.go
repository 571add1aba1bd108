package repository

import (
	"pharmacy-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(db *gorm.DB, prescription *entity.Prescription) error
	FindByID(db *gorm.DB, id uint) (*entity.Prescription, error)
	UpdateStatus(db *gorm.DB, id uint, status string) error
	FindByStatus(db *gorm.DB, status string) ([]entity.Prescription, error)
}
