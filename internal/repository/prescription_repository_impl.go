package repository

import (
	"errors"

	"pharmacy-backend/internal/domain/entity"
	domainRepo "pharmacy-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

// Create persists the prescription together with its association rows.
// GORM inserts the nested Drugs slice in the same statement batch, so inside
// a transaction the whole unit lands or none of it does.
func (r *prescriptionRepository) Create(db *gorm.DB, prescription *entity.Prescription) error {
	return db.Create(prescription).Error
}

func (r *prescriptionRepository) FindByID(db *gorm.DB, id uint) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := db.
		Preload("Patient").
		Preload("Doctor").
		Preload("Drugs", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Drugs.Drug").
		Where("id = ?", id).
		First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) UpdateStatus(db *gorm.DB, id uint, status string) error {
	return db.Model(&entity.Prescription{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *prescriptionRepository) FindByStatus(db *gorm.DB, status string) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := db.Preload("Patient").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}
