package repository

import (
	"pharmacy-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type DrugRepository interface {
	Create(db *gorm.DB, drug *entity.Drug) error
	FindByID(db *gorm.DB, id uint) (*entity.Drug, error)
	FindAll(db *gorm.DB) ([]entity.Drug, error)
	CountPrescriptionsByDrug(db *gorm.DB) (map[uint]int64, error)
}
