package repository

import (
	"pharmacy-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByUsername(db *gorm.DB, username string) (*entity.User, error)
	FindDoctorByID(db *gorm.DB, id uint) (*entity.User, error)
}
