package repository

import (
	"pharmacy-backend/internal/domain/entity"
	domainRepo "pharmacy-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	return db.Create(log).Error
}

func (r *auditLogRepository) FindByAction(db *gorm.DB, action string) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	err := db.Where("action = ?", action).Order("created_at DESC").Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
