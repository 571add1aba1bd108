package database

import (
	"pharmacy-backend/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedDevelopmentData inserts a test doctor, a test pharmacist and a few
// catalog drugs when they are absent. Only called for development
// environments.
func SeedDevelopmentData(db *gorm.DB) error {
	users := []struct {
		username string
		password string
		role     string
	}{
		{"testdoctor", "password123", entity.RoleDoctor},
		{"testpharmacist", "pharmacypass", entity.RolePharmacist},
	}

	for _, u := range users {
		var count int64
		if err := db.Model(&entity.User{}).Where("username = ?", u.username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := db.Create(&entity.User{
			Username:     u.username,
			PasswordHash: string(hashed),
			Role:         u.role,
		}).Error; err != nil {
			return err
		}
		logrus.Infof("Seeded user %s (%s)", u.username, u.role)
	}

	drugs := []entity.Drug{
		{Name: "Amoxicillin", Strength: "250mg", Instructions: "Take one tablet every 8 hours", Warnings: "May cause allergic reaction."},
		{Name: "Lisinopril", Strength: "10mg", Instructions: "Take one tablet daily", Warnings: "Monitor blood pressure."},
		{Name: "Metformin", Strength: "500mg", Instructions: "Take one tablet twice daily with meals", Warnings: "May cause gastrointestinal upset."},
	}

	for _, d := range drugs {
		var count int64
		if err := db.Model(&entity.Drug{}).Where("name = ?", d.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&d).Error; err != nil {
			return err
		}
		logrus.Infof("Seeded drug %s %s", d.Name, d.Strength)
	}

	return nil
}
