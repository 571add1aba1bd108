package usecase

import (
	"io"
	"testing"

	"pharmacy-backend/internal/domain/entity"
	"pharmacy-backend/internal/repository"
	"pharmacy-backend/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory SQLite database with the full schema.
// A single pooled connection keeps the in-memory database alive for the
// whole test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Patient{},
		&entity.Drug{},
		&entity.Prescription{},
		&entity.PrescriptionDrug{},
		&entity.AuditLog{},
	))

	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type testEnv struct {
	db            *gorm.DB
	auth          AuthUsecase
	prescriptions PrescriptionUsecase
	catalog       CatalogUsecase
	reports       ReportUsecase
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	log := testLogger()

	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	drugRepo := repository.NewDrugRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(log, auditLogRepo)
	catalogCache := service.NewCatalogCache(log, nil)

	return &testEnv{
		db:            db,
		auth:          NewAuthUsecase(db, log, userRepo, auditService),
		prescriptions: NewPrescriptionUsecase(db, log, userRepo, patientRepo, drugRepo, prescriptionRepo, auditService),
		catalog:       NewCatalogUsecase(db, log, drugRepo, catalogCache, auditService),
		reports:       NewReportUsecase(db, log, drugRepo, prescriptionRepo),
	}
}

func createUser(t *testing.T, db *gorm.DB, username, password, role string) *entity.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{
		Username:     username,
		PasswordHash: string(hashed),
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createDrug(t *testing.T, db *gorm.DB, name, strength string) *entity.Drug {
	t.Helper()

	drug := &entity.Drug{
		Name:         name,
		Strength:     strength,
		Instructions: "Take as directed",
		Warnings:     "Keep out of reach of children",
	}
	require.NoError(t, db.Create(drug).Error)
	return drug
}
