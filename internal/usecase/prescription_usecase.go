package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pharmacy-backend/internal/converter"
	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/domain/entity"
	"pharmacy-backend/internal/domain/repository"
	"pharmacy-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrUnauthorizedDoctor   = errors.New("invalid or unauthorized doctor ID")
)

// DrugNotFoundError identifies the specific drug id that failed to resolve
// during prescription creation.
type DrugNotFoundError struct {
	DrugID uint
}

func (e *DrugNotFoundError) Error() string {
	return fmt.Sprintf("drug with ID %d not found", e.DrugID)
}

type PrescriptionUsecase interface {
	Create(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.CreatePrescriptionResponse, error)
	Get(ctx context.Context, id uint) (*dto.PrescriptionResponse, error)
	UpdateStatus(ctx context.Context, id uint, req *dto.UpdateStatusRequest) (*dto.PrescriptionResponse, error)
	GenerateLabels(ctx context.Context, id uint) (*dto.LabelsResponse, error)
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	patientRepo      repository.PatientRepository
	drugRepo         repository.DrugRepository
	prescriptionRepo repository.PrescriptionRepository
	auditService     service.AuditService
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	drugRepo repository.DrugRepository,
	prescriptionRepo repository.PrescriptionRepository,
	auditService service.AuditService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		patientRepo:      patientRepo,
		drugRepo:         drugRepo,
		prescriptionRepo: prescriptionRepo,
		auditService:     auditService,
	}
}

// Create issues a new prescription.
//
// Flow:
// 1. Resolve the doctor (must exist with role doctor)
// 2. Find or create the patient by file number, committed on its own
// 3. Validate every drug id, failing on the first missing one
// 4. Insert prescription + association rows in a single transaction
//
// The patient write in step 2 is intentionally outside the prescription
// transaction: a failure in step 4 leaves the new patient behind. Patients
// are idempotently reusable by file number, so the orphan is harmless and
// matches how the system has always behaved.
func (u *prescriptionUsecase) Create(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.CreatePrescriptionResponse, error) {
	db := u.db.WithContext(ctx)

	// Step 1: Resolve doctor
	doctor, err := u.userRepo.FindDoctorByID(db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to look up doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrUnauthorizedDoctor
	}

	// Step 2: Find or create patient
	patient, err := u.resolvePatient(db, req.PatientName, req.PatientFileNumber)
	if err != nil {
		return nil, err
	}

	// Step 3: Validate drugs, short-circuiting on the first missing id
	associations := make([]entity.PrescriptionDrug, len(req.DrugIDs))
	for i, drugID := range req.DrugIDs {
		drug, err := u.drugRepo.FindByID(db, drugID)
		if err != nil {
			u.log.Warnf("Failed to look up drug %d: %+v", drugID, err)
			return nil, err
		}
		if drug == nil {
			return nil, &DrugNotFoundError{DrugID: drugID}
		}
		associations[i] = entity.PrescriptionDrug{
			DrugID:   drugID,
			Position: i,
		}
	}

	// Step 4: Commit prescription + associations atomically
	prescription := &entity.Prescription{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Status:    entity.StatusPending,
		CreatedAt: time.Now().UTC(),
		Drugs:     associations,
	}

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.prescriptionRepo.Create(tx, prescription); err != nil {
		u.log.Errorf("Failed to create prescription: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(tx, &doctor.ID, entity.AuditActionPrescriptionCreate, entity.JSON{
		"prescription_id": prescription.ID,
		"patient_id":      patient.ID,
		"drug_count":      len(req.DrugIDs),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit prescription: %+v", err)
		return nil, err
	}

	u.log.Infof("Prescription created: id=%d, patient=%d, doctor=%d, drugs=%d",
		prescription.ID, patient.ID, doctor.ID, len(req.DrugIDs))

	return &dto.CreatePrescriptionResponse{
		PrescriptionID: prescription.ID,
		Status:         prescription.Status,
		CreatedAt:      prescription.CreatedAt,
	}, nil
}

// resolvePatient looks up a patient by file number, creating the record when
// unseen. The insert is durable before the caller proceeds. Two requests
// racing to create the same file number both succeed: the loser of the
// unique-index race re-fetches the winner's row instead of failing.
func (u *prescriptionUsecase) resolvePatient(db *gorm.DB, name, fileNumber string) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByFileNumber(db, fileNumber)
	if err != nil {
		u.log.Warnf("Failed to look up patient %s: %+v", fileNumber, err)
		return nil, err
	}
	if patient != nil {
		return patient, nil
	}

	patient = &entity.Patient{
		Name:       name,
		FileNumber: fileNumber,
	}
	if err := u.patientRepo.Create(db, patient); err != nil {
		if isUniqueViolation(err, "file_number") {
			existing, findErr := u.patientRepo.FindByFileNumber(db, fileNumber)
			if findErr != nil {
				u.log.Warnf("Failed to re-fetch patient %s after duplicate insert: %+v", fileNumber, findErr)
				return nil, findErr
			}
			if existing != nil {
				return existing, nil
			}
		}
		u.log.Errorf("Failed to create patient %s: %+v", fileNumber, err)
		return nil, err
	}

	u.log.Infof("Patient created: id=%d, file_number=%s", patient.ID, fileNumber)
	return patient, nil
}

func (u *prescriptionUsecase) Get(ctx context.Context, id uint) (*dto.PrescriptionResponse, error) {
	prescription, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find prescription %d: %+v", id, err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	return converter.PrescriptionToResponse(prescription), nil
}

// UpdateStatus overwrites the status unconditionally. Any non-empty string
// is accepted; there is no transition graph. Handlers enforce non-emptiness.
func (u *prescriptionUsecase) UpdateStatus(ctx context.Context, id uint, req *dto.UpdateStatusRequest) (*dto.PrescriptionResponse, error) {
	db := u.db.WithContext(ctx)

	prescription, err := u.prescriptionRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find prescription %d: %+v", id, err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.prescriptionRepo.UpdateStatus(tx, id, req.Status); err != nil {
		u.log.Errorf("Failed to update prescription %d status: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogAction(tx, nil, entity.AuditActionStatusUpdate, entity.JSON{
		"prescription_id": id,
		"old_status":      prescription.Status,
		"new_status":      req.Status,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit status update for prescription %d: %+v", id, err)
		return nil, err
	}

	prescription.Status = req.Status
	return converter.PrescriptionToResponse(prescription), nil
}

// GenerateLabels renders one dispensing label per association row, in
// position order. The label carries the date of generation, not the
// prescription's creation date.
func (u *prescriptionUsecase) GenerateLabels(ctx context.Context, id uint) (*dto.LabelsResponse, error) {
	prescription, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find prescription %d: %+v", id, err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	today := time.Now().UTC().Format("2006-01-02")
	labels := make([]string, len(prescription.Drugs))
	for i, assoc := range prescription.Drugs {
		labels[i] = fmt.Sprintf(
			"name of patient: %s\nfile number: %s\ndrug name: %s\nstrength: %s\ninstructions: %s\nwarning: %s\ndate: %s",
			prescription.Patient.Name,
			prescription.Patient.FileNumber,
			assoc.Drug.Name,
			assoc.Drug.Strength,
			assoc.Drug.Instructions,
			assoc.Drug.Warnings,
			today,
		)
	}

	return &dto.LabelsResponse{
		PrescriptionID: prescription.ID,
		Labels:         labels,
	}, nil
}
