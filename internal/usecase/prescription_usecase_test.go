package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/domain/entity"
	domainRepo "pharmacy-backend/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreatePrescription(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	doctor := createUser(t, env.db, "drsmith", "secret123", entity.RoleDoctor)
	d1 := createDrug(t, env.db, "Amoxicillin", "250mg")
	d2 := createDrug(t, env.db, "Lisinopril", "10mg")

	result, err := env.prescriptions.Create(ctx, &dto.CreatePrescriptionRequest{
		PatientName:       "Jane Smith",
		PatientFileNumber: "JS001",
		DoctorID:          doctor.ID,
		DrugIDs:           []uint{d1.ID, d2.ID},
	})
	require.NoError(t, err)

	assert.NotZero(t, result.PrescriptionID)
	assert.Equal(t, entity.StatusPending, result.Status)
	assert.WithinDuration(t, time.Now().UTC(), result.CreatedAt, time.Minute)

	// Round-trip: the stored view matches the creation input exactly
	view, err := env.prescriptions.Get(ctx, result.PrescriptionID)
	require.NoError(t, err)

	assert.Equal(t, "Jane Smith", view.Patient.Name)
	assert.Equal(t, "JS001", view.Patient.FileNumber)
	assert.Equal(t, doctor.ID, view.Doctor.ID)
	assert.Equal(t, "drsmith", view.Doctor.Username)
	assert.Equal(t, entity.StatusPending, view.Status)
	require.Len(t, view.PrescribedDrugs, 2)
	assert.Equal(t, d1.ID, view.PrescribedDrugs[0].ID)
	assert.Equal(t, d2.ID, view.PrescribedDrugs[1].ID)

	// Creation is audited with the prescribing doctor
	var audits []entity.AuditLog
	require.NoError(t, env.db.Where("action = ?", entity.AuditActionPrescriptionCreate).Find(&audits).Error)
	require.Len(t, audits, 1)
	require.NotNil(t, audits[0].UserID)
	assert.Equal(t, doctor.ID, *audits[0].UserID)
}

func TestCreatePrescriptionReusesPatientByFileNumber(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	doctor := createUser(t, env.db, "drsmith", "secret123", entity.RoleDoctor)
	drug := createDrug(t, env.db, "Metformin", "500mg")

	first, err := env.prescriptions.Create(ctx, &dto.CreatePrescriptionRequest{
		PatientName:       "Jane Smith",
		PatientFileNumber: "JS001",
		DoctorID:          doctor.ID,
		DrugIDs:           []uint{drug.ID},
	})
	require.NoError(t, err)

	// Same file number, different spelling of the name
	second, err := env.prescriptions.Create(ctx, &dto.CreatePrescriptionRequest{
		PatientName:       "Jane A. Smith",
		PatientFileNumber: "JS001",
		DoctorID:          doctor.ID,
		DrugIDs:           []uint{drug.ID},
	})
	require.NoError(t, err)

	firstView, err := env.prescriptions.Get(ctx, first.PrescriptionID)
	require.NoError(t, err)
	secondView, err := env.prescriptions.Get(ctx, second.PrescriptionID)
	require.NoError(t, err)

	assert.Equal(t, firstView.Patient.ID, secondView.Patient.ID)

	// The name recorded at first sight sticks
	assert.Equal(t, "Jane Smith", secondView.Patient.Name)

	var patientCount int64
	require.NoError(t, env.db.Model(&entity.Patient{}).Count(&patientCount).Error)
	assert.EqualValues(t, 1, patientCount)
}

func TestCreatePrescriptionRejectsNonDoctor(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	pharmacist := createUser(t, env.db, "pharma", "secret123", entity.RolePharmacist)
	drug := createDrug(t, env.db, "Amoxicillin", "250mg")

	for _, doctorID := range []uint{pharmacist.ID, 9999} {
		_, err := env.prescriptions.Create(ctx, &dto.CreatePrescriptionRequest{
			PatientName:       "Jane Smith",
			PatientFileNumber: "JS001",
			DoctorID:          doctorID,
			DrugIDs:           []uint{drug.ID},
		})
		assert.ErrorIs(t, err, ErrUnauthorizedDoctor)
	}

	var prescriptionCount int64
	require.NoError(t, env.db.Model(&entity.Prescription{}).Count(&prescriptionCount).Error)
	assert.Zero(t, prescriptionCount)
}

func TestCreatePrescriptionDrugNotFound(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	doctor := createUser(t, env.db, "drsmith", "secret123", entity.RoleDoctor)
	drug := createDrug(t, env.db, "Amoxicillin", "250mg")

	_, err := env.prescriptions.Create(ctx, &dto.CreatePrescriptionRequest{
		PatientName:       "Jane Smith",
		PatientFileNumber: "JS001",
		DoctorID:          doctor.ID,
		DrugIDs:           []uint{drug.ID, 4242, drug.ID},
	})
	require.Error(t, err)

	var drugErr *DrugNotFoundError
	require.ErrorAs(t, err, &drugErr)
	assert.EqualValues(t, 4242, drugErr.DrugID)
	assert.Equal(t, "drug with ID 4242 not found", drugErr.Error())

	// Nothing persisted even though other ids were valid
	var prescriptionCount, assocCount int64
	require.NoError(t, env.db.Model(&entity.Prescription{}).Count(&prescriptionCount).Error)
	require.NoError(t, env.db.Model(&entity.PrescriptionDrug{}).Count(&assocCount).Error)
	assert.Zero(t, prescriptionCount)
	assert.Zero(t, assocCount)

	// The patient write precedes drug validation and is not rolled back
	var patientCount int64
	require.NoError(t, env.db.Model(&entity.Patient{}).Count(&patientCount).Error)
	assert.EqualValues(t, 1, patientCount)
}

func TestCreatePrescriptionPreservesDuplicateDrugs(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	doctor := createUser(t, env.db, "drsmith", "secret123", entity.RoleDoctor)
	drug := createDrug(t, env.db, "Amoxicillin", "250mg")

	result, err := env.prescriptions.Create(ctx, &dto.CreatePrescriptionRequest{
		PatientName:       "Jane Smith",
		PatientFileNumber: "JS001",
		DoctorID:          doctor.ID,
		DrugIDs:           []uint{drug.ID, drug.ID},
	})
	require.NoError(t, err)

	view, err := env.prescriptions.Get(ctx, result.PrescriptionID)
	require.NoError(t, err)
	require.Len(t, view.PrescribedDrugs, 2)
	assert.Equal(t, drug.ID, view.PrescribedDrugs[0].ID)
	assert.Equal(t, drug.ID, view.PrescribedDrugs[1].ID)
}

// racingPatientRepository hides the patient on the first lookup so the
// usecase attempts an insert that collides with the existing row, as two
// concurrent requests for the same new file number would.
type racingPatientRepository struct {
	domainRepo.PatientRepository
	firstLookup bool
}

func (r *racingPatientRepository) FindByFileNumber(db *gorm.DB, fileNumber string) (*entity.Patient, error) {
	if !r.firstLookup {
		r.firstLookup = true
		return nil, nil
	}
	return r.PatientRepository.FindByFileNumber(db, fileNumber)
}

func TestCreatePrescriptionPatientCreationRace(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	doctor := createUser(t, env.db, "drsmith", "secret123", entity.RoleDoctor)
	drug := createDrug(t, env.db, "Amoxicillin", "250mg")

	existing := &entity.Patient{Name: "Jane Smith", FileNumber: "JS001"}
	require.NoError(t, env.db.Create(existing).Error)

	u := env.prescriptions.(*prescriptionUsecase)
	u.patientRepo = &racingPatientRepository{PatientRepository: u.patientRepo}

	result, err := env.prescriptions.Create(ctx, &dto.CreatePrescriptionRequest{
		PatientName:       "Jane A. Smith",
		PatientFileNumber: "JS001",
		DoctorID:          doctor.ID,
		DrugIDs:           []uint{drug.ID},
	})
	require.NoError(t, err)

	view, err := env.prescriptions.Get(ctx, result.PrescriptionID)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, view.Patient.ID)

	var patientCount int64
	require.NoError(t, env.db.Model(&entity.Patient{}).Count(&patientCount).Error)
	assert.EqualValues(t, 1, patientCount)
}

func TestUpdateStatus(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	doctor := createUser(t, env.db, "drsmith", "secret123", entity.RoleDoctor)
	drug := createDrug(t, env.db, "Amoxicillin", "250mg")

	created, err := env.prescriptions.Create(ctx, &dto.CreatePrescriptionRequest{
		PatientName:       "Jane Smith",
		PatientFileNumber: "JS001",
		DoctorID:          doctor.ID,
		DrugIDs:           []uint{drug.ID},
	})
	require.NoError(t, err)

	updated, err := env.prescriptions.UpdateStatus(ctx, created.PrescriptionID, &dto.UpdateStatusRequest{
		Status: entity.StatusPreparing,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPreparing, updated.Status)

	view, err := env.prescriptions.Get(ctx, created.PrescriptionID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPreparing, view.Status)

	// No transition graph: arbitrary strings are accepted
	updated, err = env.prescriptions.UpdateStatus(ctx, created.PrescriptionID, &dto.UpdateStatusRequest{
		Status: "on-hold",
	})
	require.NoError(t, err)
	assert.Equal(t, "on-hold", updated.Status)

	// Idempotent: re-setting the current value succeeds and changes nothing
	updated, err = env.prescriptions.UpdateStatus(ctx, created.PrescriptionID, &dto.UpdateStatusRequest{
		Status: "on-hold",
	})
	require.NoError(t, err)
	assert.Equal(t, "on-hold", updated.Status)
}

func TestUpdateStatusNotFound(t *testing.T) {
	env := setupEnv(t)

	_, err := env.prescriptions.UpdateStatus(context.Background(), 123, &dto.UpdateStatusRequest{
		Status: entity.StatusReady,
	})
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)
}

func TestGetPrescriptionNotFound(t *testing.T) {
	env := setupEnv(t)

	_, err := env.prescriptions.Get(context.Background(), 123)
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)
}

func TestGenerateLabels(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	doctor := createUser(t, env.db, "drsmith", "secret123", entity.RoleDoctor)
	d1 := createDrug(t, env.db, "Amoxicillin", "250mg")
	d2 := createDrug(t, env.db, "Lisinopril", "10mg")

	created, err := env.prescriptions.Create(ctx, &dto.CreatePrescriptionRequest{
		PatientName:       "Jane Smith",
		PatientFileNumber: "JS001",
		DoctorID:          doctor.ID,
		DrugIDs:           []uint{d1.ID, d2.ID},
	})
	require.NoError(t, err)

	result, err := env.prescriptions.GenerateLabels(ctx, created.PrescriptionID)
	require.NoError(t, err)

	require.Len(t, result.Labels, 2)
	today := time.Now().UTC().Format("2006-01-02")

	assert.Equal(t, fmt.Sprintf(
		"name of patient: Jane Smith\nfile number: JS001\ndrug name: Amoxicillin\nstrength: 250mg\ninstructions: Take as directed\nwarning: Keep out of reach of children\ndate: %s",
		today,
	), result.Labels[0])
	assert.Contains(t, result.Labels[1], "drug name: Lisinopril")
	assert.Contains(t, result.Labels[1], "strength: 10mg")
}

func TestGenerateLabelsNotFound(t *testing.T) {
	env := setupEnv(t)

	_, err := env.prescriptions.GenerateLabels(context.Background(), 123)
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)
}
