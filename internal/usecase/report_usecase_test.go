package usecase

import (
	"context"
	"testing"
	"time"

	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrugPrescriptionCounts(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	doctor := createUser(t, env.db, "drsmith", "secret123", entity.RoleDoctor)
	d1 := createDrug(t, env.db, "Amoxicillin", "250mg")
	d2 := createDrug(t, env.db, "Lisinopril", "10mg")
	createDrug(t, env.db, "Metformin", "500mg")

	// P1 = {d1, d2}, P2 = {d1}
	_, err := env.prescriptions.Create(ctx, &dto.CreatePrescriptionRequest{
		PatientName:       "Jane Smith",
		PatientFileNumber: "JS001",
		DoctorID:          doctor.ID,
		DrugIDs:           []uint{d1.ID, d2.ID},
	})
	require.NoError(t, err)

	_, err = env.prescriptions.Create(ctx, &dto.CreatePrescriptionRequest{
		PatientName:       "John Doe",
		PatientFileNumber: "JD002",
		DoctorID:          doctor.ID,
		DrugIDs:           []uint{d1.ID},
	})
	require.NoError(t, err)

	statistics, err := env.reports.DrugPrescriptionCounts(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 2, statistics["Amoxicillin"])
	assert.EqualValues(t, 1, statistics["Lisinopril"])
	assert.EqualValues(t, 0, statistics["Metformin"])
	assert.Len(t, statistics, 3)
}

func TestDrugPrescriptionCountsDeduplicatesRepeatedDrug(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	doctor := createUser(t, env.db, "drsmith", "secret123", entity.RoleDoctor)
	drug := createDrug(t, env.db, "Amoxicillin", "250mg")

	// The same drug twice on one prescription counts as one prescription
	_, err := env.prescriptions.Create(ctx, &dto.CreatePrescriptionRequest{
		PatientName:       "Jane Smith",
		PatientFileNumber: "JS001",
		DoctorID:          doctor.ID,
		DrugIDs:           []uint{drug.ID, drug.ID},
	})
	require.NoError(t, err)

	statistics, err := env.reports.DrugPrescriptionCounts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, statistics["Amoxicillin"])
}

func TestDrugPrescriptionCountsMergesSharedNames(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	doctor := createUser(t, env.db, "drsmith", "secret123", entity.RoleDoctor)
	lowDose := createDrug(t, env.db, "Amoxicillin", "250mg")
	createDrug(t, env.db, "Amoxicillin", "500mg")

	_, err := env.prescriptions.Create(ctx, &dto.CreatePrescriptionRequest{
		PatientName:       "Jane Smith",
		PatientFileNumber: "JS001",
		DoctorID:          doctor.ID,
		DrugIDs:           []uint{lowDose.ID},
	})
	require.NoError(t, err)

	// Name-keyed output: the two catalog entries collapse into one key and
	// the later entry's count wins
	statistics, err := env.reports.DrugPrescriptionCounts(ctx)
	require.NoError(t, err)
	assert.Len(t, statistics, 1)
	assert.EqualValues(t, 0, statistics["Amoxicillin"])
}

func TestPendingNotifications(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	doctor := createUser(t, env.db, "drsmith", "secret123", entity.RoleDoctor)
	patient := &entity.Patient{Name: "Jane Smith", FileNumber: "JS001"}
	require.NoError(t, env.db.Create(patient).Error)

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	oldest := &entity.Prescription{PatientID: patient.ID, DoctorID: doctor.ID, Status: entity.StatusPending, CreatedAt: base}
	middle := &entity.Prescription{PatientID: patient.ID, DoctorID: doctor.ID, Status: entity.StatusPending, CreatedAt: base.Add(time.Hour)}
	newest := &entity.Prescription{PatientID: patient.ID, DoctorID: doctor.ID, Status: entity.StatusPending, CreatedAt: base.Add(2 * time.Hour)}
	dispensed := &entity.Prescription{PatientID: patient.ID, DoctorID: doctor.ID, Status: entity.StatusDispensed, CreatedAt: base.Add(3 * time.Hour)}
	for _, p := range []*entity.Prescription{oldest, middle, newest, dispensed} {
		require.NoError(t, env.db.Create(p).Error)
	}

	notifications, err := env.reports.PendingNotifications(ctx)
	require.NoError(t, err)

	// Only pending entries, newest first
	require.Len(t, notifications, 3)
	assert.Equal(t, newest.ID, notifications[0].ID)
	assert.Equal(t, middle.ID, notifications[1].ID)
	assert.Equal(t, oldest.ID, notifications[2].ID)
	assert.Equal(t, "Jane Smith", notifications[0].PatientName)
	assert.True(t, notifications[0].CreatedAt.After(notifications[2].CreatedAt))
}

func TestPendingNotificationsEmpty(t *testing.T) {
	env := setupEnv(t)

	notifications, err := env.reports.PendingNotifications(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notifications)
}
