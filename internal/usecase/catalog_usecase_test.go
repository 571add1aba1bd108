package usecase

import (
	"context"
	"testing"

	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndListDrugs(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	first, err := env.catalog.Add(ctx, &dto.CreateDrugRequest{
		Name:         "Amoxicillin",
		Strength:     "250mg",
		Instructions: "Take one tablet every 8 hours",
		Warnings:     "May cause allergic reaction.",
	})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, "Amoxicillin", first.Name)

	second, err := env.catalog.Add(ctx, &dto.CreateDrugRequest{
		Name:         "Lisinopril",
		Strength:     "10mg",
		Instructions: "Take one tablet daily",
		Warnings:     "Monitor blood pressure.",
	})
	require.NoError(t, err)

	drugs, err := env.catalog.List(ctx)
	require.NoError(t, err)
	require.Len(t, drugs, 2)
	assert.Equal(t, first.ID, drugs[0].ID)
	assert.Equal(t, second.ID, drugs[1].ID)

	// Additions are audited
	var audits []entity.AuditLog
	require.NoError(t, env.db.Where("action = ?", entity.AuditActionDrugCreate).Find(&audits).Error)
	assert.Len(t, audits, 2)
}

func TestAddDrugAllowsDuplicates(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	req := &dto.CreateDrugRequest{
		Name:         "Amoxicillin",
		Strength:     "250mg",
		Instructions: "Take one tablet every 8 hours",
		Warnings:     "May cause allergic reaction.",
	}

	first, err := env.catalog.Add(ctx, req)
	require.NoError(t, err)
	second, err := env.catalog.Add(ctx, req)
	require.NoError(t, err)

	// No uniqueness constraint on name/strength
	assert.NotEqual(t, first.ID, second.ID)

	drugs, err := env.catalog.List(ctx)
	require.NoError(t, err)
	assert.Len(t, drugs, 2)
}

func TestListDrugsEmptyCatalog(t *testing.T) {
	env := setupEnv(t)

	drugs, err := env.catalog.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, drugs)
}
