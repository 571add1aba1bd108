package usecase

import (
	"context"
	"errors"

	"pharmacy-backend/internal/converter"
	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/domain/entity"
	"pharmacy-backend/internal/domain/repository"
	"pharmacy-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CatalogUsecase interface {
	List(ctx context.Context) ([]dto.DrugResponse, error)
	Add(ctx context.Context, req *dto.CreateDrugRequest) (*dto.DrugResponse, error)
}

type catalogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	drugRepo     repository.DrugRepository
	cache        *service.CatalogCache
	auditService service.AuditService
}

func NewCatalogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	drugRepo repository.DrugRepository,
	cache *service.CatalogCache,
	auditService service.AuditService,
) CatalogUsecase {
	return &catalogUsecase{
		db:           db,
		log:          log,
		drugRepo:     drugRepo,
		cache:        cache,
		auditService: auditService,
	}
}

// List returns the whole catalog, serving from Redis when cached. Cache
// errors degrade to a database read.
func (u *catalogUsecase) List(ctx context.Context) ([]dto.DrugResponse, error) {
	cached, err := u.cache.GetDrugs(ctx)
	if err == nil {
		return converter.DrugsToResponses(cached), nil
	}
	if !errors.Is(err, service.ErrCacheMiss) {
		u.log.Warnf("Catalog cache read failed (non-fatal), falling back to DB: %+v", err)
	}

	drugs, err := u.drugRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list drugs: %+v", err)
		return nil, err
	}

	u.cache.SetDrugs(ctx, drugs)
	return converter.DrugsToResponses(drugs), nil
}

// Add inserts a catalog entry. There is deliberately no duplicate check:
// the same name/strength pair may exist more than once.
func (u *catalogUsecase) Add(ctx context.Context, req *dto.CreateDrugRequest) (*dto.DrugResponse, error) {
	drug := &entity.Drug{
		Name:         req.Name,
		Strength:     req.Strength,
		Instructions: req.Instructions,
		Warnings:     req.Warnings,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.drugRepo.Create(tx, drug); err != nil {
		u.log.Errorf("Failed to create drug: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(tx, nil, entity.AuditActionDrugCreate, entity.JSON{
		"drug_id":  drug.ID,
		"name":     drug.Name,
		"strength": drug.Strength,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit drug: %+v", err)
		return nil, err
	}

	u.cache.Invalidate(ctx)

	return converter.DrugToResponse(drug), nil
}
