package usecase

import (
	"context"

	"pharmacy-backend/internal/converter"
	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/domain/entity"
	"pharmacy-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ReportUsecase interface {
	PendingNotifications(ctx context.Context) ([]dto.NotificationResponse, error)
	DrugPrescriptionCounts(ctx context.Context) (dto.DrugStatisticsResponse, error)
}

type reportUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	drugRepo         repository.DrugRepository
	prescriptionRepo repository.PrescriptionRepository
}

func NewReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	drugRepo repository.DrugRepository,
	prescriptionRepo repository.PrescriptionRepository,
) ReportUsecase {
	return &reportUsecase{
		db:               db,
		log:              log,
		drugRepo:         drugRepo,
		prescriptionRepo: prescriptionRepo,
	}
}

// PendingNotifications returns the pharmacist digest: every prescription
// whose status is exactly "pending", newest first.
func (u *reportUsecase) PendingNotifications(ctx context.Context) ([]dto.NotificationResponse, error) {
	pending, err := u.prescriptionRepo.FindByStatus(u.db.WithContext(ctx), entity.StatusPending)
	if err != nil {
		u.log.Warnf("Failed to list pending prescriptions: %+v", err)
		return nil, err
	}

	return converter.PrescriptionsToNotifications(pending), nil
}

// DrugPrescriptionCounts maps every catalog drug's name to the number of
// distinct prescriptions referencing it, zero included. The result is keyed
// by name, so two drugs sharing a name collapse to a single entry and the
// highest-id drug's count wins. This mirrors the established reporting
// output that downstream dashboards consume.
func (u *reportUsecase) DrugPrescriptionCounts(ctx context.Context) (dto.DrugStatisticsResponse, error) {
	db := u.db.WithContext(ctx)

	drugs, err := u.drugRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to list drugs: %+v", err)
		return nil, err
	}

	counts, err := u.drugRepo.CountPrescriptionsByDrug(db)
	if err != nil {
		u.log.Warnf("Failed to count prescriptions per drug: %+v", err)
		return nil, err
	}

	statistics := make(dto.DrugStatisticsResponse, len(drugs))
	for _, drug := range drugs {
		statistics[drug.Name] = counts[drug.ID]
	}
	return statistics, nil
}
