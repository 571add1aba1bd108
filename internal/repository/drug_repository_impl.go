package repository

import (
	"errors"

	"pharmacy-backend/internal/domain/entity"
	domainRepo "pharmacy-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type drugRepository struct{}

func NewDrugRepository() domainRepo.DrugRepository {
	return &drugRepository{}
}

func (r *drugRepository) Create(db *gorm.DB, drug *entity.Drug) error {
	return db.Create(drug).Error
}

func (r *drugRepository) FindByID(db *gorm.DB, id uint) (*entity.Drug, error) {
	var drug entity.Drug
	err := db.Where("id = ?", id).First(&drug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &drug, nil
}

func (r *drugRepository) FindAll(db *gorm.DB) ([]entity.Drug, error) {
	var drugs []entity.Drug
	err := db.Order("id ASC").Find(&drugs).Error
	if err != nil {
		return nil, err
	}
	return drugs, nil
}

// CountPrescriptionsByDrug counts, per drug id, how many distinct
// prescriptions reference it. Drugs with no prescriptions are absent from
// the result; callers treat missing ids as zero.
func (r *drugRepository) CountPrescriptionsByDrug(db *gorm.DB) (map[uint]int64, error) {
	type row struct {
		DrugID uint
		Total  int64
	}
	var rows []row
	err := db.Model(&entity.PrescriptionDrug{}).
		Select("drug_id, COUNT(DISTINCT prescription_id) AS total").
		Group("drug_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.DrugID] = r.Total
	}
	return counts, nil
}
