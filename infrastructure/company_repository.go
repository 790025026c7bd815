package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"jobboard/domain"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Get(ctx context.Context, id uint) (*domain.Company, error) {
	var c domain.Company
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("get company %d: %w", id, err)
	}
	return &c, nil
}

// Create does not check for duplicate names.
func (r *CompanyRepository) Create(ctx context.Context, c *domain.Company) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create company: %w", err)
	}
	return nil
}

// Jobs returns the jobs whose company_id points at the company, ignoring
// the denormalized company text.
func (r *CompanyRepository) Jobs(ctx context.Context, companyID uint) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list jobs of company %d: %w", companyID, err)
	}
	return jobs, nil
}
