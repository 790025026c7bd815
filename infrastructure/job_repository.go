package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"jobboard/domain"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// List returns every job in whatever order the database yields them.
func (r *JobRepository) List(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := r.db.WithContext(ctx).Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) Get(ctx context.Context, id uint) (*domain.Job, error) {
	return getJob(r.db.WithContext(ctx), id)
}

func getJob(db *gorm.DB, id uint) (*domain.Job, error) {
	var j domain.Job
	if err := db.First(&j, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("get job %d: %w", id, err)
	}
	return &j, nil
}

// Create links the job to the first company whose name equals job.Company
// exactly, and fails with domain.ErrCompanyNameUnknown if there is none.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c domain.Company
		err := tx.Where("name = ?", job.Company).Order("id").Limit(1).Find(&c).Error
		if err != nil {
			return fmt.Errorf("find company %q: %w", job.Company, err)
		}
		if c.ID == 0 {
			return domain.ErrCompanyNameUnknown
		}

		job.CompanyID = &c.ID
		if err := tx.Create(job).Error; err != nil {
			return fmt.Errorf("create job: %w", err)
		}
		return nil
	})
}

// Update overwrites title, company and location. company_id is left as it
// was, even if the new company text names another (or no) company.
func (r *JobRepository) Update(ctx context.Context, id uint, changes domain.JobChanges) (*domain.Job, error) {
	var out *domain.Job
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		job, err := getJob(tx, id)
		if err != nil {
			return err
		}
		err = tx.Model(job).
			Select("title", "company", "location").
			Updates(domain.Job{Title: changes.Title, Company: changes.Company, Location: changes.Location}).Error
		if err != nil {
			return fmt.Errorf("update job %d: %w", id, err)
		}
		job.Title, job.Company, job.Location = changes.Title, changes.Company, changes.Location
		out = job
		return nil
	})
	return out, err
}

func (r *JobRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		job, err := getJob(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(job).Error; err != nil {
			return fmt.Errorf("delete job %d: %w", id, err)
		}
		return nil
	})
}
