package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migration is one linear schema step. IDs are opaque; order comes from
// the position in the Migrations slice.
type Migration struct {
	ID          string
	Description string
	Up          func(tx *gorm.DB) error
	Down        func(tx *gorm.DB) error
}

type SchemaMigration struct {
	Version   string `gorm:"primaryKey;size:64"`
	AppliedAt time.Time
}

func (SchemaMigration) TableName() string { return "schema_migrations" }

type MigrationStatus struct {
	ID          string
	Description string
	Applied     bool
	AppliedAt   time.Time
}

// The structs below are frozen copies of the schema at revision
// 8bb434256be7. Do not edit them when the domain models change.
type companyV1 struct {
	ID             int    `gorm:"primaryKey"`
	Name           string `gorm:"size:100;not null"`
	Description    string `gorm:"size:200"`
	EmployeesCount *int
}

func (companyV1) TableName() string { return "company" }

type jobV1 struct {
	ID        int    `gorm:"primaryKey"`
	Title     string `gorm:"size:100;not null"`
	Company   string `gorm:"size:100;not null"`
	Location  string `gorm:"size:100"`
	CompanyID *int
	// Only here so CreateTable emits the foreign key.
	CompanyRef *companyV1 `gorm:"foreignKey:CompanyID;references:ID"`
}

func (jobV1) TableName() string { return "job" }

var Migrations = []Migration{
	{
		ID:          "8bb434256be7",
		Description: "initial migration",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&companyV1{}, &jobV1{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&jobV1{}, &companyV1{})
		},
	},
}

type Migrator struct {
	db         *gorm.DB
	migrations []Migration
	logger     *zap.Logger
}

func NewMigrator(db *gorm.DB, migrations []Migration, logger *zap.Logger) *Migrator {
	return &Migrator{db: db, migrations: migrations, logger: logger.Named("migrate")}
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func (m *Migrator) applied(ctx context.Context) (map[string]SchemaMigration, error) {
	var rows []SchemaMigration
	if err := m.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	out := make(map[string]SchemaMigration, len(rows))
	for _, r := range rows {
		out[r.Version] = r
	}
	return out, nil
}

// Up applies every pending migration in order and returns the IDs it ran.
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}
	done, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	var ran []string
	for _, mig := range m.migrations {
		if _, ok := done[mig.ID]; ok {
			continue
		}
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := mig.Up(tx); err != nil {
				return err
			}
			return tx.Create(&SchemaMigration{Version: mig.ID, AppliedAt: time.Now().UTC()}).Error
		})
		if err != nil {
			return ran, fmt.Errorf("migration %s up: %w", mig.ID, err)
		}
		m.logger.Info("applied migration", zap.String("id", mig.ID), zap.String("description", mig.Description))
		ran = append(ran, mig.ID)
	}
	return ran, nil
}

// Down reverts the latest applied migrations, at most steps of them.
func (m *Migrator) Down(ctx context.Context, steps int) ([]string, error) {
	if steps < 1 {
		return nil, errors.New("steps must be at least 1")
	}
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}
	done, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	var reverted []string
	for i := len(m.migrations) - 1; i >= 0 && len(reverted) < steps; i-- {
		mig := m.migrations[i]
		if _, ok := done[mig.ID]; !ok {
			continue
		}
		if mig.Down == nil {
			return reverted, fmt.Errorf("migration %s is irreversible", mig.ID)
		}
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := mig.Down(tx); err != nil {
				return err
			}
			return tx.Delete(&SchemaMigration{Version: mig.ID}).Error
		})
		if err != nil {
			return reverted, fmt.Errorf("migration %s down: %w", mig.ID, err)
		}
		m.logger.Info("reverted migration", zap.String("id", mig.ID))
		reverted = append(reverted, mig.ID)
	}
	return reverted, nil
}

func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}
	done, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]MigrationStatus, 0, len(m.migrations))
	for _, mig := range m.migrations {
		st := MigrationStatus{ID: mig.ID, Description: mig.Description}
		if row, ok := done[mig.ID]; ok {
			st.Applied = true
			st.AppliedAt = row.AppliedAt
		}
		out = append(out, st)
	}
	return out, nil
}
