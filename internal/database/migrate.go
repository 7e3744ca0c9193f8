package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/classscore-api/internal/models"
)

// schemaMigration records one applied migration so startup only runs what is
// still pending instead of replaying every DDL statement ever written.
type schemaMigration struct {
	ID        string    `gorm:"primaryKey;size:64"`
	AppliedAt time.Time `gorm:"not null"`
}

func (schemaMigration) TableName() string { return "schema_migrations" }

type migration struct {
	id  string
	run func(tx *gorm.DB) error
}

// Migrations are append-only: never edit or reorder an entry that has
// shipped, add a new one.
var migrations = []migration{
	{
		id: "0001_initial_schema",
		run: func(tx *gorm.DB) error {
			return tx.AutoMigrate(
				&models.User{},
				&models.Classroom{},
				&models.Student{},
				&models.Rule{},
				&models.DailyScore{},
				&models.StudentManager{},
				&models.UserSetting{},
			)
		},
	},
}

// Migrate applies all pending migrations in order, recording each in the
// migration ledger within the same transaction as its DDL.
func Migrate(db *gorm.DB, logger zerolog.Logger) error {
	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("failed to prepare migration ledger: %w", err)
	}

	for _, m := range migrations {
		var count int64
		if err := db.Model(&schemaMigration{}).Where("id = ?", m.id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to read migration ledger: %w", err)
		}
		if count > 0 {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.run(tx); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{ID: m.id, AppliedAt: time.Now()}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", m.id, err)
		}

		logger.Info().Str("migration", m.id).Msg("migration applied")
	}

	return nil
}
