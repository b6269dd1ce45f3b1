// database/migrate.go - Database Migration Runner
package database

import (
	"fmt"

	"crewfit/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// RunMigrations runs all database migrations
func RunMigrations(db *gorm.DB) error {
	log.Info().Msg("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Exercise{},
		&models.Crew{},
		&models.UserCrew{},
		&models.Battle{},
		&models.ExerciseHistory{},
		&models.Attendance{},
		&models.Notification{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	createIndexes(db)

	log.Info().Msg("✅ All migrations completed successfully")
	return nil
}

// createIndexes adds the composite indexes the read paths rely on.
// A crew being in two STARTED battles at once is not prevented here.
func createIndexes(db *gorm.DB) {
	statements := []string{
		// Battle lookups by crew + status, newest first
		"CREATE INDEX IF NOT EXISTS idx_battles_home_status ON battles(home_crew_id, status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_battles_away_status ON battles(away_crew_id, status, created_at DESC)",

		// Member ranking since battle start
		"CREATE INDEX IF NOT EXISTS idx_exercise_histories_user_created ON exercise_histories(user_id, created_at)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_user_crews_user_crew ON user_crews(user_id, crew_id)",

		// Crew ranking per exercise
		"CREATE INDEX IF NOT EXISTS idx_crews_exercise_score ON crews(exercise_id, (basic_score + activity_score) DESC)",

		// Notification inbox
		"CREATE INDEX IF NOT EXISTS idx_notifications_user_created ON notifications(user_id, created_at DESC)",
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			log.Warn().Err(err).Str("statement", stmt).Msg("index creation failed")
		}
	}
}
