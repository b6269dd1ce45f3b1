// Command exercise-importer loads the exercise catalog, and optionally past
// exercise histories, from JSON files into the database.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"crewfit/config"
	"crewfit/database"
	"crewfit/models"
	"crewfit/repository"
	"crewfit/utils"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const batchSize = 500

type jsonExercise struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	MET         float64 `json:"met"`
}

type jsonHistory struct {
	UserID          uint      `json:"user_id"`
	Exercise        string    `json:"exercise"`
	DurationSeconds int64     `json:"duration_seconds"`
	BurnedCalories  float64   `json:"burned_calories"`
	RecordedAt      time.Time `json:"recorded_at"`
}

func main() {
	exercisesPath := flag.String("exercises", "./data/exercises.json", "JSON array of exercises")
	historiesPath := flag.String("histories", "", "optional JSON array of exercise histories")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	utils.InitLogger(cfg.LogLevel, true)

	db, err := database.Connect(cfg.Database.DSN(), false)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	exercises, err := readExercises(*exercisesPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *exercisesPath).Msg("failed to read exercises")
	}
	if err := upsertExercises(db, exercises); err != nil {
		log.Fatal().Err(err).Msg("failed to import exercises")
	}
	log.Info().Int("count", len(exercises)).Msg("✓ exercises imported")

	if *historiesPath == "" {
		return
	}

	histories, err := readHistories(*historiesPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *historiesPath).Msg("failed to read histories")
	}
	imported, skipped := importHistories(context.Background(), db, histories)
	log.Info().Int("imported", imported).Int("skipped", skipped).Msg("✓ exercise histories imported")
}

func readExercises(path string) ([]models.Exercise, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseExercises(data)
}

// parseExercises validates the catalog: names are required and unique, ignoring case.
func parseExercises(data []byte) ([]models.Exercise, error) {
	var raw []jsonExercise
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse exercises: %w", err)
	}

	seen := make(map[string]bool, len(raw))
	exercises := make([]models.Exercise, 0, len(raw))
	for i, e := range raw {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("exercise %d: name is required", i)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return nil, fmt.Errorf("exercise %d: duplicate name %q", i, name)
		}
		seen[key] = true

		exercises = append(exercises, models.Exercise{
			Name:        name,
			Description: e.Description,
			MET:         e.MET,
		})
	}
	return exercises, nil
}

func upsertExercises(db *gorm.DB, exercises []models.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "met"}),
	}).CreateInBatches(&exercises, batchSize).Error
}

func readHistories(path string) ([]jsonHistory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var histories []jsonHistory
	if err := json.Unmarshal(data, &histories); err != nil {
		return nil, fmt.Errorf("parse histories: %w", err)
	}
	return histories, nil
}

func importHistories(ctx context.Context, db *gorm.DB, histories []jsonHistory) (imported, skipped int) {
	var catalog []models.Exercise
	if err := db.WithContext(ctx).Find(&catalog).Error; err != nil {
		log.Error().Err(err).Msg("failed to load exercise catalog")
		return 0, len(histories)
	}
	ids := make(map[string]uint, len(catalog))
	for _, e := range catalog {
		ids[strings.ToLower(e.Name)] = e.ID
	}

	repo := repository.NewExerciseHistoryRepository(db)
	for i, h := range histories {
		history, ok := toHistory(h, ids)
		if !ok {
			log.Warn().Int("index", i).Str("exercise", h.Exercise).Msg("skipping invalid history")
			skipped++
			continue
		}
		if err := repo.Create(ctx, history); err != nil {
			log.Error().Err(err).Int("index", i).Msg("failed to insert history")
			skipped++
			continue
		}
		imported++
	}
	return imported, skipped
}

// toHistory resolves the exercise name against the catalog.
func toHistory(h jsonHistory, exerciseIDs map[string]uint) (*models.ExerciseHistory, bool) {
	exerciseID, ok := exerciseIDs[strings.ToLower(strings.TrimSpace(h.Exercise))]
	if !ok || h.UserID == 0 || h.DurationSeconds <= 0 {
		return nil, false
	}

	history := &models.ExerciseHistory{
		UserID:           h.UserID,
		ExerciseID:       exerciseID,
		ExerciseDuration: h.DurationSeconds,
		BurnedCalories:   h.BurnedCalories,
		CreatedAt:        h.RecordedAt,
	}
	return history, true
}
