// services/stores.go - persistence interfaces consumed by the domain services
package services

import (
	"context"
	"time"

	"crewfit/models"
)

type BattleStore interface {
	FindByID(ctx context.Context, id uint) (*models.Battle, error)
	FindByIDWithCrews(ctx context.Context, id uint) (*models.Battle, error)
	FindByCrewAndStatus(ctx context.Context, crewID uint, status models.BattleStatus) (*models.Battle, error)
	FindRecentFinishedByCrewIDs(ctx context.Context, crewIDs []uint) ([]models.Battle, error)
	CountTotalAndWon(ctx context.Context, crewID uint) (models.BattleStats, error)
	ListByStatus(ctx context.Context, status models.BattleStatus) ([]models.Battle, error)
	Create(ctx context.Context, battle *models.Battle) error
	Finish(ctx context.Context, id uint, homeScore, awayScore float64) error
}

type CrewStore interface {
	FindByID(ctx context.Context, id uint) (*models.Crew, error)
	ListAll(ctx context.Context) ([]models.Crew, error)
	RankingByExercise(ctx context.Context, exerciseID uint, limit int) ([]models.Crew, error)
}

type MemberRankingStore interface {
	FindUserRankingsByCrewSince(ctx context.Context, crewID uint, since time.Time) ([]models.CrewMemberInfo, error)
}

type UserStore interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	UpdateDeviceToken(ctx context.Context, id uint, token *string) error
	ListCrewMemberIDs(ctx context.Context, crewID uint) ([]uint, error)
}

type NotificationStore interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByID(ctx context.Context, id uint) (*models.Notification, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Notification, error)
	UpdateStatus(ctx context.Context, id uint, status models.NotificationStatus) (models.NotificationStatus, error)
}

type AttendanceStore interface {
	Create(ctx context.Context, attendance *models.Attendance) error
	ExistsOn(ctx context.Context, userID uint, day time.Time) (bool, error)
	FindByUserAndMonth(ctx context.Context, userID uint, year int, month time.Month) ([]models.Attendance, error)
}

// BodyHistoryStore is the document store for body snapshots.
type BodyHistoryStore interface {
	Save(history models.BodyHistory) error
	FindLatestByUser(userID uint) (*models.BodyHistory, error)
	ListByUser(userID uint) ([]models.BodyHistory, error)
}
