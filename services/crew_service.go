// services/crew_service.go - Crew detail and rankings
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crewfit/models"
	"crewfit/repository"
	"crewfit/utils"
)

type CrewDetail struct {
	CrewID           uint          `json:"crew_id"`
	CrewName         string        `json:"crew_name"`
	ExerciseName     string        `json:"exercise_name"`
	ProfileImage     string        `json:"profile_image"`
	Description      string        `json:"description"`
	CrewCoin         int           `json:"crew_coin"`
	MemberLimit      int           `json:"member_limit"`
	AverageAge       float64       `json:"average_age"`
	BasicScore       float64       `json:"basic_score"`
	ActivityScore    float64       `json:"activity_score"`
	TotalBattleCount int64         `json:"total_battle_count"`
	WinCount         int64         `json:"win_count"`
	LastBattle       *BattleResult `json:"last_battle,omitempty"`
}

type CrewRankingEntry struct {
	Rank          int     `json:"rank"`
	CrewID        uint    `json:"crew_id"`
	CrewName      string  `json:"crew_name"`
	ExerciseName  string  `json:"exercise_name"`
	ProfileImage  string  `json:"crew_profile_image"`
	BasicScore    float64 `json:"basic_score"`
	ActivityScore float64 `json:"activity_score"`
}

type CrewService struct {
	crews    CrewStore
	battles  *BattleService
	rankings MemberRankingStore
	now      func() time.Time
}

func NewCrewService(crews CrewStore, battles *BattleService, rankings MemberRankingStore) *CrewService {
	return &CrewService{crews: crews, battles: battles, rankings: rankings, now: time.Now}
}

// GetCrewDetail returns the crew with its battle record.
func (s *CrewService) GetCrewDetail(ctx context.Context, crewID uint) (*CrewDetail, error) {
	crew, err := s.crews.FindByID(ctx, crewID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCrewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find crew %d: %w", crewID, err)
	}

	stats, err := s.battles.GetBattleStats(ctx, crewID)
	if err != nil {
		return nil, err
	}

	detail := &CrewDetail{
		CrewID:           crew.ID,
		CrewName:         crew.Name,
		ExerciseName:     crew.ExerciseName(),
		ProfileImage:     crew.ProfileImage,
		Description:      crew.Description,
		CrewCoin:         crew.CrewCoin,
		MemberLimit:      crew.MemberLimit,
		AverageAge:       crew.AverageAge,
		BasicScore:       crew.BasicScore,
		ActivityScore:    crew.ActivityScore,
		TotalBattleCount: stats.Total,
		WinCount:         stats.Won,
	}

	results, err := s.battles.GetRecentBattleResults(ctx, []uint{crewID})
	if err != nil {
		return nil, err
	}
	if last, ok := results[crewID]; ok {
		detail.LastBattle = &last
	}

	return detail, nil
}

// GetCrewMemberRanking ranks members by exercise time in the current battle week.
func (s *CrewService) GetCrewMemberRanking(ctx context.Context, crewID uint) ([]models.CrewMemberInfo, error) {
	since := utils.MostRecentSunday(s.now().UTC())

	members, err := s.rankings.FindUserRankingsByCrewSince(ctx, crewID, since)
	if err != nil {
		return nil, fmt.Errorf("rank crew %d: %w", crewID, err)
	}
	return members, nil
}

// GetCrewRankingByExercise ranks crews of an exercise by basic + activity score.
func (s *CrewService) GetCrewRankingByExercise(ctx context.Context, exerciseID uint, limit int) ([]CrewRankingEntry, error) {
	crews, err := s.crews.RankingByExercise(ctx, exerciseID, limit)
	if err != nil {
		return nil, fmt.Errorf("rank crews for exercise %d: %w", exerciseID, err)
	}

	entries := make([]CrewRankingEntry, 0, len(crews))
	for i := range crews {
		c := &crews[i]
		entries = append(entries, CrewRankingEntry{
			Rank:          i + 1,
			CrewID:        c.ID,
			CrewName:      c.Name,
			ExerciseName:  c.ExerciseName(),
			ProfileImage:  c.ProfileImage,
			BasicScore:    c.BasicScore,
			ActivityScore: c.ActivityScore,
		})
	}
	return entries, nil
}
