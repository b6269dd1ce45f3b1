// services/battle_service.go - Battle status, scoring and ranking
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crewfit/metrics"
	"crewfit/models"
	"crewfit/repository"
	"crewfit/utils"

	"github.com/rs/zerolog/log"
)

// BattleViewStatus is the status shown to clients. It extends the persisted
// BattleStatus with NONE, which is only ever synthesized.
type BattleViewStatus string

const (
	BattleViewNone     BattleViewStatus = "NONE"
	BattleViewStarted  BattleViewStatus = BattleViewStatus(models.BattleStatusStarted)
	BattleViewFinished BattleViewStatus = BattleViewStatus(models.BattleStatusFinished)
)

// BattleMatchResponse compares the requesting crew with its opponent.
type BattleMatchResponse struct {
	BattleID          uint             `json:"battle_id"`
	MyCrewName        string           `json:"my_crew_name"`
	MyCrewScore       float64          `json:"my_crew_score"`
	OpponentCrewName  string           `json:"opponent_crew_name"`
	OpponentCrewScore float64          `json:"opponent_crew_score"`
	ExerciseName      string           `json:"exercise_name"`
	BattleStatus      BattleViewStatus `json:"battle_status"`
	DDay              int              `json:"d_day"`
}

// HasBattle is false for the "no active battle" response.
func (r *BattleMatchResponse) HasBattle() bool {
	return r.BattleID != 0 && r.BattleStatus != BattleViewNone
}

// EmptyBattleResponse is returned when the crew has no STARTED battle.
func EmptyBattleResponse() *BattleMatchResponse {
	return &BattleMatchResponse{
		BattleID:          0,
		MyCrewName:        "No Battle",
		MyCrewScore:       0,
		OpponentCrewName:  "No Opponent",
		OpponentCrewScore: 0,
		ExerciseName:      "N/A",
		BattleStatus:      BattleViewNone,
		DDay:              0,
	}
}

// BattleMemberRanking holds per-side member contributions since the battle began.
type BattleMemberRanking struct {
	BattleID            uint                    `json:"battle_id"`
	MyCrewName          string                  `json:"my_crew_name"`
	OpponentCrewName    string                  `json:"opponent_crew_name"`
	MyCrewMembers       []models.CrewMemberInfo `json:"my_crew_members"`
	OpponentCrewMembers []models.CrewMemberInfo `json:"opponent_crew_members"`
}

type BattleOutcome string

const (
	OutcomeWin  BattleOutcome = "WIN"
	OutcomeLose BattleOutcome = "LOSE"
	OutcomeDraw BattleOutcome = "DRAW"
)

// BattleResult is a finished battle seen from one crew.
type BattleResult struct {
	CrewID         uint          `json:"crew_id"`
	BattleID       uint          `json:"battle_id"`
	OpponentCrewID uint          `json:"opponent_crew_id"`
	MyScore        float64       `json:"my_score"`
	OpponentScore  float64       `json:"opponent_score"`
	Outcome        BattleOutcome `json:"outcome"`
	StartedAt      time.Time     `json:"started_at"`
}

type BattleService struct {
	battles  BattleStore
	crews    CrewStore
	rankings MemberRankingStore
	now      func() time.Time
}

func NewBattleService(battles BattleStore, crews CrewStore, rankings MemberRankingStore) *BattleService {
	return &BattleService{
		battles:  battles,
		crews:    crews,
		rankings: rankings,
		now:      time.Now,
	}
}

// GetBattleStatus returns the live comparison for crewID's STARTED battle,
// or EmptyBattleResponse when there is none.
func (s *BattleService) GetBattleStatus(ctx context.Context, crewID uint) (*BattleMatchResponse, error) {
	battle, err := s.battles.FindByCrewAndStatus(ctx, crewID, models.BattleStatusStarted)
	if errors.Is(err, repository.ErrNotFound) {
		return EmptyBattleResponse(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("find started battle: %w", err)
	}

	myID, opponentID, ok := battle.Sides(crewID)
	if !ok {
		return nil, ErrCrewNotParticipant
	}

	myCrew, err := s.loadCrew(ctx, myID)
	if err != nil {
		return nil, err
	}
	opponentCrew, err := s.loadCrew(ctx, opponentID)
	if err != nil {
		return nil, err
	}

	return &BattleMatchResponse{
		BattleID:          battle.ID,
		MyCrewName:        myCrew.Name,
		MyCrewScore:       myCrew.TotalScore(),
		OpponentCrewName:  opponentCrew.Name,
		OpponentCrewScore: opponentCrew.TotalScore(),
		ExerciseName:      myCrew.ExerciseName(),
		BattleStatus:      BattleViewStatus(battle.Status),
		DDay:              utils.DaysSinceSunday(s.now().UTC()),
	}, nil
}

// GetBattleMemberRanking ranks both crews' members by activity since the battle was created.
func (s *BattleService) GetBattleMemberRanking(ctx context.Context, battleID, crewID uint) (*BattleMemberRanking, error) {
	battle, err := s.battles.FindByIDWithCrews(ctx, battleID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBattleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find battle %d: %w", battleID, err)
	}

	myID, opponentID, ok := battle.Sides(crewID)
	if !ok {
		return nil, ErrCrewNotParticipant
	}

	myMembers, err := s.rankings.FindUserRankingsByCrewSince(ctx, myID, battle.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("rank crew %d: %w", myID, err)
	}
	opponentMembers, err := s.rankings.FindUserRankingsByCrewSince(ctx, opponentID, battle.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("rank crew %d: %w", opponentID, err)
	}

	log.Debug().
		Uint("battle_id", battleID).
		Uint("crew_id", crewID).
		Int("my_members", len(myMembers)).
		Int("opponent_members", len(opponentMembers)).
		Msg("battle member ranking resolved")

	ranking := &BattleMemberRanking{
		BattleID:            battle.ID,
		MyCrewMembers:       myMembers,
		OpponentCrewMembers: opponentMembers,
	}
	if crew := crewOnSide(battle, myID); crew != nil {
		ranking.MyCrewName = crew.Name
	}
	if crew := crewOnSide(battle, opponentID); crew != nil {
		ranking.OpponentCrewName = crew.Name
	}
	return ranking, nil
}

// GetBattleStats counts finished and won battles for crewID.
func (s *BattleService) GetBattleStats(ctx context.Context, crewID uint) (models.BattleStats, error) {
	stats, err := s.battles.CountTotalAndWon(ctx, crewID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.BattleStats{}, nil
	}
	if err != nil {
		return models.BattleStats{}, fmt.Errorf("count battles for crew %d: %w", crewID, err)
	}
	return stats, nil
}

// GetRecentBattleResults returns the newest finished battle of each crew that has one.
func (s *BattleService) GetRecentBattleResults(ctx context.Context, crewIDs []uint) (map[uint]BattleResult, error) {
	battles, err := s.battles.FindRecentFinishedByCrewIDs(ctx, crewIDs)
	if err != nil {
		return nil, fmt.Errorf("find recent battles: %w", err)
	}

	wanted := make(map[uint]bool, len(crewIDs))
	for _, id := range crewIDs {
		wanted[id] = true
	}

	results := make(map[uint]BattleResult, len(crewIDs))
	for i := range battles {
		b := &battles[i]
		for _, crewID := range []uint{b.HomeCrewID, b.AwayCrewID} {
			if _, seen := results[crewID]; seen || !wanted[crewID] {
				continue
			}
			results[crewID] = resultFor(b, crewID)
		}
	}
	return results, nil
}

// StartBattle creates a STARTED battle between two crews.
func (s *BattleService) StartBattle(ctx context.Context, homeCrewID, awayCrewID uint) (*models.Battle, error) {
	battle := &models.Battle{
		HomeCrewID: homeCrewID,
		AwayCrewID: awayCrewID,
		Status:     models.BattleStatusStarted,
		CreatedAt:  s.now(),
	}
	if err := s.battles.Create(ctx, battle); err != nil {
		return nil, fmt.Errorf("create battle: %w", err)
	}

	metrics.RecordBattleStarted()
	log.Info().
		Uint("battle_id", battle.ID).
		Uint("home_crew_id", homeCrewID).
		Uint("away_crew_id", awayCrewID).
		Msg("battle started")
	return battle, nil
}

// FinishBattle records each crew's live total as its final score and marks the battle FINISHED.
func (s *BattleService) FinishBattle(ctx context.Context, battleID uint) (*models.Battle, error) {
	battle, err := s.battles.FindByIDWithCrews(ctx, battleID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBattleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find battle %d: %w", battleID, err)
	}
	if battle.Status != models.BattleStatusStarted {
		return nil, ErrBattleNotStarted
	}

	homeCrew, awayCrew := battle.HomeCrew, battle.AwayCrew
	if homeCrew == nil {
		if homeCrew, err = s.loadCrew(ctx, battle.HomeCrewID); err != nil {
			return nil, err
		}
	}
	if awayCrew == nil {
		if awayCrew, err = s.loadCrew(ctx, battle.AwayCrewID); err != nil {
			return nil, err
		}
	}

	battle.HomeCrewScore = homeCrew.TotalScore()
	battle.AwayCrewScore = awayCrew.TotalScore()
	if err := s.battles.Finish(ctx, battle.ID, battle.HomeCrewScore, battle.AwayCrewScore); err != nil {
		return nil, fmt.Errorf("finish battle %d: %w", battle.ID, err)
	}
	battle.Status = models.BattleStatusFinished

	metrics.RecordBattleFinished()
	log.Info().
		Uint("battle_id", battle.ID).
		Float64("home_score", battle.HomeCrewScore).
		Float64("away_score", battle.AwayCrewScore).
		Msg("battle finished")
	return battle, nil
}

// StartedBattles lists every battle currently in progress.
func (s *BattleService) StartedBattles(ctx context.Context) ([]models.Battle, error) {
	return s.battles.ListByStatus(ctx, models.BattleStatusStarted)
}

func (s *BattleService) loadCrew(ctx context.Context, crewID uint) (*models.Crew, error) {
	crew, err := s.crews.FindByID(ctx, crewID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrCrewNotFound, crewID)
	}
	if err != nil {
		return nil, fmt.Errorf("load crew %d: %w", crewID, err)
	}
	return crew, nil
}

func crewOnSide(b *models.Battle, crewID uint) *models.Crew {
	if crewID == b.HomeCrewID {
		return b.HomeCrew
	}
	return b.AwayCrew
}

func resultFor(b *models.Battle, crewID uint) BattleResult {
	_, opponentID, _ := b.Sides(crewID)
	mine, theirs := b.ScoresFor(crewID)

	outcome := OutcomeDraw
	if winner, ok := b.Winner(); ok {
		outcome = OutcomeLose
		if winner == crewID {
			outcome = OutcomeWin
		}
	}

	return BattleResult{
		CrewID:         crewID,
		BattleID:       b.ID,
		OpponentCrewID: opponentID,
		MyScore:        mine,
		OpponentScore:  theirs,
		Outcome:        outcome,
		StartedAt:      b.CreatedAt,
	}
}
