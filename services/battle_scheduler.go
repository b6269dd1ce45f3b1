// services/battle_scheduler.go - Weekly battle lifecycle
package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"crewfit/models"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// CrewMemberLister resolves the users to notify for a crew.
type CrewMemberLister interface {
	ListCrewMemberIDs(ctx context.Context, crewID uint) ([]uint, error)
}

// RunSummary reports what one scheduler tick did.
type RunSummary struct {
	RanAt    time.Time `json:"ran_at"`
	Finished []uint    `json:"finished_battle_ids"`
	Started  []uint    `json:"started_battle_ids"`
	Idle     []uint    `json:"idle_crew_ids"`
}

// BattleScheduler finishes the running week's battles and pairs crews for the next one.
// Runs are serialized within one process only; two processes (or a manual run racing
// another instance) can still start or finish the same battles twice.
type BattleScheduler struct {
	spec          string
	cron          *cron.Cron
	battles       *BattleService
	crews         CrewStore
	members       CrewMemberLister
	notifications *NotificationService
	now           func() time.Time

	mu      sync.Mutex
	lastRun *RunSummary
}

func NewBattleScheduler(spec string, battles *BattleService, crews CrewStore, members CrewMemberLister, notifications *NotificationService) *BattleScheduler {
	return &BattleScheduler{
		spec:          spec,
		cron:          cron.New(),
		battles:       battles,
		crews:         crews,
		members:       members,
		notifications: notifications,
		now:           time.Now,
	}
}

// Start registers the cron entry and starts the cron runner.
func (s *BattleScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		summary, err := s.RunOnce(context.Background())
		if err != nil {
			log.Error().Err(err).Msg("battle scheduler run failed")
			return
		}
		log.Info().
			Int("finished", len(summary.Finished)).
			Int("started", len(summary.Started)).
			Int("idle", len(summary.Idle)).
			Msg("battle scheduler run completed")
	})
	if err != nil {
		return fmt.Errorf("invalid battle schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	log.Info().Str("schedule", s.spec).Msg("🗓️ Battle scheduler started")
	return nil
}

// Stop stops the cron runner and waits for a running job to return.
func (s *BattleScheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("Battle scheduler stopped")
}

// RunOnce finishes every STARTED battle and starts the next round.
func (s *BattleScheduler) RunOnce(ctx context.Context) (*RunSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := &RunSummary{RanAt: s.now()}
	defer func() { s.lastRun = summary }()

	started, err := s.battles.StartedBattles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list started battles: %w", err)
	}

	busy := make(map[uint]bool)
	for _, b := range started {
		finished, err := s.battles.FinishBattle(ctx, b.ID)
		if err != nil {
			log.Error().Err(err).Uint("battle_id", b.ID).Msg("failed to finish battle")
			busy[b.HomeCrewID] = true
			busy[b.AwayCrewID] = true
			continue
		}
		summary.Finished = append(summary.Finished, finished.ID)
		s.notifyCrews(ctx, finished)
	}

	crews, err := s.crews.ListAll(ctx)
	if err != nil {
		return summary, fmt.Errorf("list crews: %w", err)
	}

	available := make([]models.Crew, 0, len(crews))
	ids := make([]uint, 0, len(crews))
	for _, c := range crews {
		if busy[c.ID] {
			continue
		}
		available = append(available, c)
		ids = append(ids, c.ID)
	}

	lastResults, err := s.battles.GetRecentBattleResults(ctx, ids)
	if err != nil {
		return summary, err
	}
	lastOpponent := make(map[uint]uint, len(lastResults))
	for crewID, r := range lastResults {
		lastOpponent[crewID] = r.OpponentCrewID
	}

	pairs, idle := pairCrews(available, lastOpponent)
	summary.Idle = idle

	for _, p := range pairs {
		battle, err := s.battles.StartBattle(ctx, p[0], p[1])
		if err != nil {
			log.Error().Err(err).Uint("home_crew_id", p[0]).Uint("away_crew_id", p[1]).Msg("failed to start battle")
			continue
		}
		summary.Started = append(summary.Started, battle.ID)
		s.notifyCrews(ctx, battle)
	}

	return summary, nil
}

// LastRun returns the summary of the most recent run, or nil before the first one.
func (s *BattleScheduler) LastRun() *RunSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}

// notifyCrews sends the battle notification to every member of both crews.
// Delivery problems for one member are logged and do not stop the others.
func (s *BattleScheduler) notifyCrews(ctx context.Context, battle *models.Battle) {
	if s.notifications == nil {
		return
	}

	for _, crewID := range []uint{battle.HomeCrewID, battle.AwayCrewID} {
		userIDs, err := s.members.ListCrewMemberIDs(ctx, crewID)
		if err != nil {
			log.Error().Err(err).Uint("crew_id", crewID).Msg("failed to list crew members")
			continue
		}
		for _, userID := range userIDs {
			if _, err := s.notifications.CreateBattleNotification(ctx, userID, battle.ID); err != nil {
				log.Warn().Err(err).
					Uint("user_id", userID).
					Uint("battle_id", battle.ID).
					Msg("battle notification not delivered")
			}
		}
	}
}

// pairCrews matches crews of the same exercise with the closest total score,
// avoiding an immediate rematch when another opponent is available.
// Returns [home, away] pairs and the crews left without an opponent.
func pairCrews(crews []models.Crew, lastOpponent map[uint]uint) ([][2]uint, []uint) {
	byExercise := make(map[uint][]models.Crew)
	var exercises []uint
	for _, c := range crews {
		if _, ok := byExercise[c.ExerciseID]; !ok {
			exercises = append(exercises, c.ExerciseID)
		}
		byExercise[c.ExerciseID] = append(byExercise[c.ExerciseID], c)
	}
	sort.Slice(exercises, func(i, j int) bool { return exercises[i] < exercises[j] })

	var pairs [][2]uint
	var idle []uint

	for _, exerciseID := range exercises {
		group := byExercise[exerciseID]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].TotalScore() != group[j].TotalScore() {
				return group[i].TotalScore() > group[j].TotalScore()
			}
			return group[i].ID < group[j].ID
		})

		paired := make([]bool, len(group))
		for i := range group {
			if paired[i] {
				continue
			}

			opponent := -1
			for j := i + 1; j < len(group); j++ {
				if paired[j] {
					continue
				}
				if opponent == -1 {
					opponent = j
				}
				if lastOpponent[group[i].ID] != group[j].ID {
					opponent = j
					break
				}
			}

			if opponent == -1 {
				idle = append(idle, group[i].ID)
				continue
			}

			paired[i], paired[opponent] = true, true
			pairs = append(pairs, [2]uint{group[i].ID, group[opponent].ID})
		}
	}

	return pairs, idle
}
