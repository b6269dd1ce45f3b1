package handlers

import (
	"context"
	"errors"
	"time"

	"crewfit/models"
	"crewfit/push"
	"crewfit/repository"
)

type stubBattles struct {
	battles map[uint]*models.Battle
}

func (s *stubBattles) FindByID(_ context.Context, id uint) (*models.Battle, error) {
	if b, ok := s.battles[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubBattles) FindByIDWithCrews(ctx context.Context, id uint) (*models.Battle, error) {
	return s.FindByID(ctx, id)
}

func (s *stubBattles) FindByCrewAndStatus(_ context.Context, crewID uint, status models.BattleStatus) (*models.Battle, error) {
	for _, b := range s.battles {
		if b.Status == status && (b.HomeCrewID == crewID || b.AwayCrewID == crewID) {
			copied := *b
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubBattles) FindRecentFinishedByCrewIDs(context.Context, []uint) ([]models.Battle, error) {
	return nil, nil
}

func (s *stubBattles) CountTotalAndWon(context.Context, uint) (models.BattleStats, error) {
	return models.BattleStats{Total: 3, Won: 1}, nil
}

func (s *stubBattles) ListByStatus(context.Context, models.BattleStatus) ([]models.Battle, error) {
	return nil, nil
}

func (s *stubBattles) Create(_ context.Context, b *models.Battle) error {
	b.ID = uint(len(s.battles) + 1)
	s.battles[b.ID] = b
	return nil
}

func (s *stubBattles) Finish(context.Context, uint, float64, float64) error {
	return nil
}

type stubCrews struct {
	crews map[uint]models.Crew
}

func (s *stubCrews) FindByID(_ context.Context, id uint) (*models.Crew, error) {
	if c, ok := s.crews[id]; ok {
		return &c, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubCrews) ListAll(context.Context) ([]models.Crew, error) {
	var out []models.Crew
	for _, c := range s.crews {
		out = append(out, c)
	}
	return out, nil
}

func (s *stubCrews) RankingByExercise(context.Context, uint, int) ([]models.Crew, error) {
	return nil, nil
}

type stubRankings struct{}

func (stubRankings) FindUserRankingsByCrewSince(context.Context, uint, time.Time) ([]models.CrewMemberInfo, error) {
	return []models.CrewMemberInfo{}, nil
}

type stubUsers struct {
	users map[uint]models.User
}

func (s *stubUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubUsers) UpdateDeviceToken(_ context.Context, id uint, token *string) error {
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.DeviceToken = token
	s.users[id] = u
	return nil
}

func (s *stubUsers) ListCrewMemberIDs(context.Context, uint) ([]uint, error) {
	return nil, nil
}

type stubNotifications struct {
	items []models.Notification
}

func (s *stubNotifications) Create(_ context.Context, n *models.Notification) error {
	n.ID = uint(len(s.items) + 1)
	s.items = append(s.items, *n)
	return nil
}

func (s *stubNotifications) FindByID(_ context.Context, id uint) (*models.Notification, error) {
	for _, n := range s.items {
		if n.ID == id {
			return &n, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubNotifications) ListByUser(_ context.Context, userID uint) ([]models.Notification, error) {
	out := []models.Notification{}
	for _, n := range s.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubNotifications) UpdateStatus(_ context.Context, id uint, status models.NotificationStatus) (models.NotificationStatus, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			previous := s.items[i].NotificationStatus
			s.items[i].NotificationStatus = status
			return previous, nil
		}
	}
	return "", repository.ErrNotFound
}

type stubAttendance struct {
	days []models.Attendance
}

func (s *stubAttendance) Create(_ context.Context, a *models.Attendance) error {
	s.days = append(s.days, *a)
	return nil
}

func (s *stubAttendance) ExistsOn(_ context.Context, userID uint, day time.Time) (bool, error) {
	for _, a := range s.days {
		if a.UserID == userID && a.AttendedOn.Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubAttendance) FindByUserAndMonth(_ context.Context, userID uint, year int, month time.Month) ([]models.Attendance, error) {
	var out []models.Attendance
	for _, a := range s.days {
		if a.UserID == userID && a.AttendedOn.Year() == year && a.AttendedOn.Month() == month {
			out = append(out, a)
		}
	}
	return out, nil
}

type stubBodies struct {
	items []models.BodyHistory
}

func (s *stubBodies) Save(h models.BodyHistory) error {
	s.items = append(s.items, h)
	return nil
}

func (s *stubBodies) FindLatestByUser(uint) (*models.BodyHistory, error) {
	return nil, repository.ErrNotFound
}

func (s *stubBodies) ListByUser(userID uint) ([]models.BodyHistory, error) {
	out := []models.BodyHistory{}
	for _, h := range s.items {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

type failingSender struct {
	err error
}

func (f failingSender) Send(context.Context, push.Message) error {
	return f.err
}

func (f failingSender) GetType() string {
	return "failing"
}

var errGatewayDown = errors.New("fcm unavailable")
