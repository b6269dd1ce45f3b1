package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"crewfit/models"
	"crewfit/push"
	"crewfit/repository"
)

type fakeBattleStore struct {
	mu      sync.Mutex
	battles map[uint]*models.Battle
	crews   *fakeCrewStore
	nextID  uint
}

func newFakeBattleStore(crews *fakeCrewStore) *fakeBattleStore {
	return &fakeBattleStore{battles: make(map[uint]*models.Battle), crews: crews}
}

func (f *fakeBattleStore) put(b models.Battle) *models.Battle {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b.ID == 0 {
		f.nextID++
		b.ID = f.nextID
	} else if b.ID > f.nextID {
		f.nextID = b.ID
	}
	stored := b
	f.battles[b.ID] = &stored
	return &stored
}

func (f *fakeBattleStore) FindByID(_ context.Context, id uint) (*models.Battle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.battles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBattleStore) FindByIDWithCrews(ctx context.Context, id uint) (*models.Battle, error) {
	b, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.crews != nil {
		b.HomeCrew, _ = f.crews.FindByID(ctx, b.HomeCrewID)
		b.AwayCrew, _ = f.crews.FindByID(ctx, b.AwayCrewID)
	}
	return b, nil
}

func (f *fakeBattleStore) sorted(match func(*models.Battle) bool) []models.Battle {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Battle
	for _, b := range f.battles {
		if match(b) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (f *fakeBattleStore) FindByCrewAndStatus(_ context.Context, crewID uint, status models.BattleStatus) (*models.Battle, error) {
	found := f.sorted(func(b *models.Battle) bool {
		return b.Status == status && (b.HomeCrewID == crewID || b.AwayCrewID == crewID)
	})
	if len(found) == 0 {
		return nil, repository.ErrNotFound
	}
	return &found[0], nil
}

func (f *fakeBattleStore) FindRecentFinishedByCrewIDs(_ context.Context, crewIDs []uint) ([]models.Battle, error) {
	wanted := make(map[uint]bool)
	for _, id := range crewIDs {
		wanted[id] = true
	}
	return f.sorted(func(b *models.Battle) bool {
		return b.Status == models.BattleStatusFinished && (wanted[b.HomeCrewID] || wanted[b.AwayCrewID])
	}), nil
}

func (f *fakeBattleStore) CountTotalAndWon(_ context.Context, crewID uint) (models.BattleStats, error) {
	var stats models.BattleStats
	for _, b := range f.sorted(func(b *models.Battle) bool {
		return b.Status == models.BattleStatusFinished && (b.HomeCrewID == crewID || b.AwayCrewID == crewID)
	}) {
		stats.Total++
		if winner, ok := b.Winner(); ok && winner == crewID {
			stats.Won++
		}
	}
	return stats, nil
}

func (f *fakeBattleStore) ListByStatus(_ context.Context, status models.BattleStatus) ([]models.Battle, error) {
	out := f.sorted(func(b *models.Battle) bool { return b.Status == status })
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBattleStore) Create(_ context.Context, battle *models.Battle) error {
	stored := f.put(*battle)
	battle.ID = stored.ID
	return nil
}

func (f *fakeBattleStore) Finish(_ context.Context, id uint, homeScore, awayScore float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.battles[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.HomeCrewScore = homeScore
	b.AwayCrewScore = awayScore
	b.Status = models.BattleStatusFinished
	return nil
}

type fakeCrewStore struct {
	mu    sync.Mutex
	crews map[uint]*models.Crew
}

func newFakeCrewStore(crews ...models.Crew) *fakeCrewStore {
	f := &fakeCrewStore{crews: make(map[uint]*models.Crew)}
	for i := range crews {
		c := crews[i]
		f.crews[c.ID] = &c
	}
	return f
}

// setScores mutates a crew the way activity logging does.
func (f *fakeCrewStore) setScores(id uint, basic, activity float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.crews[id].BasicScore = basic
	f.crews[id].ActivityScore = activity
}

func (f *fakeCrewStore) FindByID(_ context.Context, id uint) (*models.Crew, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.crews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCrewStore) ListAll(_ context.Context) ([]models.Crew, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Crew, 0, len(f.crews))
	for _, c := range f.crews {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCrewStore) RankingByExercise(ctx context.Context, exerciseID uint, limit int) ([]models.Crew, error) {
	all, _ := f.ListAll(ctx)
	var out []models.Crew
	for _, c := range all {
		if c.ExerciseID == exerciseID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalScore() > out[j].TotalScore() })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeRankingStore records the lower bound it was asked for.
type fakeRankingStore struct {
	byCrew map[uint][]models.CrewMemberInfo
	since  map[uint]time.Time
}

func newFakeRankingStore() *fakeRankingStore {
	return &fakeRankingStore{byCrew: make(map[uint][]models.CrewMemberInfo), since: make(map[uint]time.Time)}
}

func (f *fakeRankingStore) FindUserRankingsByCrewSince(_ context.Context, crewID uint, since time.Time) ([]models.CrewMemberInfo, error) {
	f.since[crewID] = since
	return f.byCrew[crewID], nil
}

type fakeUserStore struct {
	mu      sync.Mutex
	users   map[uint]*models.User
	members map[uint][]uint
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	f := &fakeUserStore{users: make(map[uint]*models.User), members: make(map[uint][]uint)}
	for i := range users {
		u := users[i]
		f.users[u.ID] = &u
	}
	return f
}

func (f *fakeUserStore) FindByID(_ context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) UpdateDeviceToken(_ context.Context, id uint, token *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.DeviceToken = token
	return nil
}

func (f *fakeUserStore) ListCrewMemberIDs(_ context.Context, crewID uint) ([]uint, error) {
	return f.members[crewID], nil
}

type fakeNotificationStore struct {
	mu            sync.Mutex
	notifications []*models.Notification
	createErr     error
}

func (f *fakeNotificationStore) Create(_ context.Context, n *models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = uint(len(f.notifications) + 1)
	stored := *n
	f.notifications = append(f.notifications, &stored)
	return nil
}

func (f *fakeNotificationStore) FindByID(_ context.Context, id uint) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.ID == id {
			copied := *n
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeNotificationStore) ListByUser(_ context.Context, userID uint) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for i := len(f.notifications) - 1; i >= 0; i-- {
		if f.notifications[i].UserID == userID {
			out = append(out, *f.notifications[i])
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) UpdateStatus(_ context.Context, id uint, status models.NotificationStatus) (models.NotificationStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.ID == id {
			previous := n.NotificationStatus
			n.NotificationStatus = status
			return previous, nil
		}
	}
	return "", repository.ErrNotFound
}

type fakeAttendanceStore struct {
	records []models.Attendance
}

func (f *fakeAttendanceStore) Create(_ context.Context, a *models.Attendance) error {
	a.ID = uint(len(f.records) + 1)
	f.records = append(f.records, *a)
	return nil
}

func (f *fakeAttendanceStore) ExistsOn(_ context.Context, userID uint, day time.Time) (bool, error) {
	for _, a := range f.records {
		if a.UserID == userID && a.AttendedOn.Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendanceStore) FindByUserAndMonth(_ context.Context, userID uint, year int, month time.Month) ([]models.Attendance, error) {
	var out []models.Attendance
	for _, a := range f.records {
		if a.UserID == userID && a.AttendedOn.Year() == year && a.AttendedOn.Month() == month {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeBodyStore struct {
	histories []models.BodyHistory
	err       error
}

func (f *fakeBodyStore) Save(h models.BodyHistory) error {
	if f.err != nil {
		return f.err
	}
	f.histories = append(f.histories, h)
	return nil
}

func (f *fakeBodyStore) FindLatestByUser(userID uint) (*models.BodyHistory, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := len(f.histories) - 1; i >= 0; i-- {
		if f.histories[i].UserID == userID {
			h := f.histories[i]
			return &h, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeBodyStore) ListByUser(userID uint) ([]models.BodyHistory, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.BodyHistory{}
	for i := len(f.histories) - 1; i >= 0; i-- {
		if f.histories[i].UserID == userID {
			out = append(out, f.histories[i])
		}
	}
	return out, nil
}

// recordingSender captures messages and optionally fails every send.
type recordingSender struct {
	mu   sync.Mutex
	sent []push.Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg push.Message) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingSender) GetType() string {
	return "recording"
}

func (r *recordingSender) messages() []push.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]push.Message(nil), r.sent...)
}

var errStoreDown = errors.New("store unavailable")

func strPtr(s string) *string {
	return &s
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
