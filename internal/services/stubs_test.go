package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"haulcentral/internal/models"
	"haulcentral/internal/repositories"
)

type stubLoads struct {
	mu      sync.Mutex
	loads   []models.Load
	queries []repositories.LoadQuery
	err     error
}

func (s *stubLoads) ListLoads(ctx context.Context, q repositories.LoadQuery) ([]models.Load, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, q)
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Load
	for _, l := range s.loads {
		if q.Status != "" && l.Status != q.Status {
			continue
		}
		if q.UserID != "" && l.UserID != q.UserID {
			continue
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *stubLoads) CreateLoad(ctx context.Context, load models.Load) (models.Load, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return models.Load{}, s.err
	}
	s.loads = append(s.loads, load)
	return load, nil
}

func (s *stubLoads) GetLoadByID(ctx context.Context, id string) (models.Load, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.loads {
		if l.ID == id {
			return l, nil
		}
	}
	return models.Load{}, models.ErrLoadNotFound
}

func (s *stubLoads) UpdateStatus(ctx context.Context, id, from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.loads {
		if l.ID == id {
			if l.Status != from {
				return models.ErrInvalidTransition
			}
			s.loads[i].Status = to
			return nil
		}
	}
	return models.ErrLoadNotFound
}

type stubCache struct {
	loads       []models.Load
	warm        bool
	sets        int
	invalidated int
	getErr      error
}

func (c *stubCache) Get(ctx context.Context) ([]models.Load, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	return c.loads, c.warm, nil
}

func (c *stubCache) Set(ctx context.Context, loads []models.Load) error {
	c.loads, c.warm = loads, true
	c.sets++
	return nil
}

func (c *stubCache) Invalidate(ctx context.Context) error {
	c.loads, c.warm = nil, false
	c.invalidated++
	return nil
}

type feedEvent struct {
	event string
	load  models.Load
}

type stubFeed struct{ events []feedEvent }

func (f *stubFeed) BroadcastLoad(event string, load models.Load) {
	f.events = append(f.events, feedEvent{event, load})
}

type stubUsers struct {
	users    map[string]models.User
	sessions map[string]models.Session
	fcm      map[string]string
}

func newStubUsers(users ...models.User) *stubUsers {
	s := &stubUsers{
		users:    make(map[string]models.User),
		sessions: make(map[string]models.Session),
		fcm:      make(map[string]string),
	}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *stubUsers) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	s.users[user.ID] = user
	return user, nil
}

func (s *stubUsers) GetUserByID(ctx context.Context, id string) (models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return models.User{}, models.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUsers) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, models.ErrUserNotFound
}

func (s *stubUsers) SetSession(ctx context.Context, userID string, session models.Session) error {
	if _, ok := s.users[userID]; !ok {
		return models.ErrUserNotFound
	}
	for token, existing := range s.sessions {
		if existing.UserID == userID {
			delete(s.sessions, token)
		}
	}
	s.sessions[session.RefreshToken] = session
	return nil
}

func (s *stubUsers) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	session, ok := s.sessions[refreshToken]
	if !ok {
		return models.Session{}, models.ErrSessionExpired
	}
	return session, nil
}

func (s *stubUsers) ClearSession(ctx context.Context, userID string) error {
	for token, existing := range s.sessions {
		if existing.UserID == userID {
			delete(s.sessions, token)
		}
	}
	return nil
}

func (s *stubUsers) SetFCMToken(ctx context.Context, userID, token string) error {
	if _, ok := s.users[userID]; !ok {
		return models.ErrUserNotFound
	}
	s.fcm[userID] = token
	return nil
}

func (s *stubUsers) SetKeycode(ctx context.Context, userID, keycodeHash string) error {
	u, ok := s.users[userID]
	if !ok {
		return models.ErrUserNotFound
	}
	u.Keycode = keycodeHash
	s.users[userID] = u
	return nil
}

type stubTrucks struct{ trucks []models.Truck }

func (s *stubTrucks) CreateTruck(ctx context.Context, truck models.Truck) (models.Truck, error) {
	s.trucks = append(s.trucks, truck)
	return truck, nil
}

func (s *stubTrucks) ListByUser(ctx context.Context, userID string) ([]models.Truck, error) {
	var out []models.Truck
	for _, t := range s.trucks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

type stubAlerts struct {
	alerts   []models.BackhaulAlert
	tokens   map[string]string
	limits   []int
	attempts map[string]int
}

func (s *stubAlerts) ListByUser(ctx context.Context, userID, status string, limit int) ([]models.BackhaulAlert, error) {
	s.limits = append(s.limits, limit)
	var out []models.BackhaulAlert
	for _, a := range s.alerts {
		if a.UserID == userID && (status == "" || a.Status == status) {
			out = append(out, a)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubAlerts) GetByID(ctx context.Context, id string) (models.BackhaulAlert, error) {
	for _, a := range s.alerts {
		if a.ID == id {
			return a, nil
		}
	}
	return models.BackhaulAlert{}, models.ErrAlertNotFound
}

func (s *stubAlerts) UpdateStatus(ctx context.Context, id, status string) error {
	for i := range s.alerts {
		if s.alerts[i].ID == id {
			s.alerts[i].Status = status
			return nil
		}
	}
	return models.ErrAlertNotFound
}

func (s *stubAlerts) ListUnpushedPending(ctx context.Context, limit, maxAttempts int) ([]models.PendingPush, error) {
	var out []models.PendingPush
	for _, a := range s.alerts {
		if len(out) == limit {
			break
		}
		token := s.tokens[a.UserID]
		if a.Status == models.AlertStatusPending && a.PushedAt == nil && s.attempts[a.ID] < maxAttempts && token != "" {
			out = append(out, models.PendingPush{Alert: a, FCMToken: token})
		}
	}
	return out, nil
}

func (s *stubAlerts) RecordPushFailure(ctx context.Context, id, reason string) error {
	if s.attempts == nil {
		s.attempts = make(map[string]int)
	}
	s.attempts[id]++
	return nil
}

func (s *stubAlerts) MarkPushed(ctx context.Context, id string, at time.Time) error {
	for i := range s.alerts {
		if s.alerts[i].ID == id {
			t := at
			s.alerts[i].PushedAt = &t
			return nil
		}
	}
	return models.ErrAlertNotFound
}

type stubCompanyUsers struct{ users []models.CompanyUser }

func (s *stubCompanyUsers) ListByCompany(ctx context.Context, companyID string) ([]models.CompanyUser, error) {
	var out []models.CompanyUser
	for _, u := range s.users {
		if u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *stubCompanyUsers) CreateCompanyUser(ctx context.Context, u models.CompanyUser) (models.CompanyUser, error) {
	s.users = append(s.users, u)
	return u, nil
}

type stubNotifier struct {
	sent     []string
	fail     map[string]bool
	failWith map[string]error // by device token
	calls    int
}

func (n *stubNotifier) NotifyAlert(ctx context.Context, token string, alert models.BackhaulAlert) error {
	n.calls++
	if err := n.failWith[token]; err != nil {
		return err
	}
	if n.fail[alert.ID] {
		return errors.New("fcm unavailable")
	}
	n.sent = append(n.sent, alert.ID)
	return nil
}

type stubUploader struct {
	keys []string
}

func (u *stubUploader) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	u.keys = append(u.keys, key)
	return "https://files.example.com/" + key, nil
}
