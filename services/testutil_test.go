package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"tradelink_server/models"
	errs "tradelink_server/pkg/errors"
)

// memEngagementStore mirrors the conditional-write behavior of the DynamoDB
// store: every mutation checks the stored row under the lock, and the pair
// lock is created with the engagement and released on terminal transitions.
type memEngagementStore struct {
	mu          sync.Mutex
	engagements map[string]models.Engagement
	locks       map[string]string
}

func newMemEngagementStore() *memEngagementStore {
	return &memEngagementStore{
		engagements: make(map[string]models.Engagement),
		locks:       make(map[string]string),
	}
}

func (s *memEngagementStore) Insert(ctx context.Context, engagement *models.Engagement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, held := s.locks[engagement.PairKey]; held {
		return fmt.Errorf("active hire already exists for this pair: %w", errs.ErrConflict)
	}
	s.locks[engagement.PairKey] = engagement.EngagementID
	s.engagements[engagement.EngagementID] = *engagement
	return nil
}

func (s *memEngagementStore) Get(ctx context.Context, engagementID string) (*models.Engagement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	engagement, ok := s.engagements[engagementID]
	if !ok {
		return nil, fmt.Errorf("hire %s: %w", engagementID, errs.ErrNotFound)
	}
	return &engagement, nil
}

func (s *memEngagementStore) Respond(ctx context.Context, engagement *models.Engagement, accept bool) (*models.Engagement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.engagements[engagement.EngagementID]
	if !ok || stored.Status != models.StatusPending {
		return nil, errs.ErrConditionFailed
	}
	if accept {
		stored.Status = models.StatusAccepted
	} else {
		stored.Status = models.StatusRejected
		delete(s.locks, stored.PairKey)
	}
	stored.UpdatedAt = models.NowStamp()
	s.engagements[stored.EngagementID] = stored
	return &stored, nil
}

func (s *memEngagementStore) RequestCompletion(ctx context.Context, engagement *models.Engagement) (*models.Engagement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.engagements[engagement.EngagementID]
	if !ok || stored.Status != models.StatusAccepted || stored.CompletionRequested {
		return nil, errs.ErrConditionFailed
	}
	stored.CompletionRequested = true
	stored.UpdatedAt = models.NowStamp()
	s.engagements[stored.EngagementID] = stored
	return &stored, nil
}

func (s *memEngagementStore) ResolveCompletion(ctx context.Context, engagement *models.Engagement, confirm bool) (*models.Engagement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.engagements[engagement.EngagementID]
	if !ok || stored.Status != models.StatusAccepted || !stored.CompletionRequested {
		return nil, errs.ErrConditionFailed
	}
	stored.CompletionRequested = false
	if confirm {
		stored.Status = models.StatusCompleted
		delete(s.locks, stored.PairKey)
	}
	stored.UpdatedAt = models.NowStamp()
	s.engagements[stored.EngagementID] = stored
	return &stored, nil
}

func (s *memEngagementStore) LatestBetween(ctx context.Context, userA, userB string) (*models.Engagement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *models.Engagement
	for _, engagement := range s.engagements {
		pair := engagement.ClientID == userA && engagement.TradesmanID == userB ||
			engagement.ClientID == userB && engagement.TradesmanID == userA
		if !pair {
			continue
		}
		if latest == nil || engagement.CreatedAt > latest.CreatedAt {
			copied := engagement
			latest = &copied
		}
	}
	return latest, nil
}

func (s *memEngagementStore) ListByUser(ctx context.Context, userID, role string, statuses []string) ([]models.Engagement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var results []models.Engagement
	for _, engagement := range s.engagements {
		if role == models.RoleClient && engagement.ClientID != userID {
			continue
		}
		if role == models.RoleTradesman && engagement.TradesmanID != userID {
			continue
		}
		if len(statuses) > 0 && !containsStatus(statuses, engagement.Status) {
			continue
		}
		results = append(results, engagement)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt > results[j].CreatedAt
	})
	return results, nil
}

func containsStatus(statuses []string, status string) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

// memMessageStore keeps the flat message log in a slice.
type memMessageStore struct {
	mu       sync.Mutex
	messages []models.Message
}

func newMemMessageStore() *memMessageStore {
	return &memMessageStore{}
}

func (s *memMessageStore) Insert(ctx context.Context, message *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, *message)
	return nil
}

func (s *memMessageStore) ListConversation(ctx context.Context, userA, userB string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := models.ConversationKey(userA, userB)
	var results []models.Message
	for _, message := range s.messages {
		if message.ConversationKey == key {
			results = append(results, message)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt < results[j].CreatedAt
	})
	return results, nil
}

func (s *memMessageStore) ListByUser(ctx context.Context, userID string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var results []models.Message
	for _, message := range s.messages {
		if message.SenderID == userID || message.ReceiverID == userID {
			results = append(results, message)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt > results[j].CreatedAt
	})
	return results, nil
}

func (s *memMessageStore) MarkRead(ctx context.Context, userID, partnerID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := models.ConversationKey(userID, partnerID)
	updated := 0
	for i := range s.messages {
		m := &s.messages[i]
		if m.ConversationKey == key && m.SenderID == partnerID && !m.IsRead {
			m.IsRead = true
			updated++
		}
	}
	return updated, nil
}

// memProfileStore keeps profiles in a map.
type memProfileStore struct {
	mu       sync.Mutex
	profiles map[string]models.UserProfile
}

func newMemProfileStore() *memProfileStore {
	return &memProfileStore{profiles: make(map[string]models.UserProfile)}
}

func (s *memProfileStore) Put(ctx context.Context, profile *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = *profile
	return nil
}

func (s *memProfileStore) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", userID, errs.ErrNotFound)
	}
	return &profile, nil
}

func (s *memProfileStore) GetBatch(ctx context.Context, userIDs []string) (map[string]models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := make(map[string]models.UserProfile, len(userIDs))
	for _, userID := range userIDs {
		if profile, ok := s.profiles[userID]; ok {
			results[userID] = profile
		}
	}
	return results, nil
}

func (s *memProfileStore) Update(ctx context.Context, userID string, updates map[string]string) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", userID, errs.ErrNotFound)
	}
	for field, value := range updates {
		switch field {
		case "name":
			profile.Name = value
		case "trade":
			profile.Trade = value
		case "location":
			profile.Location = value
		case "profileImage":
			profile.ProfileImage = value
		}
	}
	s.profiles[userID] = profile
	return &profile, nil
}

func (s *memProfileStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, userID)
	return nil
}

func (s *memProfileStore) BrowseTradesmen(ctx context.Context, filters map[string]string) ([]models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var results []models.UserProfile
	for _, profile := range s.profiles {
		if profile.Role != models.RoleTradesman {
			continue
		}
		if trade, ok := filters["trade"]; ok && profile.Trade != trade {
			continue
		}
		if location, ok := filters["location"]; ok && profile.Location != location {
			continue
		}
		results = append(results, profile)
	}
	return results, nil
}

// fakeConn records everything emitted to it.
type emitted struct {
	Event   string
	Payload interface{}
}

type fakeConn struct {
	id    string
	mu    sync.Mutex
	sends []emitted
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Emit(event string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var payload interface{}
	if len(args) > 0 {
		payload = args[0]
	}
	c.sends = append(c.sends, emitted{Event: event, Payload: payload})
}

func (c *fakeConn) emitted() []emitted {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]emitted, len(c.sends))
	copy(out, c.sends)
	return out
}
