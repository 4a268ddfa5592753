package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"tradelink_server/models"
	errs "tradelink_server/pkg/errors"

	"github.com/google/uuid"
)

// EngagementStore is the persistence contract the state machine runs on. Every
// mutation is a conditional write: when the stored row no longer matches the
// expected status the store answers errs.ErrConditionFailed (or ErrConflict
// for Insert) and leaves the row untouched.
type EngagementStore interface {
	Insert(ctx context.Context, engagement *models.Engagement) error
	Get(ctx context.Context, engagementID string) (*models.Engagement, error)
	Respond(ctx context.Context, engagement *models.Engagement, accept bool) (*models.Engagement, error)
	RequestCompletion(ctx context.Context, engagement *models.Engagement) (*models.Engagement, error)
	ResolveCompletion(ctx context.Context, engagement *models.Engagement, confirm bool) (*models.Engagement, error)
	LatestBetween(ctx context.Context, userA, userB string) (*models.Engagement, error)
	ListByUser(ctx context.Context, userID, role string, statuses []string) ([]models.Engagement, error)
}

// EngagementService owns the hire lifecycle between a client and a tradesman.
// State is persisted first; notifications are a best-effort nudge afterwards.
type EngagementService struct {
	Store    EngagementStore
	Notifier *NotificationService
}

// RequestEngagement creates a pending hire request from a client to a
// tradesman. At most one active (pending or accepted) engagement may exist
// per pair at any time.
func (s *EngagementService) RequestEngagement(ctx context.Context, clientID, role, tradesmanID, jobDescription string) (*models.Engagement, error) {
	if role != models.RoleClient {
		return nil, fmt.Errorf("only clients can send hire requests: %w", errs.ErrForbidden)
	}
	if tradesmanID == "" {
		return nil, fmt.Errorf("tradesmanId is required: %w", errs.ErrValidation)
	}
	if tradesmanID == clientID {
		return nil, fmt.Errorf("cannot hire yourself: %w", errs.ErrValidation)
	}

	now := models.NowStamp()
	engagement := &models.Engagement{
		EngagementID:   uuid.New().String(),
		ClientID:       clientID,
		TradesmanID:    tradesmanID,
		PairKey:        models.PairKey(clientID, tradesmanID),
		Status:         models.StatusPending,
		JobDescription: jobDescription,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Store.Insert(ctx, engagement); err != nil {
		return nil, err
	}

	log.Printf("📨 Hire request %s: %s -> %s", engagement.EngagementID, clientID, tradesmanID)
	s.notify(tradesmanID, models.EventHireRequest, engagement)
	return engagement, nil
}

// RespondEngagement lets the tradesman accept or reject a pending request.
func (s *EngagementService) RespondEngagement(ctx context.Context, tradesmanID, role, engagementID, action string) (*models.Engagement, error) {
	if role != models.RoleTradesman {
		return nil, fmt.Errorf("only tradesmen can respond to hire requests: %w", errs.ErrForbidden)
	}
	if action != models.ActionAccept && action != models.ActionReject {
		return nil, fmt.Errorf("action must be %q or %q: %w", models.ActionAccept, models.ActionReject, errs.ErrValidation)
	}

	engagement, err := s.ownedEngagement(ctx, engagementID, "", tradesmanID)
	if err != nil {
		return nil, err
	}
	if engagement.Status != models.StatusPending {
		return nil, fmt.Errorf("hire is not pending: %w", errs.ErrInvalidState)
	}

	updated, err := s.Store.Respond(ctx, engagement, action == models.ActionAccept)
	if err != nil {
		if errors.Is(err, errs.ErrConditionFailed) {
			return nil, fmt.Errorf("hire is no longer pending: %w", errs.ErrInvalidState)
		}
		return nil, err
	}

	log.Printf("📨 Hire %s %s by %s", engagementID, updated.Status, tradesmanID)
	s.notify(updated.ClientID, models.EventHireResponse, updated)
	return updated, nil
}

// RequestCompletion lets the tradesman ask the client to confirm the job is
// done. Guarded against duplicate prompts while one is already pending.
func (s *EngagementService) RequestCompletion(ctx context.Context, tradesmanID, role, engagementID string) (*models.Engagement, error) {
	if role != models.RoleTradesman {
		return nil, fmt.Errorf("only tradesmen can request completion: %w", errs.ErrForbidden)
	}

	engagement, err := s.ownedEngagement(ctx, engagementID, "", tradesmanID)
	if err != nil {
		return nil, err
	}
	if engagement.Status != models.StatusAccepted {
		return nil, fmt.Errorf("only accepted hires can be completed: %w", errs.ErrInvalidState)
	}
	if engagement.CompletionRequested {
		return nil, fmt.Errorf("completion already requested: %w", errs.ErrConflict)
	}

	updated, err := s.Store.RequestCompletion(ctx, engagement)
	if err != nil {
		if errors.Is(err, errs.ErrConditionFailed) {
			return nil, s.classifyCompletionRace(ctx, engagementID)
		}
		return nil, err
	}

	log.Printf("🔔 Completion requested on hire %s by %s", engagementID, tradesmanID)
	s.notify(updated.ClientID, models.EventCompletionRequest, updated)
	return updated, nil
}

// ConfirmCompletion lets the client answer a pending completion request.
// confirm=false clears the prompt and keeps the hire accepted; confirm=true
// completes the hire for good.
func (s *EngagementService) ConfirmCompletion(ctx context.Context, clientID, role, engagementID string, confirm bool) (*models.Engagement, error) {
	if role != models.RoleClient {
		return nil, fmt.Errorf("only clients can confirm completion: %w", errs.ErrForbidden)
	}

	engagement, err := s.ownedEngagement(ctx, engagementID, clientID, "")
	if err != nil {
		return nil, err
	}
	if engagement.Status != models.StatusAccepted || !engagement.CompletionRequested {
		return nil, fmt.Errorf("no completion request pending: %w", errs.ErrInvalidState)
	}

	updated, err := s.Store.ResolveCompletion(ctx, engagement, confirm)
	if err != nil {
		if errors.Is(err, errs.ErrConditionFailed) {
			return nil, fmt.Errorf("no completion request pending: %w", errs.ErrInvalidState)
		}
		return nil, err
	}

	log.Printf("🔔 Completion %v on hire %s by %s", confirm, engagementID, clientID)
	s.notify(updated.TradesmanID, models.EventCompletionResult, updated)
	return updated, nil
}

// GetLatestEngagement returns the newest engagement between the unordered
// pair, or nil when the two users have no hire history. Read-only.
func (s *EngagementService) GetLatestEngagement(ctx context.Context, userID, otherID string) (*models.Engagement, error) {
	if otherID == "" {
		return nil, fmt.Errorf("userId is required: %w", errs.ErrValidation)
	}
	return s.Store.LatestBetween(ctx, userID, otherID)
}

// ListEngagements returns the user's engagements on their side of the
// relationship, newest first. filter: all | active | completed.
func (s *EngagementService) ListEngagements(ctx context.Context, userID, role, filter string) ([]models.Engagement, error) {
	if role != models.RoleClient && role != models.RoleTradesman {
		return nil, fmt.Errorf("unknown role %q: %w", role, errs.ErrForbidden)
	}
	statuses, ok := models.StatusesForFilter(filter)
	if !ok {
		return nil, fmt.Errorf("unknown filter %q: %w", filter, errs.ErrValidation)
	}
	return s.Store.ListByUser(ctx, userID, role, statuses)
}

// ownedEngagement fetches the engagement and verifies the caller is the named
// party. A foreign engagement is reported as not found, not as forbidden, so
// ids cannot be probed.
func (s *EngagementService) ownedEngagement(ctx context.Context, engagementID, clientID, tradesmanID string) (*models.Engagement, error) {
	if engagementID == "" {
		return nil, fmt.Errorf("hireId is required: %w", errs.ErrValidation)
	}
	engagement, err := s.Store.Get(ctx, engagementID)
	if err != nil {
		return nil, err
	}
	if clientID != "" && engagement.ClientID != clientID {
		return nil, fmt.Errorf("hire not found for this client: %w", errs.ErrNotFound)
	}
	if tradesmanID != "" && engagement.TradesmanID != tradesmanID {
		return nil, fmt.Errorf("hire not found for this tradesman: %w", errs.ErrNotFound)
	}
	return engagement, nil
}

// classifyCompletionRace re-reads the row after a lost conditional write to
// report the accurate error kind.
func (s *EngagementService) classifyCompletionRace(ctx context.Context, engagementID string) error {
	engagement, err := s.Store.Get(ctx, engagementID)
	if err != nil {
		return err
	}
	if engagement.Status != models.StatusAccepted {
		return fmt.Errorf("only accepted hires can be completed: %w", errs.ErrInvalidState)
	}
	return fmt.Errorf("completion already requested: %w", errs.ErrConflict)
}

func (s *EngagementService) notify(userID, event string, payload interface{}) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.Notify(userID, event, payload)
}
