package services

import (
	"context"
	"fmt"
	"log"

	"tradelink_server/models"
	errs "tradelink_server/pkg/errors"

	"github.com/google/uuid"
)

// MessageStore is the persistence contract for the append-only chat log.
type MessageStore interface {
	Insert(ctx context.Context, message *models.Message) error
	ListConversation(ctx context.Context, userA, userB string) ([]models.Message, error)
	ListByUser(ctx context.Context, userID string) ([]models.Message, error)
	MarkRead(ctx context.Context, userID, partnerID string) (int, error)
}

// ChatService owns message sends and the derived conversation views. A
// conversation is never stored: it is recomputed from the flat log on read.
type ChatService struct {
	Messages MessageStore
	Profiles ProfileStore
	Notifier *NotificationService
}

// SendMessage appends a message to the log and nudges the receiver's live
// connection if they are online.
func (s *ChatService) SendMessage(ctx context.Context, senderID, receiverID, body string) (*models.Message, error) {
	if receiverID == "" || body == "" {
		return nil, fmt.Errorf("receiverId and message are required: %w", errs.ErrValidation)
	}
	if receiverID == senderID {
		return nil, fmt.Errorf("cannot message yourself: %w", errs.ErrValidation)
	}

	message := &models.Message{
		ConversationKey: models.ConversationKey(senderID, receiverID),
		MessageID:       uuid.New().String(),
		SenderID:        senderID,
		ReceiverID:      receiverID,
		Body:            body,
		IsRead:          false,
		CreatedAt:       models.NowStamp(),
	}

	if err := s.Messages.Insert(ctx, message); err != nil {
		return nil, err
	}

	log.Printf("📩 Message %s: %s -> %s", message.MessageID, senderID, receiverID)
	if s.Notifier != nil {
		s.Notifier.Notify(receiverID, models.EventNewMessage, message.ViewFor(receiverID))
	}
	return message, nil
}

// conversationEntry is one folded partner before profile hydration.
type conversationEntry struct {
	partnerID   string
	lastMessage models.Message
	unreadCount int
}

// foldConversations walks the user's messages (already newest first) and
// dedupes them into distinct partners in order of most recent activity. The
// first message seen per partner is their last message; unread counts only
// messages addressed to the user.
func foldConversations(userID string, messages []models.Message) []conversationEntry {
	order := make([]string, 0)
	byPartner := make(map[string]*conversationEntry)

	for _, message := range messages {
		partnerID := message.SenderID
		if partnerID == userID {
			partnerID = message.ReceiverID
		}

		entry, seen := byPartner[partnerID]
		if !seen {
			entry = &conversationEntry{partnerID: partnerID, lastMessage: message}
			byPartner[partnerID] = entry
			order = append(order, partnerID)
		}
		if message.SenderID == partnerID && message.ReceiverID == userID && !message.IsRead {
			entry.unreadCount++
		}
	}

	entries := make([]conversationEntry, 0, len(order))
	for _, partnerID := range order {
		entries = append(entries, *byPartner[partnerID])
	}
	return entries
}

// GetConversationList derives the user's chat list: one entry per distinct
// partner with last message and unread count, paginated over partners (never
// over raw messages, which would split a conversation across pages). The full
// partner list is materialized before slicing; only the returned page is
// hydrated with profile summaries.
func (s *ChatService) GetConversationList(ctx context.Context, userID string, page, pageSize int) ([]models.ConversationSummary, int, error) {
	page, pageSize = clampPagination(page, pageSize)

	messages, err := s.Messages.ListByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	entries := foldConversations(userID, messages)
	total := len(entries)
	pageEntries := slicePage(entries, page, pageSize)

	partnerIDs := make([]string, 0, len(pageEntries))
	for _, entry := range pageEntries {
		partnerIDs = append(partnerIDs, entry.partnerID)
	}

	profiles, err := s.Profiles.GetBatch(ctx, partnerIDs)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]models.ConversationSummary, 0, len(pageEntries))
	for _, entry := range pageEntries {
		partner := models.UserSummary{UserID: entry.partnerID}
		if profile, ok := profiles[entry.partnerID]; ok {
			partner = profile.Summary()
		}

		lastMessage := entry.lastMessage.ViewFor(userID)
		summaries = append(summaries, models.ConversationSummary{
			Partner:     partner,
			LastMessage: &lastMessage,
			UnreadCount: entry.unreadCount,
		})
	}

	return summaries, total, nil
}

// GetConversationMessages pages chronologically (oldest first) through the
// conversation with one partner, each message annotated with isMine.
func (s *ChatService) GetConversationMessages(ctx context.Context, userID, partnerID string, page, pageSize int) ([]models.MessageView, int, error) {
	if partnerID == "" {
		return nil, 0, fmt.Errorf("userId is required: %w", errs.ErrValidation)
	}
	page, pageSize = clampPagination(page, pageSize)

	messages, err := s.Messages.ListConversation(ctx, userID, partnerID)
	if err != nil {
		return nil, 0, err
	}

	total := len(messages)
	views := make([]models.MessageView, 0, pageSize)
	for _, message := range slicePage(messages, page, pageSize) {
		views = append(views, message.ViewFor(userID))
	}
	return views, total, nil
}

// MarkRead flags every unread message from the partner as read and returns
// the number of rows updated. Idempotent.
func (s *ChatService) MarkRead(ctx context.Context, userID, partnerID string) (int, error) {
	if partnerID == "" {
		return 0, fmt.Errorf("conversationWith is required: %w", errs.ErrValidation)
	}
	updated, err := s.Messages.MarkRead(ctx, userID, partnerID)
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		log.Printf("📖 Marked %d messages read for %s <- %s", updated, userID, partnerID)
	}
	return updated, nil
}

// clampPagination applies the same defaults and bounds as the HTTP layer has
// always used: page >= 1, pageSize in [1, 100] with a default of 20.
func clampPagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func slicePage[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
