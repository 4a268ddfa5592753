package services

import (
	"context"
	"fmt"
	"log"
	"sort"

	"tradelink_server/models"
	"tradelink_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoMessageStore keeps the append-only chat log in the Messages table,
// partitioned by conversation key with createdAt as the sort key.
type DynamoMessageStore struct {
	Dynamo *DynamoService
}

func NewDynamoMessageStore(dynamo *DynamoService) *DynamoMessageStore {
	return &DynamoMessageStore{Dynamo: dynamo}
}

// Insert appends a message to the log.
func (s *DynamoMessageStore) Insert(ctx context.Context, message *models.Message) error {
	if err := s.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		return fmt.Errorf("failed to store message: %w", err)
	}
	return nil
}

// ListConversation returns every message of the unordered pair, oldest first.
func (s *DynamoMessageStore) ListConversation(ctx context.Context, userA, userB string) ([]models.Message, error) {
	items, err := s.Dynamo.QueryItemsWithOptions(ctx,
		models.MessagesTable,
		"",
		"conversationKey = :conversationKey",
		map[string]types.AttributeValue{
			":conversationKey": &types.AttributeValueMemberS{Value: models.ConversationKey(userA, userB)},
		},
		nil, "", 0, false,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversation: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}
	return messages, nil
}

// ListByUser returns every message the user sent or received, newest first.
// Merged from the sender and receiver GSIs and sorted manually, since the two
// query results interleave.
func (s *DynamoMessageStore) ListByUser(ctx context.Context, userID string) ([]models.Message, error) {
	var messages []models.Message
	for indexName, keyAttribute := range map[string]string{
		models.SenderIDIndex:   "senderId",
		models.ReceiverIDIndex: "receiverId",
	} {
		items, err := s.Dynamo.QueryItemsWithOptions(ctx,
			models.MessagesTable,
			indexName,
			keyAttribute+" = :user",
			map[string]types.AttributeValue{
				":user": &types.AttributeValueMemberS{Value: userID},
			},
			nil, "", 0, true,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch messages for user %s: %w", userID, err)
		}

		var batch []models.Message
		if err := attributevalue.UnmarshalListOfMaps(items, &batch); err != nil {
			return nil, fmt.Errorf("failed to parse messages: %w", err)
		}
		messages = append(messages, batch...)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt > messages[j].CreatedAt
	})
	return messages, nil
}

// MarkRead flags every unread message from the partner to the user as read
// and returns how many rows changed. Invoking it again is a zero-row no-op.
func (s *DynamoMessageStore) MarkRead(ctx context.Context, userID, partnerID string) (int, error) {
	items, err := s.Dynamo.QueryItemsWithOptions(ctx,
		models.MessagesTable,
		"",
		"conversationKey = :conversationKey",
		map[string]types.AttributeValue{
			":conversationKey": &types.AttributeValueMemberS{Value: models.ConversationKey(userID, partnerID)},
			":partner":         &types.AttributeValueMemberS{Value: partnerID},
			":unread":          &types.AttributeValueMemberBOOL{Value: false},
		},
		nil,
		"senderId = :partner AND isRead = :unread",
		0, false,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch unread messages: %w", err)
	}

	var writeRequests []types.WriteRequest
	for _, item := range items {
		item["isRead"] = &types.AttributeValueMemberBOOL{Value: true}
		writeRequests = append(writeRequests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
		log.Printf("📖 Marking message %s as read", utils.ExtractString(item, "messageId"))
	}

	if len(writeRequests) > 0 {
		if err := s.Dynamo.BatchWriteItems(ctx, models.MessagesTable, writeRequests); err != nil {
			return 0, fmt.Errorf("failed to mark messages as read: %w", err)
		}
	}

	return len(items), nil
}
