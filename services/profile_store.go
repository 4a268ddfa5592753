package services

import (
	"context"
	"fmt"

	"tradelink_server/models"
	errs "tradelink_server/pkg/errors"
	"tradelink_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ProfileStore is the persistence contract for user profiles.
type ProfileStore interface {
	Put(ctx context.Context, profile *models.UserProfile) error
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	GetBatch(ctx context.Context, userIDs []string) (map[string]models.UserProfile, error)
	Update(ctx context.Context, userID string, updates map[string]string) (*models.UserProfile, error)
	Delete(ctx context.Context, userID string) error
	BrowseTradesmen(ctx context.Context, filters map[string]string) ([]models.UserProfile, error)
}

type DynamoProfileStore struct {
	Dynamo *DynamoService
}

func NewDynamoProfileStore(dynamo *DynamoService) *DynamoProfileStore {
	return &DynamoProfileStore{Dynamo: dynamo}
}

func profileKey(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
}

func (s *DynamoProfileStore) Put(ctx context.Context, profile *models.UserProfile) error {
	return s.Dynamo.PutItem(ctx, models.UserProfilesTable, profile)
}

func (s *DynamoProfileStore) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	item, err := s.Dynamo.GetItem(ctx, models.UserProfilesTable, profileKey(userID))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("profile %s: %w", userID, errs.ErrNotFound)
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// GetBatch fetches profiles for the given ids in one round trip. Missing
// profiles are simply absent from the result, not an error.
func (s *DynamoProfileStore) GetBatch(ctx context.Context, userIDs []string) (map[string]models.UserProfile, error) {
	profiles := make(map[string]models.UserProfile, len(userIDs))
	if len(userIDs) == 0 {
		return profiles, nil
	}

	keys := make([]map[string]types.AttributeValue, 0, len(userIDs))
	for _, userID := range userIDs {
		keys = append(keys, profileKey(userID))
	}

	items, err := s.Dynamo.BatchGetItems(ctx, models.UserProfilesTable, keys)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		var profile models.UserProfile
		if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
			continue
		}
		profiles[profile.UserID] = profile
	}
	return profiles, nil
}

func (s *DynamoProfileStore) Update(ctx context.Context, userID string, updates map[string]string) (*models.UserProfile, error) {
	updateExpression := "SET"
	expressionAttributeValues := make(map[string]types.AttributeValue)
	expressionAttributeNames := make(map[string]string)

	for field, value := range updates {
		placeholder := ":" + field
		attributeName := "#" + field
		updateExpression += " " + attributeName + " = " + placeholder + ","

		expressionAttributeValues[placeholder] = &types.AttributeValueMemberS{Value: value}
		expressionAttributeNames[attributeName] = field
	}
	updateExpression = updateExpression[:len(updateExpression)-1]

	updatedItem, err := s.Dynamo.UpdateItem(ctx, models.UserProfilesTable, updateExpression, profileKey(userID), expressionAttributeValues, expressionAttributeNames)
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(updatedItem, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

func (s *DynamoProfileStore) Delete(ctx context.Context, userID string) error {
	return s.Dynamo.DeleteItem(ctx, models.UserProfilesTable, profileKey(userID))
}

// BrowseTradesmen scans for tradesman profiles matching the given attribute
// filters (trade, location).
func (s *DynamoProfileStore) BrowseTradesmen(ctx context.Context, filters map[string]string) ([]models.UserProfile, error) {
	matchFields := map[string]string{"role": models.RoleTradesman}
	for field, value := range filters {
		if value != "" {
			matchFields[field] = value
		}
	}

	var profiles []models.UserProfile
	err := s.Dynamo.ScanWithFilter(ctx, models.UserProfilesTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "userId") != ""
	}, matchFields, &profiles)
	if err != nil {
		return nil, fmt.Errorf("failed to browse tradesmen: %w", err)
	}
	return profiles, nil
}
