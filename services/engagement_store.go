package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"tradelink_server/models"
	errs "tradelink_server/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoEngagementStore keeps engagements in the Engagements table and the
// active-pair uniqueness guard in EngagementLocks. Every transition is a
// conditional write so concurrent conflicting calls resolve to one winner.
type DynamoEngagementStore struct {
	Dynamo *DynamoService
}

func NewDynamoEngagementStore(dynamo *DynamoService) *DynamoEngagementStore {
	return &DynamoEngagementStore{Dynamo: dynamo}
}

func engagementKey(engagementID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"engagementId": &types.AttributeValueMemberS{Value: engagementID},
	}
}

func lockKey(pairKey string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pairKey": &types.AttributeValueMemberS{Value: pairKey},
	}
}

// Insert creates the engagement together with its pair lock. Fails with
// ErrConflict when the pair already has an active engagement.
func (s *DynamoEngagementStore) Insert(ctx context.Context, engagement *models.Engagement) error {
	engagementItem, err := attributevalue.MarshalMap(engagement)
	if err != nil {
		return fmt.Errorf("failed to marshal engagement: %w", err)
	}
	lockItem, err := attributevalue.MarshalMap(models.EngagementLock{
		PairKey:      engagement.PairKey,
		EngagementID: engagement.EngagementID,
		CreatedAt:    engagement.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal engagement lock: %w", err)
	}

	err = s.Dynamo.TransactWriteItems(ctx, []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName: aws.String(models.EngagementsTable),
				Item:      engagementItem,
			},
		},
		{
			Put: &types.Put{
				TableName:           aws.String(models.EngagementLocksTable),
				Item:                lockItem,
				ConditionExpression: aws.String("attribute_not_exists(pairKey)"),
			},
		},
	})
	if err != nil {
		if errors.Is(err, errs.ErrConditionFailed) {
			return fmt.Errorf("active engagement already exists for pair %s: %w", engagement.PairKey, errs.ErrConflict)
		}
		return err
	}
	return nil
}

// Get fetches an engagement by id. Fails with ErrNotFound when absent.
func (s *DynamoEngagementStore) Get(ctx context.Context, engagementID string) (*models.Engagement, error) {
	item, err := s.Dynamo.GetItem(ctx, models.EngagementsTable, engagementKey(engagementID))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("engagement %s: %w", engagementID, errs.ErrNotFound)
	}

	var engagement models.Engagement
	if err := attributevalue.UnmarshalMap(item, &engagement); err != nil {
		return nil, fmt.Errorf("failed to unmarshal engagement: %w", err)
	}
	return &engagement, nil
}

// Respond flips a pending engagement to accepted or rejected. Rejection is
// terminal, so it releases the pair lock in the same transaction.
func (s *DynamoEngagementStore) Respond(ctx context.Context, engagement *models.Engagement, accept bool) (*models.Engagement, error) {
	if accept {
		return s.updateStatus(ctx, engagement.EngagementID, models.StatusPending, models.StatusAccepted)
	}
	return s.terminalTransition(ctx, engagement, "#status = :from", map[string]types.AttributeValue{
		":from": &types.AttributeValueMemberS{Value: models.StatusPending},
	}, models.StatusRejected)
}

// RequestCompletion sets the completion flag on an accepted engagement.
func (s *DynamoEngagementStore) RequestCompletion(ctx context.Context, engagement *models.Engagement) (*models.Engagement, error) {
	updated, err := s.Dynamo.UpdateItemConditional(ctx,
		models.EngagementsTable,
		"SET completionRequested = :flag, updatedAt = :now",
		"#status = :accepted AND completionRequested = :noflag",
		engagementKey(engagement.EngagementID),
		map[string]types.AttributeValue{
			":flag":     &types.AttributeValueMemberBOOL{Value: true},
			":noflag":   &types.AttributeValueMemberBOOL{Value: false},
			":accepted": &types.AttributeValueMemberS{Value: models.StatusAccepted},
			":now":      &types.AttributeValueMemberS{Value: models.NowStamp()},
		},
		map[string]string{"#status": "status"},
	)
	if err != nil {
		return nil, err
	}
	return unmarshalEngagement(updated)
}

// ResolveCompletion answers a pending completion request. confirm=false keeps
// the engagement accepted and clears the flag; confirm=true completes the
// engagement and releases the pair lock.
func (s *DynamoEngagementStore) ResolveCompletion(ctx context.Context, engagement *models.Engagement, confirm bool) (*models.Engagement, error) {
	if !confirm {
		updated, err := s.Dynamo.UpdateItemConditional(ctx,
			models.EngagementsTable,
			"SET completionRequested = :noflag, updatedAt = :now",
			"#status = :accepted AND completionRequested = :flag",
			engagementKey(engagement.EngagementID),
			map[string]types.AttributeValue{
				":flag":     &types.AttributeValueMemberBOOL{Value: true},
				":noflag":   &types.AttributeValueMemberBOOL{Value: false},
				":accepted": &types.AttributeValueMemberS{Value: models.StatusAccepted},
				":now":      &types.AttributeValueMemberS{Value: models.NowStamp()},
			},
			map[string]string{"#status": "status"},
		)
		if err != nil {
			return nil, err
		}
		return unmarshalEngagement(updated)
	}

	return s.terminalTransition(ctx, engagement, "#status = :from AND completionRequested = :flag", map[string]types.AttributeValue{
		":from": &types.AttributeValueMemberS{Value: models.StatusAccepted},
		":flag": &types.AttributeValueMemberBOOL{Value: true},
	}, models.StatusCompleted)
}

// LatestBetween returns the newest engagement across both directions of the
// pair, or nil when the two users have no hire history.
func (s *DynamoEngagementStore) LatestBetween(ctx context.Context, userA, userB string) (*models.Engagement, error) {
	var latest *models.Engagement
	for _, pairKey := range []string{models.PairKey(userA, userB), models.PairKey(userB, userA)} {
		items, err := s.Dynamo.QueryItemsWithOptions(ctx,
			models.EngagementsTable,
			models.PairKeyIndex,
			"pairKey = :pairKey",
			map[string]types.AttributeValue{
				":pairKey": &types.AttributeValueMemberS{Value: pairKey},
			},
			nil, "", 1, true,
		)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			continue
		}

		var engagement models.Engagement
		if err := attributevalue.UnmarshalMap(items[0], &engagement); err != nil {
			return nil, fmt.Errorf("failed to unmarshal engagement: %w", err)
		}
		if latest == nil || engagement.CreatedAt > latest.CreatedAt {
			latest = &engagement
		}
	}
	return latest, nil
}

// ListByUser returns the user's engagements on the given side of the
// relationship, newest first, optionally restricted to a status group.
func (s *DynamoEngagementStore) ListByUser(ctx context.Context, userID, role string, statuses []string) ([]models.Engagement, error) {
	indexName := models.ClientIDIndex
	keyAttribute := "clientId"
	if role == models.RoleTradesman {
		indexName = models.TradesmanIDIndex
		keyAttribute = "tradesmanId"
	}

	expressionValues := map[string]types.AttributeValue{
		":user": &types.AttributeValueMemberS{Value: userID},
	}
	expressionNames := map[string]string{}

	var filterExpression string
	if len(statuses) > 0 {
		expressionNames["#status"] = "status"
		var clauses []string
		for i, status := range statuses {
			placeholder := fmt.Sprintf(":status%d", i)
			expressionValues[placeholder] = &types.AttributeValueMemberS{Value: status}
			clauses = append(clauses, fmt.Sprintf("#status = %s", placeholder))
		}
		filterExpression = strings.Join(clauses, " OR ")
	}
	if len(expressionNames) == 0 {
		expressionNames = nil
	}

	items, err := s.Dynamo.QueryItemsWithOptions(ctx,
		models.EngagementsTable,
		indexName,
		keyAttribute+" = :user",
		expressionValues,
		expressionNames,
		filterExpression,
		0, true,
	)
	if err != nil {
		return nil, err
	}

	var engagements []models.Engagement
	if err := attributevalue.UnmarshalListOfMaps(items, &engagements); err != nil {
		return nil, fmt.Errorf("failed to unmarshal engagements: %w", err)
	}
	return engagements, nil
}

// updateStatus is the compare-and-swap for non-terminal transitions.
func (s *DynamoEngagementStore) updateStatus(ctx context.Context, engagementID, from, to string) (*models.Engagement, error) {
	updated, err := s.Dynamo.UpdateItemConditional(ctx,
		models.EngagementsTable,
		"SET #status = :to, updatedAt = :now",
		"#status = :from",
		engagementKey(engagementID),
		map[string]types.AttributeValue{
			":from": &types.AttributeValueMemberS{Value: from},
			":to":   &types.AttributeValueMemberS{Value: to},
			":now":  &types.AttributeValueMemberS{Value: models.NowStamp()},
		},
		map[string]string{"#status": "status"},
	)
	if err != nil {
		return nil, err
	}
	return unmarshalEngagement(updated)
}

// terminalTransition moves the engagement into a terminal status and releases
// the pair lock in one transaction.
func (s *DynamoEngagementStore) terminalTransition(
	ctx context.Context,
	engagement *models.Engagement,
	conditionExpression string,
	conditionValues map[string]types.AttributeValue,
	to string,
) (*models.Engagement, error) {
	now := models.NowStamp()

	expressionValues := map[string]types.AttributeValue{
		":to":     &types.AttributeValueMemberS{Value: to},
		":noflag": &types.AttributeValueMemberBOOL{Value: false},
		":now":    &types.AttributeValueMemberS{Value: now},
	}
	for placeholder, value := range conditionValues {
		expressionValues[placeholder] = value
	}

	err := s.Dynamo.TransactWriteItems(ctx, []types.TransactWriteItem{
		{
			Update: &types.Update{
				TableName:                 aws.String(models.EngagementsTable),
				Key:                       engagementKey(engagement.EngagementID),
				UpdateExpression:          aws.String("SET #status = :to, completionRequested = :noflag, updatedAt = :now"),
				ConditionExpression:       aws.String(conditionExpression),
				ExpressionAttributeValues: expressionValues,
				ExpressionAttributeNames:  map[string]string{"#status": "status"},
			},
		},
		{
			Delete: &types.Delete{
				TableName: aws.String(models.EngagementLocksTable),
				Key:       lockKey(engagement.PairKey),
			},
		},
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🔓 Released pair lock %s (engagement %s -> %s)", engagement.PairKey, engagement.EngagementID, to)

	updated := *engagement
	updated.Status = to
	updated.CompletionRequested = false
	updated.UpdatedAt = now
	return &updated, nil
}

func unmarshalEngagement(item map[string]types.AttributeValue) (*models.Engagement, error) {
	var engagement models.Engagement
	if err := attributevalue.UnmarshalMap(item, &engagement); err != nil {
		return nil, fmt.Errorf("failed to unmarshal engagement: %w", err)
	}
	return &engagement, nil
}
