package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

func (s *Store) UpsertLimit(ctx context.Context, limit domain.CapacityLimit) error {
	av, err := attributevalue.MarshalMap(limitItem{
		PK:        pkLimit,
		SK:        string(limit.TruckType),
		MaxPerDay: limit.MaxPerDay,
		UpdatedAt: nowString(),
	})
	if err != nil {
		return fmt.Errorf("marshal limit: %w", err)
	}
	if _, err := s.ddb.PutItem(ctx, &dynamodb.PutItemInput{TableName: aws.String(s.tableName), Item: av}); err != nil {
		return fmt.Errorf("upsert limit: %w", err)
	}
	return nil
}

func (s *Store) ListLimits(ctx context.Context) ([]domain.CapacityLimit, error) {
	raw, err := s.queryAll(ctx, partitionQuery(pkLimit))
	if err != nil {
		return nil, fmt.Errorf("list limits: %w", err)
	}
	out := make([]domain.CapacityLimit, 0, len(raw))
	for _, item := range raw {
		var it limitItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, fmt.Errorf("unmarshal limit: %w", err)
		}
		out = append(out, domain.CapacityLimit{TruckType: domain.TruckType(it.SK), MaxPerDay: it.MaxPerDay})
	}
	return out, nil
}

func (s *Store) BlockDate(ctx context.Context, b domain.BlockedDate) error {
	av, err := attributevalue.MarshalMap(blockedItem{PK: pkBlocked, SK: b.Date.String(), Reason: b.Reason})
	if err != nil {
		return fmt.Errorf("marshal blocked date: %w", err)
	}
	if _, err := s.ddb.PutItem(ctx, &dynamodb.PutItemInput{TableName: aws.String(s.tableName), Item: av}); err != nil {
		return fmt.Errorf("block date: %w", err)
	}
	return nil
}

func (s *Store) UnblockDate(ctx context.Context, day domain.Date) error {
	_, err := s.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(s.tableName),
		Key:                      key(pkBlocked, day.String()),
		ConditionExpression:      aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{"#pk": attrPK},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return domain.ErrBlockedDateNotFound
		}
		return fmt.Errorf("unblock date: %w", err)
	}
	return nil
}

func (s *Store) ListBlockedDates(ctx context.Context, from, to domain.Date) ([]domain.BlockedDate, error) {
	in := partitionQuery(pkBlocked)
	in.KeyConditionExpression = aws.String("#pk = :pk AND #sk BETWEEN :from AND :to")
	in.ExpressionAttributeNames["#sk"] = attrSK
	in.ExpressionAttributeValues[":from"] = strAttr(from.String())
	in.ExpressionAttributeValues[":to"] = strAttr(to.String())

	raw, err := s.queryAll(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("list blocked dates: %w", err)
	}
	out := make([]domain.BlockedDate, 0, len(raw))
	for _, item := range raw {
		var it blockedItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, fmt.Errorf("unmarshal blocked date: %w", err)
		}
		day, err := domain.ParseDate(it.SK)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.BlockedDate{Date: day, Reason: it.Reason})
	}
	return out, nil
}

func partitionQuery(pk string) *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		KeyConditionExpression:   aws.String("#pk = :pk"),
		ExpressionAttributeNames: map[string]string{"#pk": attrPK},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": strAttr(pk),
		},
		ConsistentRead: aws.Bool(true),
	}
}
