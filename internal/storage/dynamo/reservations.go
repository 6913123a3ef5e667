package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

var errDuplicateReservationID = errors.New("dynamo: reservation id already exists")

// LockSlot only checks that a transaction is open. The SLOT counter
// condition serializes admissions at commit.
func (s *Store) LockSlot(ctx context.Context, _ domain.Date, _ domain.TruckType) error {
	if txFromContext(ctx) == nil {
		return errors.New("dynamo: LockSlot requires a transaction")
	}
	return nil
}

func (s *Store) GetLimit(ctx context.Context, truckType domain.TruckType) (domain.CapacityLimit, error) {
	var it limitItem
	found, err := s.getItem(ctx, pkLimit, string(truckType), &it)
	if err != nil {
		return domain.CapacityLimit{}, fmt.Errorf("get limit: %w", err)
	}
	if !found {
		return domain.CapacityLimit{}, domain.ErrLimitNotConfigured
	}
	return domain.CapacityLimit{TruckType: truckType, MaxPerDay: it.MaxPerDay}, nil
}

func (s *Store) CountReservations(ctx context.Context, day domain.Date, truckType domain.TruckType) (int, error) {
	var it slotItem
	if _, err := s.getItem(ctx, pkSlot, slotSK(day, truckType), &it); err != nil {
		return 0, fmt.Errorf("count reservations: %w", err)
	}
	return it.Count, nil
}

// CreateReservation writes the reservation together with an increment of
// its SLOT counter. The increment is conditioned on the counter still holding
// r.SlotIndex, so a concurrent admission forces WithTx to retry with a fresh
// count.
func (s *Store) CreateReservation(ctx context.Context, r domain.Reservation, limit int) error {
	if r.SlotIndex >= limit {
		return domain.ErrSlotTaken
	}
	av, err := attributevalue.MarshalMap(toReservationItem(r))
	if err != nil {
		return fmt.Errorf("marshal reservation: %w", err)
	}

	cond := "#count = :expected"
	if r.SlotIndex == 0 {
		cond = "attribute_not_exists(#count) OR " + cond
	}
	put := types.TransactWriteItem{Put: &types.Put{
		TableName:                aws.String(s.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{"#pk": attrPK},
	}}
	bump := types.TransactWriteItem{Update: &types.Update{
		TableName:           aws.String(s.tableName),
		Key:                 key(pkSlot, slotSK(r.Date, r.TruckType)),
		UpdateExpression:    aws.String("SET #date = :date, #type = :type ADD #count :one"),
		ConditionExpression: aws.String(cond),
		ExpressionAttributeNames: map[string]string{
			"#date":  "date",
			"#type":  "truck_type",
			"#count": "count",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":date":     strAttr(r.Date.String()),
			":type":     strAttr(string(r.TruckType)),
			":one":      numAttr(1),
			":expected": numAttr(r.SlotIndex),
		},
	}}

	if buf := txFromContext(ctx); buf != nil {
		buf.items = append(buf.items, put, bump)
		buf.onFail = append(buf.onFail, errDuplicateReservationID, errSlotMoved)
		return nil
	}
	err = s.commit(ctx, &txBuffer{
		items:  []types.TransactWriteItem{put, bump},
		onFail: []error{errDuplicateReservationID, errSlotMoved},
	})
	if errors.Is(err, errSlotMoved) {
		return domain.ErrSlotTaken
	}
	return err
}

func (s *Store) GetReservation(ctx context.Context, id string) (domain.Reservation, error) {
	var it reservationItem
	found, err := s.getItem(ctx, reservationPK(id), skRes, &it)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}
	if !found {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	return fromReservationItem(it)
}

// GetReservationForUpdate is a consistent read; the conditions on the
// buffered writes stand in for a row lock.
func (s *Store) GetReservationForUpdate(ctx context.Context, id string) (domain.Reservation, error) {
	return s.GetReservation(ctx, id)
}

// ListReservationsByDate reads GSI1, which is eventually consistent.
func (s *Store) ListReservationsByDate(ctx context.Context, day domain.Date) ([]domain.Reservation, error) {
	raw, err := s.queryAll(ctx, &dynamodb.QueryInput{
		IndexName:                aws.String(gsi1),
		KeyConditionExpression:   aws.String("#pk = :pk"),
		ExpressionAttributeNames: map[string]string{"#pk": attrGSI1PK},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": strAttr(dayGSI(day)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	out := make([]domain.Reservation, 0, len(raw))
	for _, item := range raw {
		var it reservationItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, fmt.Errorf("unmarshal reservation: %w", err)
		}
		r, err := fromReservationItem(it)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) CountByDateRange(ctx context.Context, from, to domain.Date) ([]domain.SlotCount, error) {
	// SK is "<date>#<type>", so every key of day `to` sorts below the bare
	// date string of the next day.
	raw, err := s.queryAll(ctx, &dynamodb.QueryInput{
		KeyConditionExpression:   aws.String("#pk = :pk AND #sk BETWEEN :from AND :to"),
		ExpressionAttributeNames: map[string]string{"#pk": attrPK, "#sk": attrSK},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":   strAttr(pkSlot),
			":from": strAttr(from.String()),
			":to":   strAttr(to.AddDays(1).String()),
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("count reservations by date: %w", err)
	}

	out := make([]domain.SlotCount, 0, len(raw))
	for _, item := range raw {
		var it slotItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, fmt.Errorf("unmarshal slot: %w", err)
		}
		if it.Count <= 0 {
			continue
		}
		datePart, typePart, _ := strings.Cut(it.SK, "#")
		day, err := domain.ParseDate(datePart)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.SlotCount{Date: day, TruckType: domain.TruckType(typePart), Count: it.Count})
	}
	return out, nil
}

func (s *Store) HasReservationsBefore(ctx context.Context, day domain.Date) (bool, error) {
	out, err := s.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(s.tableName),
		KeyConditionExpression:   aws.String("#pk = :pk AND #sk < :day"),
		ExpressionAttributeNames: map[string]string{"#pk": attrPK, "#sk": attrSK},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":  strAttr(pkSlot),
			":day": strAttr(day.String()),
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return false, fmt.Errorf("check prior reservations: %w", err)
	}
	return len(out.Items) > 0, nil
}

func (s *Store) getItem(ctx context.Context, pk, sk string, dst any) (bool, error) {
	out, err := s.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            key(pk, sk),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, err
	}
	if len(out.Item) == 0 {
		return false, nil
	}
	if err := attributevalue.UnmarshalMap(out.Item, dst); err != nil {
		return false, err
	}
	return true, nil
}

func nowString() string {
	return formatTime(time.Now())
}
